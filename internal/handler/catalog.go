package handler

import (
	"net/url"

	"github.com/deppfellow/tacomemo/internal/lib/catalog"
	"github.com/deppfellow/tacomemo/internal/server"
	"github.com/deppfellow/tacomemo/internal/service"
	"github.com/labstack/echo/v4"
)

// CatalogHandler proxies the restaurant catalog. Each request type lists the
// query parameters its route may forward.
type CatalogHandler struct {
	Handler
	catalog *service.CatalogService
}

func NewCatalogHandler(s *server.Server, catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		Handler: NewHandler(s),
		catalog: catalog,
	}
}

type GetCatalogueRequest struct{}

func (r *GetCatalogueRequest) Validate() error { return nil }

type GetTagsRequest struct {
	Lang    string `query:"lang"`
	ShowAll string `query:"show_all"`
}

func (r *GetTagsRequest) Validate() error { return nil }

func (r *GetTagsRequest) params() url.Values {
	return url.Values{
		"lang":     {r.Lang},
		"show_all": {r.ShowAll},
	}
}

type GetDishesRequest struct {
	ShowAll        string `query:"show_all"`
	AllRestaurants string `query:"all_restaurants"`
	Lang           string `query:"lang"`
	Limit          string `query:"limit"`
	Offset         string `query:"offset"`
}

func (r *GetDishesRequest) Validate() error { return nil }

func (r *GetDishesRequest) params() url.Values {
	return url.Values{
		"show_all":        {r.ShowAll},
		"all_restaurants": {r.AllRestaurants},
		"lang":            {r.Lang},
		"limit":           {r.Limit},
		"offset":          {r.Offset},
	}
}

type GetMenusRequest struct {
	ShowAll        string `query:"show_all"`
	AllRestaurants string `query:"all_restaurants"`
}

func (r *GetMenusRequest) Validate() error { return nil }

func (r *GetMenusRequest) params() url.Values {
	return url.Values{
		"show_all":        {r.ShowAll},
		"all_restaurants": {r.AllRestaurants},
	}
}

func (h *CatalogHandler) GetCatalogue(c echo.Context, _ *GetCatalogueRequest) ([]byte, error) {
	return h.catalog.Fetch(c.Request().Context(), catalog.Tags, nil)
}

func (h *CatalogHandler) GetTags(c echo.Context, req *GetTagsRequest) ([]byte, error) {
	return h.catalog.Fetch(c.Request().Context(), catalog.Tags, req.params())
}

func (h *CatalogHandler) GetDishes(c echo.Context, req *GetDishesRequest) ([]byte, error) {
	return h.catalog.Fetch(c.Request().Context(), catalog.Dishes, req.params())
}

func (h *CatalogHandler) GetMenus(c echo.Context, req *GetMenusRequest) ([]byte, error) {
	return h.catalog.Fetch(c.Request().Context(), catalog.Menus, req.params())
}
