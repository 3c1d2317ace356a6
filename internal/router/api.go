package router

import (
	"net/http"

	"github.com/deppfellow/tacomemo/internal/handler"
	"github.com/deppfellow/tacomemo/internal/middleware"
	"github.com/labstack/echo/v4"
)

func registerAPIRoutes(r *echo.Echo, m *middleware.Middlewares, h *handler.Handlers) {
	carousel := h.Carousel
	r.GET("/carousel-images", handler.Handle(carousel.Handler, carousel.List, http.StatusOK, &handler.ListCarouselImagesRequest{}))
	r.POST("/add-carousel-image", handler.Handle(carousel.Handler, carousel.Add, http.StatusOK, &handler.AddCarouselImageRequest{}), m.Global.BodyLimit())
	r.DELETE("/delete-carousel-image/:id", handler.Handle(carousel.Handler, carousel.Delete, http.StatusOK, &handler.DeleteCarouselImageRequest{}))

	contact := h.Contact
	r.POST("/send", handler.HandleText(contact.Handler, contact.Send, http.StatusOK, &handler.SendContactRequest{}))

	catalog := h.Catalog
	r.GET("/api/catalogue", handler.HandleJSONBlob(catalog.Handler, catalog.GetCatalogue, &handler.GetCatalogueRequest{}))
	r.GET("/api/get-tags", handler.HandleJSONBlob(catalog.Handler, catalog.GetTags, &handler.GetTagsRequest{}))
	r.GET("/catalog/dishes", handler.HandleJSONBlob(catalog.Handler, catalog.GetDishes, &handler.GetDishesRequest{}))
	r.GET("/catalog/menus", handler.HandleJSONBlob(catalog.Handler, catalog.GetMenus, &handler.GetMenusRequest{}))
}
