package handler

import (
	"github.com/deppfellow/tacomemo/internal/server"
	"github.com/deppfellow/tacomemo/internal/service"
)

type Handlers struct {
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
	Carousel *CarouselHandler
	Contact  *ContactHandler
	Catalog  *CatalogHandler
	Static   *StaticHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
		Carousel: NewCarouselHandler(s, services.Carousel),
		Contact:  NewContactHandler(s, services.Contact),
		Catalog:  NewCatalogHandler(s, services.Catalog),
		Static:   NewStaticHandler(s),
	}
}
