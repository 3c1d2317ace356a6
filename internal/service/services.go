package service

import (
	"github.com/deppfellow/tacomemo/internal/lib/catalog"
	"github.com/deppfellow/tacomemo/internal/lib/email"
	"github.com/deppfellow/tacomemo/internal/repository"
	"github.com/deppfellow/tacomemo/internal/server"
)

type Services struct {
	Carousel *CarouselService
	Contact  *ContactService
	Catalog  *CatalogService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	emailClient := email.NewClient(s.Config, s.Logger)
	catalogClient := catalog.NewClient(s.Config.Catalog, s.Logger, s.Metrics)

	return &Services{
		Carousel: NewCarouselService(s, repos.Carousel, s.Uploads),
		Contact:  NewContactService(s, emailClient),
		Catalog:  NewCatalogService(s, catalogClient),
	}, nil
}
