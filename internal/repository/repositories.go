// Package repository implements data access for the carousel images.
package repository

import (
	"github.com/deppfellow/tacomemo/internal/server"
)

// Repositories groups every repository used by the services.
type Repositories struct {
	Carousel *CarouselRepository
}

func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Carousel: NewCarouselRepository(s.DB),
	}
}
