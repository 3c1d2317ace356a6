package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/deppfellow/tacomemo/internal/errs"
	"github.com/deppfellow/tacomemo/internal/lib/catalog"
	"github.com/deppfellow/tacomemo/internal/server"
)

// CatalogFetcher reads one resource of the upstream catalog.
type CatalogFetcher interface {
	Get(ctx context.Context, resource catalog.Resource, params url.Values) ([]byte, error)
}

type CatalogService struct {
	server  *server.Server
	fetcher CatalogFetcher
}

func NewCatalogService(s *server.Server, fetcher CatalogFetcher) *CatalogService {
	return &CatalogService{
		server:  s,
		fetcher: fetcher,
	}
}

// Fetch returns the raw JSON body of resource.
func (cs *CatalogService) Fetch(ctx context.Context, resource catalog.Resource, params url.Values) ([]byte, error) {
	body, err := cs.fetcher.Get(ctx, resource, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrUpstream, err)
	}
	return body, nil
}
