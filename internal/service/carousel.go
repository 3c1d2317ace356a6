package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/deppfellow/tacomemo/internal/errs"
	"github.com/deppfellow/tacomemo/internal/lib/upload"
	"github.com/deppfellow/tacomemo/internal/metrics"
	"github.com/deppfellow/tacomemo/internal/model"
	"github.com/deppfellow/tacomemo/internal/server"
	"github.com/rs/zerolog"
)

// ImageStore persists carousel image records.
type ImageStore interface {
	ListAll(ctx context.Context) ([]model.CarouselImage, error)
	Insert(ctx context.Context, imagePath string) (*model.CarouselImage, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
}

// FileStore writes and removes uploaded files.
type FileStore interface {
	Receive(ctx context.Context, fh *multipart.FileHeader) (*upload.StoredFile, error)
	Remove(name string) error
}

type CarouselService struct {
	server *server.Server
	store  ImageStore
	files  FileStore
}

func NewCarouselService(s *server.Server, store ImageStore, files FileStore) *CarouselService {
	return &CarouselService{
		server: s,
		store:  store,
		files:  files,
	}
}

// List returns every carousel image.
func (cs *CarouselService) List(ctx context.Context) ([]model.CarouselImage, error) {
	images, err := cs.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrStore, err)
	}
	return images, nil
}

// Upload stores the file and records its path on disk. When the record cannot
// be written the stored file is removed again.
func (cs *CarouselService) Upload(ctx context.Context, fh *multipart.FileHeader) (*model.CarouselImage, error) {
	stored, err := cs.files.Receive(ctx, fh)
	if err != nil {
		if errors.Is(err, upload.ErrNoFile) {
			cs.server.Metrics.RecordUpload(metrics.OutcomeRejected)
			return nil, errs.NewBadRequestError("No image provided.", true, nil, nil)
		}
		cs.server.Metrics.RecordUpload(metrics.OutcomeFailure)
		return nil, fmt.Errorf("%w: receive upload: %w", errs.ErrStore, err)
	}

	image, err := cs.store.Insert(ctx, stored.Path)
	if err != nil {
		cs.server.Metrics.RecordUpload(metrics.OutcomeFailure)
		if rmErr := cs.files.Remove(stored.Name); rmErr != nil {
			zerolog.Ctx(ctx).Error().Err(rmErr).Str("file", stored.Name).Msg("failed to remove orphaned upload")
		}
		return nil, fmt.Errorf("%w: %w", errs.ErrStore, err)
	}

	cs.server.Metrics.RecordUpload(metrics.OutcomeSuccess)
	zerolog.Ctx(ctx).Info().
		Int64("id", image.ID).
		Str("image_path", image.ImagePath).
		Str("content_type", stored.ContentType).
		Int64("size", stored.Size).
		Msg("carousel image added")

	return image, nil
}

// Delete removes the record with id. A missing record is reported as false,
// not as an error. The file on disk is left in place.
func (cs *CarouselService) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := cs.store.DeleteByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("%w: %w", errs.ErrStore, err)
	}
	return deleted, nil
}
