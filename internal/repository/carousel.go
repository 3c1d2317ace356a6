package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/tacomemo/internal/database"
	"github.com/deppfellow/tacomemo/internal/model"
)

const (
	listCarouselImages  = `SELECT id, COALESCE(image_path, '') AS image_path FROM carousel_images ORDER BY id`
	insertCarouselImage = `INSERT INTO carousel_images (image_path) VALUES (?)`
	deleteCarouselImage = `DELETE FROM carousel_images WHERE id = ?`
)

// CarouselRepository stores carousel image records.
type CarouselRepository struct {
	db *database.Database
}

func NewCarouselRepository(db *database.Database) *CarouselRepository {
	return &CarouselRepository{db: db}
}

// ListAll returns every record in insertion order. An empty table yields an
// empty, non-nil slice.
func (r *CarouselRepository) ListAll(ctx context.Context) ([]model.CarouselImage, error) {
	defer r.db.Segment(ctx, "SELECT", listCarouselImages)()

	images := []model.CarouselImage{}
	if err := r.db.DB.SelectContext(ctx, &images, listCarouselImages); err != nil {
		return nil, fmt.Errorf("list carousel images: %w", err)
	}

	return images, nil
}

// Insert stores imagePath and returns the new record.
func (r *CarouselRepository) Insert(ctx context.Context, imagePath string) (*model.CarouselImage, error) {
	defer r.db.Segment(ctx, "INSERT", insertCarouselImage)()

	res, err := r.db.DB.ExecContext(ctx, insertCarouselImage, imagePath)
	if err != nil {
		return nil, fmt.Errorf("insert carousel image: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert carousel image: read id: %w", err)
	}

	return &model.CarouselImage{ID: id, ImagePath: imagePath}, nil
}

// DeleteByID removes the record with the given id and reports whether one
// existed.
func (r *CarouselRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	defer r.db.Segment(ctx, "DELETE", deleteCarouselImage)()

	res, err := r.db.DB.ExecContext(ctx, deleteCarouselImage, id)
	if err != nil {
		return false, fmt.Errorf("delete carousel image %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete carousel image %d: rows affected: %w", id, err)
	}

	return affected > 0, nil
}
