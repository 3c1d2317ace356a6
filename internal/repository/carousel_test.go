package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/deppfellow/tacomemo/internal/config"
	"github.com/deppfellow/tacomemo/internal/database"
	"github.com/deppfellow/tacomemo/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *CarouselRepository {
	t.Helper()

	cfg := config.Default()
	cfg.Database.Path = filepath.Join(t.TempDir(), "carousel_images.db")

	logger := zerolog.Nop()
	db, err := database.New(cfg, &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewCarouselRepository(db)
}

func TestCarouselRepository_ListAll_Empty(t *testing.T) {
	repo := newTestRepository(t)

	images, err := repo.ListAll(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, images)
	assert.Empty(t, images)
}

func TestCarouselRepository_InsertAndList(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first, err := repo.Insert(ctx, "/uploads/1-a.jpg")
	require.NoError(t, err)
	second, err := repo.Insert(ctx, "/uploads/2-b.jpg")
	require.NoError(t, err)

	assert.Greater(t, second.ID, first.ID)

	images, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.CarouselImage{
		{ID: first.ID, ImagePath: "/uploads/1-a.jpg"},
		{ID: second.ID, ImagePath: "/uploads/2-b.jpg"},
	}, images)
}

func TestCarouselRepository_DeleteByID(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	img, err := repo.Insert(ctx, "/uploads/1-a.jpg")
	require.NoError(t, err)

	deleted, err := repo.DeleteByID(ctx, img.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteByID(ctx, img.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	images, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestCarouselRepository_IDsAreNotReused(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	img, err := repo.Insert(ctx, "/uploads/1-a.jpg")
	require.NoError(t, err)
	_, err = repo.DeleteByID(ctx, img.ID)
	require.NoError(t, err)

	next, err := repo.Insert(ctx, "/uploads/2-b.jpg")
	require.NoError(t, err)
	assert.Greater(t, next.ID, img.ID)
}

func TestCarouselRepository_NullPathListsAsEmpty(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.db.DB.ExecContext(ctx, "INSERT INTO carousel_images (image_path) VALUES (NULL)")
	require.NoError(t, err)

	images, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "", images[0].ImagePath)
}
