package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/deppfellow/tacomemo/internal/errs"
	"github.com/deppfellow/tacomemo/internal/model"
	"github.com/deppfellow/tacomemo/internal/server"
	"github.com/deppfellow/tacomemo/internal/service"
	"github.com/deppfellow/tacomemo/internal/validation"
	"github.com/labstack/echo/v4"
)

// ImageFormField is the multipart field carrying an uploaded image.
const ImageFormField = "image"

type CarouselHandler struct {
	Handler
	carousel *service.CarouselService
}

func NewCarouselHandler(s *server.Server, carousel *service.CarouselService) *CarouselHandler {
	return &CarouselHandler{
		Handler:  NewHandler(s),
		carousel: carousel,
	}
}

type ListCarouselImagesRequest struct{}

func (r *ListCarouselImagesRequest) Validate() error { return nil }

type AddCarouselImageRequest struct{}

func (r *AddCarouselImageRequest) Validate() error { return nil }

// AddCarouselImageResponse is the body returned after an upload.
type AddCarouselImageResponse struct {
	ID        int64  `json:"id"`
	ImagePath string `json:"imagePath"`
}

type DeleteCarouselImageRequest struct {
	ID string `param:"id"`

	imageID int64
}

func (r *DeleteCarouselImageRequest) Validate() error {
	id, err := strconv.ParseInt(r.ID, 10, 64)
	if err != nil {
		return validation.CustomValidationErrors{{Field: "id", Message: "must be an integer"}}
	}
	r.imageID = id
	return nil
}

type MessageResponse struct {
	Message string `json:"message"`
}

func (h *CarouselHandler) List(c echo.Context, _ *ListCarouselImagesRequest) ([]model.CarouselImage, error) {
	return h.carousel.List(c.Request().Context())
}

func (h *CarouselHandler) Add(c echo.Context, _ *AddCarouselImageRequest) (*AddCarouselImageResponse, error) {
	fh, err := c.FormFile(ImageFormField)
	if err != nil && !isMissingFile(err) {
		return nil, err
	}

	image, err := h.carousel.Upload(c.Request().Context(), fh)
	if err != nil {
		return nil, err
	}

	return &AddCarouselImageResponse{ID: image.ID, ImagePath: image.ImagePath}, nil
}

func (h *CarouselHandler) Delete(c echo.Context, req *DeleteCarouselImageRequest) (*MessageResponse, error) {
	deleted, err := h.carousel.Delete(c.Request().Context(), req.imageID)
	if err != nil {
		return nil, err
	}

	if !deleted {
		return nil, errs.NewNotFoundError("No image found with that ID.", true, nil)
	}

	return &MessageResponse{Message: "Image deleted successfully."}, nil
}

// isMissingFile reports whether FormFile failed because the request simply
// carried no file.
func isMissingFile(err error) bool {
	return errors.Is(err, http.ErrMissingFile) ||
		errors.Is(err, http.ErrNotMultipart) ||
		errors.Is(err, http.ErrMissingBoundary)
}
