package handler

import (
	"github.com/deppfellow/tacomemo/internal/lib/email"
	"github.com/deppfellow/tacomemo/internal/server"
	"github.com/deppfellow/tacomemo/internal/service"
	"github.com/deppfellow/tacomemo/internal/validation"
	"github.com/labstack/echo/v4"
)

// ContactSentMessage is the plain-text body returned after a relay.
const ContactSentMessage = "Message envoyé avec succès!"

type ContactHandler struct {
	Handler
	contact *service.ContactService
}

func NewContactHandler(s *server.Server, contact *service.ContactService) *ContactHandler {
	return &ContactHandler{
		Handler: NewHandler(s),
		contact: contact,
	}
}

// SendContactRequest is the contact form, accepted as JSON or url-encoded.
type SendContactRequest struct {
	Name    string `json:"nombre" form:"nombre" validate:"required"`
	Email   string `json:"email" form:"email" validate:"required"`
	Subject string `json:"objet" form:"objet" validate:"required"`
	Message string `json:"mensaje" form:"mensaje" validate:"required"`
}

func (r *SendContactRequest) Validate() error {
	return validation.Struct(r)
}

func (r *SendContactRequest) ValidationMessage() string {
	return service.MissingFieldsMessage
}

func (h *ContactHandler) Send(c echo.Context, req *SendContactRequest) (string, error) {
	err := h.contact.Relay(c.Request().Context(), email.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return "", err
	}

	return ContactSentMessage, nil
}
