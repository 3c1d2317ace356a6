package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/tacomemo/internal/errs"
	"github.com/deppfellow/tacomemo/internal/lib/email"
	"github.com/deppfellow/tacomemo/internal/metrics"
	"github.com/deppfellow/tacomemo/internal/server"
	"github.com/rs/zerolog"
)

// MissingFieldsMessage is returned when a contact form field is empty.
const MissingFieldsMessage = "Todos los campos son obligatorios."

// Sender delivers a contact message through the email provider.
type Sender interface {
	SendContactEmail(ctx context.Context, msg email.ContactMessage) error
}

type ContactService struct {
	server *server.Server
	sender Sender
}

func NewContactService(s *server.Server, sender Sender) *ContactService {
	return &ContactService{
		server: s,
		sender: sender,
	}
}

// Relay forwards msg to the site owner. Every field is required; nothing is
// sent when one is blank. Exactly one delivery attempt is made.
func (cs *ContactService) Relay(ctx context.Context, msg email.ContactMessage) error {
	if fieldErrs := missingFields(msg); len(fieldErrs) > 0 {
		return errs.NewBadRequestError(MissingFieldsMessage, true, nil, fieldErrs)
	}

	if err := cs.sender.SendContactEmail(ctx, msg); err != nil {
		cs.server.Metrics.RecordDelivery(metrics.OutcomeFailure)
		return fmt.Errorf("%w: %w", errs.ErrDelivery, err)
	}

	cs.server.Metrics.RecordDelivery(metrics.OutcomeSuccess)
	zerolog.Ctx(ctx).Info().Str("subject", msg.Subject).Msg("contact message relayed")

	return nil
}

func missingFields(msg email.ContactMessage) []errs.FieldError {
	var fieldErrs []errs.FieldError

	for _, f := range []struct {
		name  string
		value string
	}{
		{"nombre", msg.Name},
		{"email", msg.Email},
		{"objet", msg.Subject},
		{"mensaje", msg.Message},
	} {
		if f.value == "" {
			fieldErrs = append(fieldErrs, errs.FieldError{Field: f.name, Error: "is required"})
		}
	}

	return fieldErrs
}
