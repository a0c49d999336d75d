package contact

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/Debbarh/qr-card-connect-hub/internal/audit"
	dErrors "github.com/Debbarh/qr-card-connect-hub/pkg/domainerrors"
	"github.com/Debbarh/qr-card-connect-hub/pkg/requestcontext"
)

// AuditPublisher records import events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event)
}

// Service exposes the contact import and search operations.
type Service struct {
	store   Store
	logger  *slog.Logger
	auditor AuditPublisher
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) { s.auditor = p }
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ImportScan stores a contact from a decoded card payload. The payload is
// opaque text and becomes the contact name as-is.
func (s *Service) ImportScan(ctx context.Context, payload string) (*Contact, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "scan payload is required")
	}
	return s.create(ctx, &Contact{Name: payload})
}

// ImportRecord stores a contact selected from the device directory.
func (s *Service) ImportRecord(ctx context.Context, name, phone, email string) (*Contact, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "name is required")
	}
	return s.create(ctx, &Contact{
		Name:  name,
		Phone: strings.TrimSpace(phone),
		Email: strings.TrimSpace(email),
	})
}

// Search filters the directory; an empty query returns everything.
func (s *Service) Search(ctx context.Context, query string) ([]*Contact, error) {
	contacts, err := s.store.Search(ctx, query)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to search contacts")
	}
	return contacts, nil
}

func (s *Service) create(ctx context.Context, c *Contact) (*Contact, error) {
	c.ID = uuid.New()
	c.CreatedAt = requestcontext.Now(ctx)

	if err := s.store.Create(ctx, c); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store contact")
	}

	if s.auditor != nil {
		s.auditor.Emit(ctx, audit.Event{
			Timestamp: requestcontext.Now(ctx),
			Action:    audit.ActionContactImported,
			SubjectID: c.ID.String(),
			Detail:    c.Name,
			RequestID: requestcontext.RequestID(ctx),
		})
	}
	s.logger.InfoContext(ctx, "contact imported", "contact_id", c.ID)
	return c, nil
}
