// Package service orchestrates the profile lifecycle: creation, status
// transitions with the single-active invariant, removal, and card pattern
// rendering. Storage, audit and caching are interface-driven so backends can
// be swapped without touching business logic.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/Debbarh/qr-card-connect-hub/internal/audit"
	"github.com/Debbarh/qr-card-connect-hub/internal/profile/metrics"
	"github.com/Debbarh/qr-card-connect-hub/internal/profile/models"
	"github.com/Debbarh/qr-card-connect-hub/internal/qrcode"
	dErrors "github.com/Debbarh/qr-card-connect-hub/pkg/domainerrors"
	"github.com/Debbarh/qr-card-connect-hub/pkg/platform/sentinel"
	"github.com/Debbarh/qr-card-connect-hub/pkg/requestcontext"
)

// ProfileStore is the persistence contract for profiles. Implementations must
// apply SetStatus atomically, including the activation compensation.
type ProfileStore interface {
	Create(ctx context.Context, p *models.Profile) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	SetStatus(ctx context.Context, id uuid.UUID, status models.ProfileStatus) (*models.Profile, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*models.Profile, error)
	ListByStatus(ctx context.Context, status models.ProfileStatus) ([]*models.Profile, error)
	FindActive(ctx context.Context) (*models.Profile, error)
}

// AuditPublisher records lifecycle events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event)
}

// PatternCache caches rendered SVG documents keyed by payload and size.
type PatternCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Service exposes profile lifecycle operations.
type Service struct {
	store   ProfileStore
	logger  *slog.Logger
	metrics *metrics.Metrics
	auditor AuditPublisher
	cache   PatternCache
	tracer  trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) { s.auditor = p }
}

func WithPatternCache(c PatternCache) Option {
	return func(s *Service) { s.cache = c }
}

// New constructs the service.
func New(store ProfileStore, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: slog.Default(),
		tracer: otel.Tracer("profile"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateProfile validates the input, derives the card payload once, and stores
// the profile. New profiles always start inactive.
func (s *Service) CreateProfile(ctx context.Context, in models.NewProfileInput) (*models.Profile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.create")
	defer span.End()

	p, err := models.NewProfile(uuid.New(), in, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, p); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store profile")
	}

	if s.metrics != nil {
		s.metrics.IncrementProfilesCreated()
	}
	s.emit(ctx, audit.ActionProfileCreated, p.ID.String(), p.QRData)
	s.logger.InfoContext(ctx, "profile created",
		"profile_id", p.ID, "type", p.Type, "qr_data", p.QRData)
	return p, nil
}

// SetProfileStatus transitions a profile. Activating a profile demotes any
// currently active one in the same atomic step; archived profiles are left
// untouched by that compensation. Transitions to the current status are
// idempotent.
func (s *Service) SetProfileStatus(ctx context.Context, id uuid.UUID, status models.ProfileStatus) (*models.Profile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.set_status")
	defer span.End()

	start := time.Now()
	p, err := s.store.SetStatus(ctx, id, status)
	if err != nil {
		return nil, translateStoreErr(err)
	}

	if s.metrics != nil {
		s.metrics.ObserveTransition(string(status), start)
	}
	s.emit(ctx, actionFor(status), p.ID.String(), "")
	s.logger.InfoContext(ctx, "profile status changed",
		"profile_id", p.ID, "status", p.Status)
	return p, nil
}

// RemoveProfile deletes a profile permanently. There is no undo.
func (s *Service) RemoveProfile(ctx context.Context, id uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "profile.remove")
	defer span.End()

	if err := s.store.Delete(ctx, id); err != nil {
		return translateStoreErr(err)
	}

	if s.metrics != nil {
		s.metrics.IncrementProfilesDeleted()
	}
	s.emit(ctx, audit.ActionProfileDeleted, id.String(), "")
	s.logger.InfoContext(ctx, "profile removed", "profile_id", id)
	return nil
}

// GetProfile fetches one profile by id.
func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err)
	}
	return p, nil
}

// ListProfiles returns profiles in insertion order, optionally filtered by
// status.
func (s *Service) ListProfiles(ctx context.Context, status *models.ProfileStatus) ([]*models.Profile, error) {
	var (
		profiles []*models.Profile
		err      error
	)
	if status != nil {
		profiles, err = s.store.ListByStatus(ctx, *status)
	} else {
		profiles, err = s.store.List(ctx)
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list profiles")
	}
	return profiles, nil
}

// GetActiveProfile returns the single active profile, or nil when none is
// active.
func (s *Service) GetActiveProfile(ctx context.Context) (*models.Profile, error) {
	p, err := s.store.FindActive(ctx)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to find active profile")
	}
	return p, nil
}

// EncodePayload exposes the canonical payload rule so creation and any future
// re-encoding share it.
func (s *Service) EncodePayload(name string, profileType models.ProfileType, company string) string {
	return models.EncodePayload(name, profileType, company)
}

// RenderPattern derives the deterministic cell grid for a payload.
func (s *Service) RenderPattern(payload string, gridSize int) qrcode.Grid {
	return qrcode.Generate(payload, gridSize)
}

// RenderSVG renders the payload's pattern as an SVG document, served from the
// pattern cache when one is configured. Cache failures degrade to a fresh
// render.
func (s *Service) RenderSVG(ctx context.Context, payload string, sizePx int) string {
	if sizePx <= 0 {
		sizePx = qrcode.DefaultCanvasSize
	}
	key := fmt.Sprintf("pattern:%d:%s", sizePx, payload)

	if s.cache != nil {
		if svg, ok, err := s.cache.Get(ctx, key); err != nil {
			s.logger.WarnContext(ctx, "pattern cache read failed", "error", err)
		} else if ok {
			return svg
		}
	}

	start := time.Now()
	svg := qrcode.RenderSVG(qrcode.Generate(payload, qrcode.DefaultGridSize), sizePx)
	if s.metrics != nil {
		s.metrics.ObservePatternRender(start)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, svg); err != nil {
			s.logger.WarnContext(ctx, "pattern cache write failed", "error", err)
		}
	}
	return svg
}

func (s *Service) emit(ctx context.Context, action audit.Action, subjectID, detail string) {
	if s.auditor == nil {
		return
	}
	s.auditor.Emit(ctx, audit.Event{
		Timestamp: requestcontext.Now(ctx),
		Action:    action,
		SubjectID: subjectID,
		Detail:    detail,
		RequestID: requestcontext.RequestID(ctx),
	})
}

func actionFor(status models.ProfileStatus) audit.Action {
	switch status {
	case models.StatusActive:
		return audit.ActionProfileActivated
	case models.StatusArchived:
		return audit.ActionProfileArchived
	default:
		return audit.ActionProfileDeactivated
	}
}

func translateStoreErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "profile not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "profile store failure")
}
