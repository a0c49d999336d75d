package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Debbarh/qr-card-connect-hub/internal/profile/models"
	"github.com/Debbarh/qr-card-connect-hub/internal/qrcode"
	dErrors "github.com/Debbarh/qr-card-connect-hub/pkg/domainerrors"
	"github.com/Debbarh/qr-card-connect-hub/pkg/platform/httputil"
	"github.com/Debbarh/qr-card-connect-hub/pkg/requestcontext"
)

// Service defines the interface for profile operations.
type Service interface {
	CreateProfile(ctx context.Context, in models.NewProfileInput) (*models.Profile, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	ListProfiles(ctx context.Context, status *models.ProfileStatus) ([]*models.Profile, error)
	SetProfileStatus(ctx context.Context, id uuid.UUID, status models.ProfileStatus) (*models.Profile, error)
	RemoveProfile(ctx context.Context, id uuid.UUID) error
	GetActiveProfile(ctx context.Context) (*models.Profile, error)
	RenderPattern(payload string, gridSize int) qrcode.Grid
	RenderSVG(ctx context.Context, payload string, sizePx int) string
}

// Handler wires profile endpoints to the profile service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a profile handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts profile endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/profiles", h.HandleCreate)
	r.Get("/profiles", h.HandleList)
	r.Get("/profiles/active", h.HandleActive)
	r.Get("/profiles/{id}", h.HandleGet)
	r.Patch("/profiles/{id}/status", h.HandleUpdateStatus)
	r.Delete("/profiles/{id}", h.HandleDelete)
	r.Get("/profiles/{id}/qr", h.HandlePattern)
	r.Get("/profiles/{id}/qr.svg", h.HandlePatternSVG)
}

// HandleCreate handles POST /profiles requests.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.Decode[CreateProfileRequest](w, r, h.logger)
	if !ok {
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	p, err := h.service.CreateProfile(ctx, req.ToInput())
	if err != nil {
		h.logger.ErrorContext(ctx, "profile creation failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "profile created",
		"request_id", requestID,
		"profile_id", p.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, FromProfile(p))
}

// HandleList handles GET /profiles requests, with an optional status filter.
// The response always carries collection-wide status counts.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var filter *models.ProfileStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := models.ParseProfileStatus(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		filter = &status
	}

	profiles, err := h.service.ListProfiles(ctx, filter)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	all := profiles
	if filter != nil {
		if all, err = h.service.ListProfiles(ctx, nil); err != nil {
			httputil.WriteError(w, err)
			return
		}
	}

	httputil.WriteJSON(w, http.StatusOK, FromProfileList(profiles, all))
}

// HandleGet handles GET /profiles/{id} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}

	p, err := h.service.GetProfile(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromProfile(p))
}

// HandleUpdateStatus handles PATCH /profiles/{id}/status requests.
func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}

	req, ok := httputil.Decode[UpdateStatusRequest](w, r, h.logger)
	if !ok {
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	p, err := h.service.SetProfileStatus(ctx, id, req.ParsedStatus())
	if err != nil {
		h.logger.ErrorContext(ctx, "status transition failed",
			"request_id", requestcontext.RequestID(ctx),
			"profile_id", id,
			"status", req.Status,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromProfile(p))
}

// HandleDelete handles DELETE /profiles/{id} requests.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}

	if err := h.service.RemoveProfile(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleActive handles GET /profiles/active requests.
func (h *Handler) HandleActive(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetActiveProfile(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if p == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "no active profile"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromProfile(p))
}

// HandlePattern handles GET /profiles/{id}/qr requests, returning the cell
// grid as JSON.
func (h *Handler) HandlePattern(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}

	p, err := h.service.GetProfile(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	gridSize, ok := h.sizeParam(w, r, "grid_size")
	if !ok {
		return
	}
	grid := h.service.RenderPattern(p.QRData, gridSize)
	httputil.WriteJSON(w, http.StatusOK, FromPattern(p.QRData, grid))
}

// HandlePatternSVG handles GET /profiles/{id}/qr.svg requests.
func (h *Handler) HandlePatternSVG(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}

	p, err := h.service.GetProfile(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	sizePx, ok := h.sizeParam(w, r, "size")
	if !ok {
		return
	}
	svg := h.service.RenderSVG(ctx, p.QRData, sizePx)

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(svg)); err != nil {
		h.logger.ErrorContext(ctx, "failed to write svg response", "error", err)
	}
}

func (h *Handler) profileID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid profile id"))
		return uuid.Nil, false
	}
	return id, true
}

// sizeParam parses an optional positive integer query parameter. Zero means
// the renderer's default.
func (h *Handler) sizeParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	size, err := strconv.Atoi(raw)
	if err != nil || size <= 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, name+" must be a positive integer"))
		return 0, false
	}
	return size, true
}
