package contact

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	dErrors "github.com/Debbarh/qr-card-connect-hub/pkg/domainerrors"
	"github.com/Debbarh/qr-card-connect-hub/pkg/platform/httputil"
	"github.com/Debbarh/qr-card-connect-hub/pkg/requestcontext"
)

// ImportRequest is the HTTP request body for POST /contacts/import. Exactly
// one of payload or contact must be set.
type ImportRequest struct {
	Payload string         `json:"payload,omitempty"`
	Contact *ContactRecord `json:"contact,omitempty"`
}

// ContactRecord is a directory record selected for import.
type ContactRecord struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// Validate checks that the request carries exactly one import source.
func (r *ImportRequest) Validate() error {
	if r.Payload == "" && r.Contact == nil {
		return dErrors.New(dErrors.CodeValidation, "either payload or contact is required")
	}
	if r.Payload != "" && r.Contact != nil {
		return dErrors.New(dErrors.CodeValidation, "payload and contact are mutually exclusive")
	}
	return nil
}

// ListContactsResponse is the HTTP response for GET /contacts.
type ListContactsResponse struct {
	Contacts []*Contact `json:"contacts"`
}

// Handler wires contact endpoints to the contact service.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts contact endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/contacts/import", h.HandleImport)
	r.Get("/contacts", h.HandleList)
}

// HandleImport handles POST /contacts/import requests.
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.Decode[ImportRequest](w, r, h.logger)
	if !ok {
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	var (
		c   *Contact
		err error
	)
	if req.Payload != "" {
		c, err = h.service.ImportScan(ctx, req.Payload)
	} else {
		c, err = h.service.ImportRecord(ctx, req.Contact.Name, req.Contact.Phone, req.Contact.Email)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "contact import failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, c)
}

// HandleList handles GET /contacts requests with the optional q filter.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &ListContactsResponse{Contacts: contacts})
}
