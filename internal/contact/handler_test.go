package contact

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(NewInMemoryStore(), WithLogger(logger))
	r := chi.NewRouter()
	NewHandler(svc, logger).Register(r)
	return r
}

func postImport(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/contacts/import", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleImportScanPayload(t *testing.T) {
	router := newRouter(t)

	rec := postImport(t, router, `{"payload":"jean-dupont-techcorp"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var c Contact
	if err := json.NewDecoder(rec.Body).Decode(&c); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if c.Name != "jean-dupont-techcorp" {
		t.Fatalf("expected payload as name, got %q", c.Name)
	}
}

func TestHandleImportDirectoryRecord(t *testing.T) {
	router := newRouter(t)

	rec := postImport(t, router, `{"contact":{"name":"Marie Dubois","phone":"+33 6 12 34 56 78","email":"marie@example.com"}}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var c Contact
	if err := json.NewDecoder(rec.Body).Decode(&c); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if c.Email != "marie@example.com" {
		t.Fatalf("expected email to round-trip, got %q", c.Email)
	}
}

func TestHandleImportRejectsAmbiguousBody(t *testing.T) {
	router := newRouter(t)

	if rec := postImport(t, router, `{}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty body, got %d", rec.Code)
	}
	if rec := postImport(t, router, `{"payload":"x","contact":{"name":"y"}}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for both sources, got %d", rec.Code)
	}
}

func TestHandleListWithFilter(t *testing.T) {
	router := newRouter(t)
	postImport(t, router, `{"contact":{"name":"Marie Dubois","email":"marie@example.com"}}`)
	postImport(t, router, `{"contact":{"name":"Pierre Martin","email":"pierre@example.com"}}`)

	req := httptest.NewRequest(http.MethodGet, "/contacts?q=marie", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp ListContactsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Contacts) != 1 || resp.Contacts[0].Name != "Marie Dubois" {
		t.Fatalf("expected the single matching contact, got %v", resp.Contacts)
	}
}
