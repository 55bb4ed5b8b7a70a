package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"wallet-api/internal/logger"
	"wallet-api/internal/service"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	auth    *service.AuthService
	entries *service.EntryService
	db      pinger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(auth *service.AuthService, entries *service.EntryService, db pinger) *Handlers {
	return &Handlers{auth: auth, entries: entries, db: db}
}

// Routes registers the API endpoints on r.
func (h *Handlers) Routes(r chi.Router) {
	r.Post("/sign-up", h.SignUp)
	r.Post("/sign-in", h.SignIn)
	r.Post("/entry", h.SubmitEntry)
	r.Get("/entry", h.ListEntries)
	r.Get("/healthz", h.Health)
}

// SignUp registers a user. Responds 201 with no body.
func (h *Handlers) SignUp(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if !decodeJSON(w, r, &in, true) {
		return
	}
	if err := h.auth.Register(r.Context(), in); err != nil {
		writeError(w, "SignUp", err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// SignIn checks credentials and responds with the session token and user name.
func (h *Handlers) SignIn(w http.ResponseWriter, r *http.Request) {
	// Only email and password are read; other fields are ignored.
	var in service.LoginInput
	if !decodeJSON(w, r, &in, false) {
		return
	}
	res, err := h.auth.Login(r.Context(), in)
	if err != nil {
		writeError(w, "SignIn", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// SubmitEntry stores an entry. No authentication is required.
func (h *Handlers) SubmitEntry(w http.ResponseWriter, r *http.Request) {
	var in service.EntryInput
	if !decodeJSON(w, r, &in, true) {
		return
	}
	if err := h.entries.Submit(r.Context(), in); err != nil {
		writeError(w, "SubmitEntry", err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// ListEntries responds with every stored entry to a caller with a valid bearer token.
func (h *Handlers) ListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.entries.List(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		writeError(w, "ListEntries", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// Health reports whether the database is reachable.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		logger.Error("health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"ok": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// decodeJSON reads a single JSON object or array into dst. Malformed JSON,
// trailing data and non-object bodies are answered with 400; mistyped
// fields with 422, as schema failures. With strict set, unknown fields are
// schema failures too.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, strict bool) bool {
	dec := json.NewDecoder(r.Body)

	var raw json.RawMessage
	err := dec.Decode(&raw)
	if errors.Is(err, io.EOF) {
		// An empty body decodes to the zero value and fails validation.
		return true
	}
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return false
	}
	if _, err = dec.Token(); !errors.Is(err, io.EOF) {
		w.WriteHeader(http.StatusBadRequest)
		return false
	}
	if raw[0] != '{' && raw[0] != '[' {
		w.WriteHeader(http.StatusBadRequest)
		return false
	}

	body := json.NewDecoder(bytes.NewReader(raw))
	if strict {
		body.DisallowUnknownFields()
	}
	if err = body.Decode(dst); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		return false
	}
	return true
}

// writeError maps a service error kind to a bare status code.
func writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		w.WriteHeader(http.StatusUnprocessableEntity)
	case errors.Is(err, service.ErrUnauthorized):
		w.WriteHeader(http.StatusUnauthorized)
	default:
		logger.Error(op+" error", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", zap.Error(err))
	}
}
