// Package http provides the HTTP handlers and routing for the countrybook
// application.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atinyakov/countrybook/internal/models"
	"github.com/atinyakov/countrybook/internal/store"
	"github.com/go-playground/validator/v10"
)

// SessionStore defines the session operations required by the auth handlers.
type SessionStore interface {
	// Login starts a session using the placeholder credential policy.
	Login(ctx context.Context, email, password string) (*models.Session, error)
	// Register starts a session with a freshly generated user id.
	Register(ctx context.Context, email, password, name string) (*models.Session, error)
	// Logout clears the current session. Idempotent.
	Logout(ctx context.Context) error
	// CurrentSession returns the active session, or nil when signed out.
	CurrentSession() *models.Session
}

// AuthHandler handles login, registration, and logout requests.
type AuthHandler struct {
	// Store performs the underlying session operations.
	Store SessionStore
	// Validate checks request payload shape; its rules mirror the store's
	// placeholder policy (required email, six-character password minimum).
	Validate *validator.Validate
}

// LoginRequest represents the JSON payload for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterRequest represents the JSON payload for registration.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"`
}

// Login handles POST /api/login. Credentials are accepted on shape alone;
// nothing is verified against a backend.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		writeError(w, http.StatusUnauthorized, store.ErrInvalidCredentials.Error())
		return
	}

	session, err := h.Store.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, store.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// Register handles POST /api/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, store.ErrRegistrationFailed.Error())
		return
	}

	session, err := h.Store.Register(r.Context(), req.Email, req.Password, req.Name)
	if errors.Is(err, store.ErrRegistrationFailed) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

// Logout handles POST /api/logout. Logging out while signed out is a no-op.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Logout(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Session handles GET /api/session, reporting the current session state so
// pages can render their header. The session field is null when signed out.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]*models.Session{
		"session": h.Store.CurrentSession(),
	})
}
