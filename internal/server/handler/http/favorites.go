package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atinyakov/countrybook/internal/catalog"
	"github.com/atinyakov/countrybook/internal/models"
	"github.com/atinyakov/countrybook/internal/store"
	"github.com/go-chi/chi/v5"
)

// FavoritesStore defines the favorites operations required by the handlers.
type FavoritesStore interface {
	Favorites() []models.FavoriteEntry
	AddFavorite(ctx context.Context, country *models.Country) error
	RemoveFavorite(ctx context.Context, code string) error
	IsFavorite(code string) bool
}

// FavoritesHandler handles the favorites collection endpoints. All routes
// sit behind the session guard; the store enforces the session requirement a
// second time on mutation.
type FavoritesHandler struct {
	Store   FavoritesStore
	Catalog CountryFinder
}

// List handles GET /api/favorites.
func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Favorites())
}

// Add handles POST /api/favorites. The body carries the country code; the
// stored entry is derived from the catalog record so stale client data never
// lands in storage. Adding an already saved country is a no-op.
func (h *FavoritesHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	country, err := h.Catalog.ByCode(r.Context(), req.Code)
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, "unknown country code")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadGateway, "country service unavailable")
		return
	}

	if err := h.Store.AddFavorite(r.Context(), country); err != nil {
		if errors.Is(err, store.ErrNoSession) {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, h.Store.Favorites())
}

// Remove handles DELETE /api/favorites/{code}. Removing an absent code is a
// no-op.
func (h *FavoritesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	if err := h.Store.RemoveFavorite(r.Context(), code); err != nil {
		if errors.Is(err, store.ErrNoSession) {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
