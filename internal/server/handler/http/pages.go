package http

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/atinyakov/countrybook/internal/catalog"
	"github.com/atinyakov/countrybook/web"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// regions drive the filter dropdown on the catalog page.
var regions = []string{"Africa", "Americas", "Asia", "Europe", "Oceania"}

// PagesHandler renders the server-side HTML pages from the embedded
// templates.
type PagesHandler struct {
	Sessions  SessionStore
	Favorites FavoritesStore
	Catalog   CountryFinder

	tmpl *template.Template
	log  *zap.Logger
}

// NewPagesHandler parses the embedded templates and returns the handler.
func NewPagesHandler(sessions SessionStore, favorites FavoritesStore, finder CountryFinder, log *zap.Logger) (*PagesHandler, error) {
	tmpl, err := template.ParseFS(web.Templates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &PagesHandler{
		Sessions:  sessions,
		Favorites: favorites,
		Catalog:   finder,
		tmpl:      tmpl,
		log:       log,
	}, nil
}

// Home renders the catalog page shell. The country grid itself is loaded by
// the page's script through the search API, with a debounced input.
func (h *PagesHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "home.html", map[string]any{
		"Session": h.Sessions.CurrentSession(),
		"Regions": regions,
	})
}

// Detail renders the country detail page.
func (h *PagesHandler) Detail(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	country, err := h.Catalog.ByCode(r.Context(), code)
	if errors.Is(err, catalog.ErrNotFound) {
		h.render(w, http.StatusNotFound, "error.html", map[string]any{
			"Session": h.Sessions.CurrentSession(),
			"Message": "Country not found.",
		})
		return
	}
	if err != nil {
		h.log.Error("fetch country", zap.String("code", code), zap.Error(err))
		h.render(w, http.StatusBadGateway, "error.html", map[string]any{
			"Session": h.Sessions.CurrentSession(),
			"Message": "The country service is unavailable. Please try again later.",
		})
		return
	}

	h.render(w, http.StatusOK, "detail.html", map[string]any{
		"Session":    h.Sessions.CurrentSession(),
		"Country":    country,
		"IsFavorite": h.Favorites.IsFavorite(country.CCA3),
	})
}

// Login renders the login and registration page. The "next" query parameter
// carries the location to return to after a successful sign-in.
func (h *PagesHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "login.html", map[string]any{
		"Session": h.Sessions.CurrentSession(),
		"Next":    r.URL.Query().Get("next"),
	})
}

// FavoritesPage renders the saved countries. The route sits behind the
// session guard.
func (h *PagesHandler) FavoritesPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "favorites.html", map[string]any{
		"Session":   h.Sessions.CurrentSession(),
		"Favorites": h.Favorites.Favorites(),
	})
}

// Static serves the embedded static assets.
func (h *PagesHandler) Static() http.Handler {
	return http.FileServer(http.FS(web.Static))
}

func (h *PagesHandler) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.tmpl.ExecuteTemplate(w, name, data); err != nil {
		h.log.Error("render page", zap.String("template", name), zap.Error(err))
	}
}
