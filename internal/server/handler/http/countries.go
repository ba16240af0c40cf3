package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/atinyakov/countrybook/internal/catalog"
	"github.com/atinyakov/countrybook/internal/models"
	"github.com/go-chi/chi/v5"
)

// CountryFinder defines the catalog queries required by the country handlers.
type CountryFinder interface {
	All(ctx context.Context) ([]models.Country, error)
	ByName(ctx context.Context, name string) ([]models.Country, error)
	ByRegion(ctx context.Context, region string) ([]models.Country, error)
	ByCode(ctx context.Context, code string) (*models.Country, error)
}

// CountriesHandler serves catalog data to the pages.
type CountriesHandler struct {
	Catalog CountryFinder
}

// List handles GET /api/countries, returning the full catalog.
func (h *CountriesHandler) List(w http.ResponseWriter, r *http.Request) {
	countries, err := h.Catalog.All(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "country service unavailable")
		return
	}
	writeJSON(w, http.StatusOK, countries)
}

// Search handles GET /api/countries/search?name=&region=.
//
// With only a region it queries by region; with a name it queries by name
// and, when a region is also selected, keeps only the matches in that region
// (the intersection of the two result sets). A term matching nothing yields
// an empty list with status 200, distinct from a transport failure.
func (h *CountriesHandler) Search(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	region := strings.TrimSpace(r.URL.Query().Get("region"))

	var (
		countries []models.Country
		err       error
	)
	switch {
	case name == "" && region == "":
		countries, err = h.Catalog.All(r.Context())
	case name == "":
		countries, err = h.Catalog.ByRegion(r.Context(), region)
	default:
		countries, err = h.Catalog.ByName(r.Context(), name)
		if err == nil && region != "" {
			filtered := make([]models.Country, 0, len(countries))
			for _, c := range countries {
				if c.Region == region {
					filtered = append(filtered, c)
				}
			}
			countries = filtered
		}
	}

	if errors.Is(err, catalog.ErrNotFound) {
		writeJSON(w, http.StatusOK, []models.Country{})
		return
	}
	if err != nil {
		writeError(w, http.StatusBadGateway, "country service unavailable")
		return
	}
	if countries == nil {
		countries = []models.Country{}
	}
	writeJSON(w, http.StatusOK, countries)
}

// Get handles GET /api/countries/{code}, returning one country by alpha-3
// code.
func (h *CountriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	country, err := h.Catalog.ByCode(r.Context(), code)
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, "country not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadGateway, "country service unavailable")
		return
	}
	writeJSON(w, http.StatusOK, country)
}
