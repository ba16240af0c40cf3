package http

import (
	"net/http"

	"github.com/atinyakov/countrybook/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs the HTTP handler serving the countrybook pages and
// API.
//
// Routes:
//
//	GET    /                        → catalog page
//	GET    /country/{code}          → country detail page
//	GET    /login                   → login page
//	GET    /favorites               → favorites page (session required)
//	GET    /static/*                → embedded assets
//
//	GET    /api/countries           → full catalog
//	GET    /api/countries/search    → by-name search, optional region filter
//	GET    /api/countries/{code}    → one country by alpha-3 code
//	GET    /api/session             → current session state
//	POST   /api/login               → start a session
//	POST   /api/register            → register and start a session
//	POST   /api/logout              → end the session
//	GET    /api/favorites           → favorites collection (session required)
//	POST   /api/favorites           → add a favorite (session required)
//	DELETE /api/favorites/{code}    → remove a favorite (session required)
//
// Session-required routes go through middleware.RequireSession: page routes
// redirect to /login with the original location in "next", API routes answer
// 401. JSON POST endpoints additionally enforce the JSON content type.
func NewRouter(
	authHandler *AuthHandler,
	countriesHandler *CountriesHandler,
	favoritesHandler *FavoritesHandler,
	pagesHandler *PagesHandler,
	sessions middleware.SessionChecker,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	guard := middleware.RequireSession(sessions)

	// Mount API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/countries", countriesHandler.List)
		r.Get("/countries/search", countriesHandler.Search)
		r.Get("/countries/{code}", countriesHandler.Get)
		r.Get("/session", authHandler.Session)

		// Only allow requests with Content-Type: application/json
		r.Group(func(r chi.Router) {
			r.Use(chiMiddleware.AllowContentType("application/json"))
			r.Post("/login", authHandler.Login)
			r.Post("/register", authHandler.Register)
			r.Post("/logout", authHandler.Logout)
		})

		// Protected group: requires an active session
		r.Group(func(r chi.Router) {
			r.Use(guard)
			r.Get("/favorites", favoritesHandler.List)
			r.With(chiMiddleware.AllowContentType("application/json")).
				Post("/favorites", favoritesHandler.Add)
			r.Delete("/favorites/{code}", favoritesHandler.Remove)
		})
	})

	// Pages
	r.Get("/", pagesHandler.Home)
	r.Get("/country/{code}", pagesHandler.Detail)
	r.Get("/login", pagesHandler.Login)
	r.With(guard).Get("/favorites", pagesHandler.FavoritesPage)
	r.Handle("/static/*", pagesHandler.Static())

	return r
}
