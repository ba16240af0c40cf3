// Package main initializes and starts the countrybook server, setting up
// configuration, logging, persistence, the session and favorites store, the
// catalog client, and the HTTP routes.
package main

import (
	"cmp"
	"context"
	"fmt"

	nethttp "net/http"

	"github.com/atinyakov/countrybook/internal/catalog"
	"github.com/atinyakov/countrybook/internal/config"
	"github.com/atinyakov/countrybook/internal/db"
	"github.com/atinyakov/countrybook/internal/logger"
	"github.com/atinyakov/countrybook/internal/repository"
	"github.com/atinyakov/countrybook/internal/server/handler/http"
	"github.com/atinyakov/countrybook/internal/store"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()
	addr := options.Address

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Choose the persistence backend: JSON files in the data directory by
	// default, PostgreSQL when a DSN is configured.
	var repo store.Repository
	if options.DatabaseDSN != "" {
		postgresDB, err := db.InitPostgres(options.DatabaseDSN)
		if err != nil {
			zapLogger.Fatal("cannot init database", zap.Error(err))
		}
		repo = repository.NewPostgresRepository(postgresDB)
	} else {
		fileRepo, err := repository.NewFileRepository(options.DataDir, zapLogger)
		if err != nil {
			zapLogger.Fatal("cannot init data directory", zap.Error(err))
		}
		repo = fileRepo
	}

	// Initialize the session and favorites store; the one-time load makes
	// it ready before any request is served.
	sessionStore := store.New(repo, zapLogger)
	if err := sessionStore.Load(context.Background()); err != nil {
		zapLogger.Fatal("cannot load persisted state", zap.Error(err))
	}

	// Client for the external country catalog service.
	catalogClient := catalog.New(catalog.Config{BaseURL: options.CatalogURL})

	// Create HTTP handlers for auth, catalog, favorites, and pages.
	validate := validator.New()
	authHandler := &http.AuthHandler{Store: sessionStore, Validate: validate}
	countriesHandler := &http.CountriesHandler{Catalog: catalogClient}
	favoritesHandler := &http.FavoritesHandler{Store: sessionStore, Catalog: catalogClient}
	pagesHandler, err := http.NewPagesHandler(sessionStore, sessionStore, catalogClient, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to build page handler", zap.Error(err))
	}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, countriesHandler, favoritesHandler, pagesHandler, sessionStore, zapLogger)

	// Create and start the HTTP server.
	server := &nethttp.Server{
		Addr:    addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
