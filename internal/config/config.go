// Package config provides functionality for managing configuration options
// for the application using command-line flags and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Address defines the server's listening address (ip:port).
	Address string

	// DatabaseDSN selects the optional PostgreSQL persistence backend.
	// When empty, state is kept in JSON files under DataDir.
	DatabaseDSN string

	// DataDir is the directory holding the session and favorites records.
	DataDir string

	// CatalogURL is the base URL of the external country catalog service.
	CatalogURL string

	// Config is the path to the config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Address, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.DataDir, "dir", "data", "directory for local state files")
	flag.StringVar(&options.CatalogURL, "catalog", "https://restcountries.com/v3.1", "country catalog base URL")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	// Pick up a local .env file if present.
	_ = godotenv.Load()

	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Address = serverAddress
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if dataDir := os.Getenv("DATA_DIR"); dataDir != "" {
		options.DataDir = dataDir
	}
	if catalogURL := os.Getenv("CATALOG_URL"); catalogURL != "" {
		options.CatalogURL = catalogURL
	}

	return options
}
