// Package repository provides persistence backends for the session and
// favorites records.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atinyakov/countrybook/internal/models"
	"go.uber.org/zap"
)

const (
	sessionFile   = "session.json"
	favoritesFile = "favorites.json"
)

// FileRepository stores the session and favorites as JSON files in a data
// directory, standing in for the browser's local storage of the original
// application. A record that fails to parse is treated as absent; it is
// never surfaced as an error.
type FileRepository struct {
	dir string
	log *zap.Logger
}

// NewFileRepository creates the data directory if needed and returns a
// repository rooted there.
func NewFileRepository(dir string, log *zap.Logger) (*FileRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileRepository{dir: dir, log: log}, nil
}

// LoadSession returns the persisted session, or nil if none is stored.
func (r *FileRepository) LoadSession(_ context.Context) (*models.Session, error) {
	data, err := os.ReadFile(filepath.Join(r.dir, sessionFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session record: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		r.log.Warn("malformed session record, treating as absent", zap.Error(err))
		return nil, nil
	}
	return &session, nil
}

// SaveSession writes the session record.
func (r *FileRepository) SaveSession(_ context.Context, s *models.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}
	return os.WriteFile(filepath.Join(r.dir, sessionFile), data, 0o600)
}

// DeleteSession removes the session record. A missing record is not an error.
func (r *FileRepository) DeleteSession(_ context.Context) error {
	if err := os.Remove(filepath.Join(r.dir, sessionFile)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete session record: %w", err)
	}
	return nil
}

// LoadFavorites returns the persisted favorites sequence in insertion order,
// or an empty sequence when the record is absent or malformed.
func (r *FileRepository) LoadFavorites(_ context.Context) ([]models.FavoriteEntry, error) {
	data, err := os.ReadFile(filepath.Join(r.dir, favoritesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read favorites record: %w", err)
	}

	var favorites []models.FavoriteEntry
	if err := json.Unmarshal(data, &favorites); err != nil {
		r.log.Warn("malformed favorites record, starting empty", zap.Error(err))
		return nil, nil
	}
	return favorites, nil
}

// SaveFavorites rewrites the whole favorites file.
func (r *FileRepository) SaveFavorites(_ context.Context, favorites []models.FavoriteEntry) error {
	if favorites == nil {
		favorites = []models.FavoriteEntry{}
	}
	data, err := json.Marshal(favorites)
	if err != nil {
		return fmt.Errorf("encode favorites record: %w", err)
	}
	return os.WriteFile(filepath.Join(r.dir, favoritesFile), data, 0o600)
}
