package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atinyakov/countrybook/internal/models"
)

// PostgresRepository implements the persistence operations against a
// PostgreSQL database, for deployments that prefer a database over local
// files. The favorites table keeps insertion order via its position column,
// and every save is a full rewrite in a single transaction, mirroring the
// file backend.
type PostgresRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresRepository creates a new PostgresRepository with the given
// database connection. db must be a valid *sql.DB connected to a PostgreSQL
// instance.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

// LoadSession returns the persisted session, or nil if the table is empty.
func (r *PostgresRepository) LoadSession(ctx context.Context) (*models.Session, error) {
	var session models.Session
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT id, email, name FROM session LIMIT 1`,
	).Scan(&session.ID, &session.Email, &session.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return &session, nil
}

// SaveSession replaces the session record. The table holds at most one row.
func (r *PostgresRepository) SaveSession(ctx context.Context, s *models.Session) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM session`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO session (id, email, name) VALUES ($1, $2, $3)`,
		s.ID, s.Email, s.Name,
	); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// DeleteSession erases the session record.
func (r *PostgresRepository) DeleteSession(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM session`); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// LoadFavorites returns the favorites sequence in insertion order.
func (r *PostgresRepository) LoadFavorites(ctx context.Context) ([]models.FavoriteEntry, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT cca3, name, flag FROM favorites ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("load favorites: %w", err)
	}
	defer rows.Close()

	var favorites []models.FavoriteEntry
	for rows.Next() {
		var f models.FavoriteEntry
		if err := rows.Scan(&f.CCA3, &f.Name, &f.Flag); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		favorites = append(favorites, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load favorites: %w", err)
	}
	return favorites, nil
}

// SaveFavorites rewrites the favorites table with the given sequence.
func (r *PostgresRepository) SaveFavorites(ctx context.Context, favorites []models.FavoriteEntry) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM favorites`); err != nil {
		return fmt.Errorf("clear favorites: %w", err)
	}
	for _, f := range favorites {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO favorites (cca3, name, flag) VALUES ($1, $2, $3)`,
			f.CCA3, f.Name, f.Flag,
		); err != nil {
			return fmt.Errorf("insert favorite: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
