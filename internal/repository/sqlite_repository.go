package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type sqliteStore struct {
	db *sql.DB
}

// NewSQLiteStore returns a Store backed by the client_storage table.
func NewSQLiteStore(db *sql.DB) Store {
	return &sqliteStore{db: db}
}

func (s *sqliteStore) Load(ctx context.Context, key string) (string, error) {
	query := "SELECT value FROM client_storage WHERE key = ?"
	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("could not load key %q: %w", key, err)
	}
	return value, nil
}

func (s *sqliteStore) Save(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO client_storage (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("could not save key %q: %w", key, err)
	}
	return nil
}

func (s *sqliteStore) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM client_storage WHERE key = ?", key); err != nil {
		return fmt.Errorf("could not remove key %q: %w", key, err)
	}
	return nil
}
