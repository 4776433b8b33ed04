package store

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrVenueNotFound signals the venue id resolved to no row.
	ErrVenueNotFound = errors.New("venue not found")
	// ErrArtistNotFound signals the artist id resolved to no row.
	ErrArtistNotFound = errors.New("artist not found")
)

// Store provides persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// foreignKeyConstraint returns the violated constraint name for a
// foreign-key violation, or "" when err is something else.
func foreignKeyConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return pgErr.ConstraintName
	}
	return ""
}

func nullableString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}
