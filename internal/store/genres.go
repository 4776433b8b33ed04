package store

import (
	"context"
	"database/sql"
	"fmt"
)

// upsertGenre returns the id of the genre row with the given name,
// inserting it first if no row exists yet. The upsert is a single
// constrained statement, so two concurrent submissions of the same new
// name cannot produce duplicate rows. Matching is byte-exact: "Rock"
// and "rock" are distinct genres.
func upsertGenre(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, `
		INSERT INTO genres (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert genre %q: %w", name, err)
	}
	return id, nil
}

// GenreNames returns every genre name known to the directory.
func (s *Store) GenreNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name
		FROM genres
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select genres: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
