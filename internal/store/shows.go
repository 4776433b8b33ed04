package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"gigboard/internal/models"
)

// CreateShow inserts a new show. The referenced artist and venue are
// not checked up front; a dangling id surfaces as the foreign-key
// violation at insert time and is mapped to the matching not-found
// error.
func (s *Store) CreateShow(ctx context.Context, show *models.Show) (*models.Show, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO shows (artist_id, venue_id, start_time)
		VALUES ($1, $2, $3)
		RETURNING id
	`, show.ArtistID, show.VenueID, show.StartTime).Scan(&show.ID)
	if err != nil {
		switch constraint := foreignKeyConstraint(err); {
		case strings.Contains(constraint, "artist"):
			return nil, ErrArtistNotFound
		case strings.Contains(constraint, "venue"):
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("insert show: %w", err)
	}
	return show, nil
}

// ListShows returns every show with venue and artist details joined
// in. The result is unbounded and unfiltered.
func (s *Store) ListShows(ctx context.Context) ([]models.ShowListing, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.artist_id, s.venue_id, s.start_time, v.name, a.name, a.image_link
		FROM shows s
		JOIN venues v ON v.id = s.venue_id
		JOIN artists a ON a.id = s.artist_id
		ORDER BY s.start_time ASC, s.id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select shows: %w", err)
	}
	defer rows.Close()

	var shows []models.ShowListing
	for rows.Next() {
		var (
			l     models.ShowListing
			image sql.NullString
		)
		if err := rows.Scan(&l.ID, &l.ArtistID, &l.VenueID, &l.StartTime,
			&l.VenueName, &l.ArtistName, &image); err != nil {
			return nil, fmt.Errorf("scan show: %w", err)
		}
		l.ArtistImageLink = nullableString(image)
		shows = append(shows, l)
	}
	return shows, rows.Err()
}
