package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gigboard/internal/models"
)

// ArtistRow pairs an artist search row with the start times of its
// shows, counted by the caller against its own clock.
type ArtistRow struct {
	ID        int64
	Name      string
	ShowTimes []time.Time
}

// ArtistShowRow is a show by an artist with the venue side denormalized.
type ArtistShowRow struct {
	VenueID        int64
	VenueName      string
	VenueImageLink string
	StartTime      time.Time
}

// CreateArtist inserts a new artist and attaches its genres, reusing
// existing genre rows by name and creating the missing ones, all in a
// single transaction.
func (s *Store) CreateArtist(ctx context.Context, artist *models.Artist) (*models.Artist, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO artists (name, city, state, phone, image_link, facebook_link, website, seeking_venue, seeking_description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, artist.Name, artist.City, artist.State, artist.Phone,
		artist.ImageLink, artist.FacebookLink, artist.Website,
		artist.SeekingVenue, artist.SeekingDescription,
	).Scan(&artist.ID)
	if err != nil {
		return nil, fmt.Errorf("insert artist: %w", err)
	}

	if err := attachArtistGenres(ctx, tx, artist.ID, artist.Genres); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return artist, nil
}

// ListArtists returns every artist as a bare (id, name) pair.
func (s *Store) ListArtists(ctx context.Context) ([]models.ArtistRef, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name
		FROM artists
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select artists: %w", err)
	}
	defer rows.Close()

	var artists []models.ArtistRef
	for rows.Next() {
		var a models.ArtistRef
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, fmt.Errorf("scan artist: %w", err)
		}
		artists = append(artists, a)
	}
	return artists, rows.Err()
}

// ArtistByID retrieves a single artist with its genre names.
func (s *Store) ArtistByID(ctx context.Context, id int64) (*models.Artist, error) {
	var (
		a     models.Artist
		phone sql.NullString
		image sql.NullString
		fb    sql.NullString
		site  sql.NullString
		desc  sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, city, state, phone, image_link, facebook_link, website, seeking_venue, seeking_description
		FROM artists
		WHERE id = $1
	`, id).Scan(&a.ID, &a.Name, &a.City, &a.State,
		&phone, &image, &fb, &site, &a.SeekingVenue, &desc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrArtistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select artist: %w", err)
	}

	a.Phone = nullableString(phone)
	a.ImageLink = nullableString(image)
	a.FacebookLink = nullableString(fb)
	a.Website = nullableString(site)
	a.SeekingDescription = nullableString(desc)

	a.Genres, err = s.artistGenres(ctx, id)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// SearchArtists returns artists whose name, city, or state contains
// the term, case-insensitively. An empty term matches every artist.
func (s *Store) SearchArtists(ctx context.Context, term string) ([]ArtistRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.name, s.start_time
		FROM artists a
		LEFT JOIN shows s ON s.artist_id = a.id
		WHERE a.name ILIKE '%' || $1 || '%'
		   OR a.city ILIKE '%' || $1 || '%'
		   OR a.state ILIKE '%' || $1 || '%'
		ORDER BY a.id ASC
	`, term)
	if err != nil {
		return nil, fmt.Errorf("search artists: %w", err)
	}
	defer rows.Close()

	var (
		ordered []int64
		byID    = make(map[int64]*ArtistRow)
	)
	for rows.Next() {
		var (
			id    int64
			name  string
			start sql.NullTime
		)
		if err := rows.Scan(&id, &name, &start); err != nil {
			return nil, fmt.Errorf("scan artist row: %w", err)
		}
		row, ok := byID[id]
		if !ok {
			row = &ArtistRow{ID: id, Name: name}
			byID[id] = row
			ordered = append(ordered, id)
		}
		if start.Valid {
			row.ShowTimes = append(row.ShowTimes, start.Time)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artist rows: %w", err)
	}

	artists := make([]ArtistRow, 0, len(ordered))
	for _, id := range ordered {
		artists = append(artists, *byID[id])
	}
	return artists, nil
}

// ArtistShows returns every show by an artist with the venue's name and
// image link joined in, oldest first.
func (s *Store) ArtistShows(ctx context.Context, artistID int64) ([]ArtistShowRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.venue_id, v.name, v.image_link, s.start_time
		FROM shows s
		JOIN venues v ON v.id = s.venue_id
		WHERE s.artist_id = $1
		ORDER BY s.start_time ASC
	`, artistID)
	if err != nil {
		return nil, fmt.Errorf("select artist shows: %w", err)
	}
	defer rows.Close()

	var shows []ArtistShowRow
	for rows.Next() {
		var (
			row   ArtistShowRow
			image sql.NullString
		)
		if err := rows.Scan(&row.VenueID, &row.VenueName, &image, &row.StartTime); err != nil {
			return nil, fmt.Errorf("scan artist show: %w", err)
		}
		row.VenueImageLink = nullableString(image)
		shows = append(shows, row)
	}
	return shows, rows.Err()
}

// UpdateArtist overwrites every scalar attribute and replaces the genre
// association set: all existing join rows are cleared and the submitted
// set reattached inside one transaction.
func (s *Store) UpdateArtist(ctx context.Context, id int64, artist *models.Artist) (*models.Artist, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	err = tx.QueryRowContext(ctx, `
		UPDATE artists
		SET name = $1, city = $2, state = $3, phone = $4,
		    image_link = $5, facebook_link = $6, website = $7,
		    seeking_venue = $8, seeking_description = $9
		WHERE id = $10
		RETURNING id
	`, artist.Name, artist.City, artist.State, artist.Phone,
		artist.ImageLink, artist.FacebookLink, artist.Website,
		artist.SeekingVenue, artist.SeekingDescription, id,
	).Scan(&artist.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrArtistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update artist: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM artist_genres
		WHERE artist_id = $1
	`, id); err != nil {
		return nil, fmt.Errorf("clear artist genres: %w", err)
	}

	if err := attachArtistGenres(ctx, tx, id, artist.Genres); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return artist, nil
}

// DeleteArtist removes an artist and, through the schema cascade, every
// show they were booked for.
func (s *Store) DeleteArtist(ctx context.Context, id int64) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx, `
		DELETE FROM artists
		WHERE id = $1
		RETURNING name
	`, id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrArtistNotFound
	}
	if err != nil {
		return "", fmt.Errorf("delete artist: %w", err)
	}
	return name, nil
}

func (s *Store) artistGenres(ctx context.Context, artistID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT g.name
		FROM genres g
		JOIN artist_genres ag ON ag.genre_id = g.id
		WHERE ag.artist_id = $1
		ORDER BY g.id ASC
	`, artistID)
	if err != nil {
		return nil, fmt.Errorf("select artist genres: %w", err)
	}
	defer rows.Close()

	// Non-nil so an artist without genres serializes as [].
	genres := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan artist genre: %w", err)
		}
		genres = append(genres, name)
	}
	return genres, rows.Err()
}

func attachArtistGenres(ctx context.Context, tx *sql.Tx, artistID int64, genres []string) error {
	for _, name := range genres {
		genreID, err := upsertGenre(ctx, tx, name)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO artist_genres (artist_id, genre_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, artistID, genreID); err != nil {
			return fmt.Errorf("attach artist genre %q: %w", name, err)
		}
	}
	return nil
}
