package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gigboard/internal/models"
)

// VenueRow pairs a venue listing row with the start times of its
// shows. Upcoming counts are computed by the caller against its own
// clock, not in SQL.
type VenueRow struct {
	ID        int64
	Name      string
	ShowTimes []time.Time
}

// AreaRow is one (city, state) group of venues.
type AreaRow struct {
	City   string
	State  string
	Venues []VenueRow
}

// VenueShowRow is a show at a venue with the artist side denormalized.
type VenueShowRow struct {
	ArtistID        int64
	ArtistName      string
	ArtistImageLink string
	StartTime       time.Time
}

// CreateVenue inserts a new venue and attaches its genres, reusing
// existing genre rows by name and creating the missing ones, all in a
// single transaction.
func (s *Store) CreateVenue(ctx context.Context, venue *models.Venue) (*models.Venue, error) {
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
		INSERT INTO venues (name, city, state, address, phone, image_link, facebook_link, website, seeking_talent, seeking_description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`, venue.Name, venue.City, venue.State, venue.Address, venue.Phone,
		venue.ImageLink, venue.FacebookLink, venue.Website,
		venue.SeekingTalent, venue.SeekingDescription,
	).Scan(&venue.ID)
	if err != nil {
		return nil, fmt.Errorf("insert venue: %w", err)
	}

	if err := attachVenueGenres(ctx, tx, venue.ID, venue.Genres); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return venue, nil
}

// VenueByID retrieves a single venue with its genre names.
func (s *Store) VenueByID(ctx context.Context, id int64) (*models.Venue, error) {
	var (
		v     models.Venue
		phone sql.NullString
		image sql.NullString
		fb    sql.NullString
		site  sql.NullString
		desc  sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, city, state, address, phone, image_link, facebook_link, website, seeking_talent, seeking_description
		FROM venues
		WHERE id = $1
	`, id).Scan(&v.ID, &v.Name, &v.City, &v.State, &v.Address,
		&phone, &image, &fb, &site, &v.SeekingTalent, &desc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select venue: %w", err)
	}

	v.Phone = nullableString(phone)
	v.ImageLink = nullableString(image)
	v.FacebookLink = nullableString(fb)
	v.Website = nullableString(site)
	v.SeekingDescription = nullableString(desc)

	v.Genres, err = s.venueGenres(ctx, id)
	if err != nil {
		return nil, err
	}

	return &v, nil
}

// VenueAreas returns venues grouped by their distinct (city, state)
// pairs: one query for the pairs, then one per pair for its members
// and their show times.
func (s *Store) VenueAreas(ctx context.Context) ([]AreaRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT city, state
		FROM venues
		ORDER BY state ASC, city ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select areas: %w", err)
	}
	defer rows.Close()

	var areas []AreaRow
	for rows.Next() {
		var area AreaRow
		if err := rows.Scan(&area.City, &area.State); err != nil {
			return nil, fmt.Errorf("scan area: %w", err)
		}
		areas = append(areas, area)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate areas: %w", err)
	}

	for i := range areas {
		venues, err := s.venuesInArea(ctx, areas[i].City, areas[i].State)
		if err != nil {
			return nil, err
		}
		areas[i].Venues = venues
	}

	return areas, nil
}

func (s *Store) venuesInArea(ctx context.Context, city, state string) ([]VenueRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT v.id, v.name, s.start_time
		FROM venues v
		LEFT JOIN shows s ON s.venue_id = v.id
		WHERE v.city = $1 AND v.state = $2
		ORDER BY v.id ASC
	`, city, state)
	if err != nil {
		return nil, fmt.Errorf("select area venues: %w", err)
	}
	defer rows.Close()

	return collectVenueRows(rows)
}

// SearchVenues returns venues whose name contains the term,
// case-insensitively. An empty term matches every venue.
func (s *Store) SearchVenues(ctx context.Context, term string) ([]VenueRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT v.id, v.name, s.start_time
		FROM venues v
		LEFT JOIN shows s ON s.venue_id = v.id
		WHERE v.name ILIKE '%' || $1 || '%'
		ORDER BY v.id ASC
	`, term)
	if err != nil {
		return nil, fmt.Errorf("search venues: %w", err)
	}
	defer rows.Close()

	return collectVenueRows(rows)
}

// VenueShows returns every show at a venue with the artist's name and
// image link joined in, oldest first.
func (s *Store) VenueShows(ctx context.Context, venueID int64) ([]VenueShowRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.artist_id, a.name, a.image_link, s.start_time
		FROM shows s
		JOIN artists a ON a.id = s.artist_id
		WHERE s.venue_id = $1
		ORDER BY s.start_time ASC
	`, venueID)
	if err != nil {
		return nil, fmt.Errorf("select venue shows: %w", err)
	}
	defer rows.Close()

	var shows []VenueShowRow
	for rows.Next() {
		var (
			row   VenueShowRow
			image sql.NullString
		)
		if err := rows.Scan(&row.ArtistID, &row.ArtistName, &image, &row.StartTime); err != nil {
			return nil, fmt.Errorf("scan venue show: %w", err)
		}
		row.ArtistImageLink = nullableString(image)
		shows = append(shows, row)
	}
	return shows, rows.Err()
}

// UpdateVenue overwrites every scalar attribute and replaces the genre
// association set: all existing join rows are cleared and the submitted
// set reattached inside one transaction.
func (s *Store) UpdateVenue(ctx context.Context, id int64, venue *models.Venue) (*models.Venue, error) {
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
		UPDATE venues
		SET name = $1, city = $2, state = $3, address = $4, phone = $5,
		    image_link = $6, facebook_link = $7, website = $8,
		    seeking_talent = $9, seeking_description = $10
		WHERE id = $11
		RETURNING id
	`, venue.Name, venue.City, venue.State, venue.Address, venue.Phone,
		venue.ImageLink, venue.FacebookLink, venue.Website,
		venue.SeekingTalent, venue.SeekingDescription, id,
	).Scan(&venue.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update venue: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM venue_genres
		WHERE venue_id = $1
	`, id); err != nil {
		return nil, fmt.Errorf("clear venue genres: %w", err)
	}

	if err := attachVenueGenres(ctx, tx, id, venue.Genres); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return venue, nil
}

// DeleteVenue removes a venue and, through the schema cascade, every
// show booked there. The deleted venue's name is returned for the
// confirmation message.
func (s *Store) DeleteVenue(ctx context.Context, id int64) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx, `
		DELETE FROM venues
		WHERE id = $1
		RETURNING name
	`, id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrVenueNotFound
	}
	if err != nil {
		return "", fmt.Errorf("delete venue: %w", err)
	}
	return name, nil
}

func (s *Store) venueGenres(ctx context.Context, venueID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT g.name
		FROM genres g
		JOIN venue_genres vg ON vg.genre_id = g.id
		WHERE vg.venue_id = $1
		ORDER BY g.id ASC
	`, venueID)
	if err != nil {
		return nil, fmt.Errorf("select venue genres: %w", err)
	}
	defer rows.Close()

	// Non-nil so a venue without genres serializes as [].
	genres := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan venue genre: %w", err)
		}
		genres = append(genres, name)
	}
	return genres, rows.Err()
}

func attachVenueGenres(ctx context.Context, tx *sql.Tx, venueID int64, genres []string) error {
	for _, name := range genres {
		genreID, err := upsertGenre(ctx, tx, name)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO venue_genres (venue_id, genre_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, venueID, genreID); err != nil {
			return fmt.Errorf("attach venue genre %q: %w", name, err)
		}
	}
	return nil
}

func collectVenueRows(rows *sql.Rows) ([]VenueRow, error) {
	var (
		ordered []int64
		byID    = make(map[int64]*VenueRow)
	)
	for rows.Next() {
		var (
			id    int64
			name  string
			start sql.NullTime
		)
		if err := rows.Scan(&id, &name, &start); err != nil {
			return nil, fmt.Errorf("scan venue row: %w", err)
		}
		row, ok := byID[id]
		if !ok {
			row = &VenueRow{ID: id, Name: name}
			byID[id] = row
			ordered = append(ordered, id)
		}
		if start.Valid {
			row.ShowTimes = append(row.ShowTimes, start.Time)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate venue rows: %w", err)
	}

	venues := make([]VenueRow, 0, len(ordered))
	for _, id := range ordered {
		venues = append(venues, *byID[id])
	}
	return venues, nil
}
