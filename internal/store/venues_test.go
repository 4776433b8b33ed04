package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"gigboard/internal/models"
)

func expectGenreAttach(mock sqlmock.Sqlmock, table string, ownerID, genreID int64, name string) {
	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO genres (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`)).
		WithArgs(name).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(genreID))

	mock.ExpectExec("INSERT INTO " + table).
		WithArgs(ownerID, genreID).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func TestCreateVenueAttachesGenres(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO venues (name, city, state, address, phone, image_link, facebook_link, website, seeking_talent, seeking_description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`)).
		WithArgs("The Musical Hop", "San Francisco", "CA", "1015 Folsom Street", "1231231234",
			"", "", "", true, "Looking for local artists").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	expectGenreAttach(mock, "venue_genres", 7, 1, "Jazz")
	expectGenreAttach(mock, "venue_genres", 7, 2, "Folk")
	mock.ExpectCommit()

	venue := &models.Venue{
		Name:               "The Musical Hop",
		City:               "San Francisco",
		State:              "CA",
		Address:            "1015 Folsom Street",
		Phone:              "1231231234",
		SeekingTalent:      true,
		SeekingDescription: "Looking for local artists",
		Genres:             []string{"Jazz", "Folk"},
	}

	got, err := s.CreateVenue(context.Background(), venue)
	if err != nil {
		t.Fatalf("CreateVenue: %v", err)
	}
	if got.ID != 7 {
		t.Fatalf("expected venue ID 7, got %d", got.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestVenueByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, name, city, state, address, phone, image_link, facebook_link, website, seeking_talent, seeking_description
		FROM venues
		WHERE id = $1
	`)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "city", "state", "address", "phone",
			"image_link", "facebook_link", "website", "seeking_talent", "seeking_description",
		}).AddRow(int64(2), "Park Square Live Music & Coffee", "San Francisco", "CA",
			"34 Whiskey Moore Ave", nil, nil, nil, nil, false, nil))

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT g.name
		FROM genres g
		JOIN venue_genres vg ON vg.genre_id = g.id
		WHERE vg.venue_id = $1
		ORDER BY g.id ASC
	`)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Rock n Roll").AddRow("Jazz"))

	venue, err := s.VenueByID(context.Background(), 2)
	if err != nil {
		t.Fatalf("VenueByID: %v", err)
	}

	if venue.Name != "Park Square Live Music & Coffee" {
		t.Fatalf("unexpected venue: %#v", venue)
	}
	if venue.Phone != "" || venue.Website != "" {
		t.Fatalf("expected NULL columns to map to empty strings, got %#v", venue)
	}
	if len(venue.Genres) != 2 || venue.Genres[0] != "Rock n Roll" {
		t.Fatalf("unexpected genres: %#v", venue.Genres)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestVenueByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM venues")).
		WithArgs(int64(999)).
		WillReturnError(sql.ErrNoRows)

	_, err = s.VenueByID(context.Background(), 999)
	if !errors.Is(err, ErrVenueNotFound) {
		t.Fatalf("expected ErrVenueNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestVenueAreasGroupsByCityAndState(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT DISTINCT city, state
		FROM venues
		ORDER BY state ASC, city ASC
	`)).
		WillReturnRows(sqlmock.NewRows([]string{"city", "state"}).
			AddRow("San Francisco", "CA").
			AddRow("New York", "NY"))

	soon := time.Now().Add(48 * time.Hour)
	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT v.id, v.name, s.start_time
		FROM venues v
		LEFT JOIN shows s ON s.venue_id = v.id
		WHERE v.city = $1 AND v.state = $2
		ORDER BY v.id ASC
	`)).
		WithArgs("San Francisco", "CA").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "start_time"}).
			AddRow(int64(1), "The Musical Hop", nil).
			AddRow(int64(2), "Park Square Live Music & Coffee", soon).
			AddRow(int64(2), "Park Square Live Music & Coffee", soon.Add(time.Hour)))

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT v.id, v.name, s.start_time
		FROM venues v
		LEFT JOIN shows s ON s.venue_id = v.id
		WHERE v.city = $1 AND v.state = $2
		ORDER BY v.id ASC
	`)).
		WithArgs("New York", "NY").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "start_time"}).
			AddRow(int64(3), "The Dueling Pianos Bar", nil))

	areas, err := s.VenueAreas(context.Background())
	if err != nil {
		t.Fatalf("VenueAreas: %v", err)
	}

	if len(areas) != 2 {
		t.Fatalf("expected 2 areas, got %d", len(areas))
	}
	if areas[0].City != "San Francisco" || len(areas[0].Venues) != 2 {
		t.Fatalf("unexpected first area: %#v", areas[0])
	}
	if len(areas[0].Venues[0].ShowTimes) != 0 {
		t.Fatalf("venue without shows should have no show times: %#v", areas[0].Venues[0])
	}
	if len(areas[0].Venues[1].ShowTimes) != 2 {
		t.Fatalf("expected joined rows folded into one venue, got %#v", areas[0].Venues[1])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSearchVenuesEmptyTermMatchesAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT v.id, v.name, s.start_time
		FROM venues v
		LEFT JOIN shows s ON s.venue_id = v.id
		WHERE v.name ILIKE '%' || $1 || '%'
		ORDER BY v.id ASC
	`)).
		WithArgs("").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "start_time"}).
			AddRow(int64(1), "The Musical Hop", nil).
			AddRow(int64(2), "Park Square Live Music & Coffee", time.Now().Add(time.Hour)))

	venues, err := s.SearchVenues(context.Background(), "")
	if err != nil {
		t.Fatalf("SearchVenues: %v", err)
	}

	if len(venues) != 2 {
		t.Fatalf("expected every venue to match the empty term, got %#v", venues)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateVenueReplacesGenres(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`
		UPDATE venues
	`)).
		WithArgs("The Musical Hop", "San Francisco", "CA", "1015 Folsom Street", "",
			"", "", "", false, "", int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	mock.ExpectExec(regexp.QuoteMeta(`
		DELETE FROM venue_genres
		WHERE venue_id = $1
	`)).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	expectGenreAttach(mock, "venue_genres", 3, 2, "Folk")
	expectGenreAttach(mock, "venue_genres", 3, 5, "Classical")
	mock.ExpectCommit()

	venue := &models.Venue{
		Name:    "The Musical Hop",
		City:    "San Francisco",
		State:   "CA",
		Address: "1015 Folsom Street",
		Genres:  []string{"Folk", "Classical"},
	}

	got, err := s.UpdateVenue(context.Background(), 3, venue)
	if err != nil {
		t.Fatalf("UpdateVenue: %v", err)
	}
	if got.ID != 3 {
		t.Fatalf("expected venue ID 3, got %d", got.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateVenueNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`
		UPDATE venues
	`)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err = s.UpdateVenue(context.Background(), 999, &models.Venue{Name: "Nobody"})
	if !errors.Is(err, ErrVenueNotFound) {
		t.Fatalf("expected ErrVenueNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteVenueReturnsName(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		DELETE FROM venues
		WHERE id = $1
		RETURNING name
	`)).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("The Dueling Pianos Bar"))

	name, err := s.DeleteVenue(context.Background(), 3)
	if err != nil {
		t.Fatalf("DeleteVenue: %v", err)
	}
	if name != "The Dueling Pianos Bar" {
		t.Fatalf("expected deleted venue name, got %q", name)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestVenueByIDWithoutGenres(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM venues")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "city", "state", "address", "phone",
			"image_link", "facebook_link", "website", "seeking_talent", "seeking_description",
		}).AddRow(int64(1), "The Musical Hop", "San Francisco", "CA",
			"1015 Folsom Street", nil, nil, nil, nil, false, nil))

	mock.ExpectQuery(regexp.QuoteMeta("FROM genres g")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"name"}))

	venue, err := s.VenueByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("VenueByID: %v", err)
	}

	// Zero join rows still yields [] in the JSON payload, not null.
	if venue.Genres == nil {
		t.Fatal("expected non-nil genres slice")
	}
	if len(venue.Genres) != 0 {
		t.Fatalf("expected no genres, got %#v", venue.Genres)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteVenueLeavesShowCleanupToSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	// The shows table declares venue_id ... ON DELETE CASCADE
	// (migrations/0001_init.up.sql), so deleting a venue with booked
	// shows must issue exactly this one statement and nothing against
	// shows. Any extra statement would fail the ordered expectations.
	mock.ExpectQuery(regexp.QuoteMeta(`
		DELETE FROM venues
		WHERE id = $1
		RETURNING name
	`)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Park Square Live Music & Coffee"))

	if _, err := s.DeleteVenue(context.Background(), 2); err != nil {
		t.Fatalf("DeleteVenue: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteVenueNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM venues")).
		WithArgs(int64(999)).
		WillReturnError(sql.ErrNoRows)

	_, err = s.DeleteVenue(context.Background(), 999)
	if !errors.Is(err, ErrVenueNotFound) {
		t.Fatalf("expected ErrVenueNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
