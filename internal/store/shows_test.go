package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"gigboard/internal/models"
)

func TestCreateShow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	start := time.Date(2026, 9, 21, 21, 30, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO shows (artist_id, venue_id, start_time)
		VALUES ($1, $2, $3)
		RETURNING id
	`)).
		WithArgs(int64(4), int64(2), start).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	show, err := s.CreateShow(context.Background(), &models.Show{
		ArtistID:  4,
		VenueID:   2,
		StartTime: start,
	})
	if err != nil {
		t.Fatalf("CreateShow: %v", err)
	}
	if show.ID != 11 {
		t.Fatalf("expected show ID 11, got %d", show.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateShowDanglingReferences(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		wantErr    error
	}{
		{
			name:       "unknown artist",
			constraint: "shows_artist_id_fkey",
			wantErr:    ErrArtistNotFound,
		},
		{
			name:       "unknown venue",
			constraint: "shows_venue_id_fkey",
			wantErr:    ErrVenueNotFound,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			if err != nil {
				t.Fatalf("sqlmock.New: %v", err)
			}
			defer db.Close()

			s := New(db)

			mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO shows")).
				WillReturnError(&pgconn.PgError{
					Code:           "23503",
					ConstraintName: tc.constraint,
				})

			_, err = s.CreateShow(context.Background(), &models.Show{
				ArtistID:  999,
				VenueID:   999,
				StartTime: time.Now(),
			})
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestListShows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	start := time.Date(2026, 9, 21, 21, 30, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT s.id, s.artist_id, s.venue_id, s.start_time, v.name, a.name, a.image_link
		FROM shows s
		JOIN venues v ON v.id = s.venue_id
		JOIN artists a ON a.id = s.artist_id
		ORDER BY s.start_time ASC, s.id ASC
	`)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "artist_id", "venue_id", "start_time", "venue_name", "artist_name", "artist_image_link",
		}).
			AddRow(int64(1), int64(4), int64(1), start, "The Musical Hop", "Guns N Petals", "https://example.com/gnp.jpg").
			AddRow(int64(2), int64(5), int64(3), start.Add(time.Hour), "The Dueling Pianos Bar", "Matt Quevedo", nil))

	shows, err := s.ListShows(context.Background())
	if err != nil {
		t.Fatalf("ListShows: %v", err)
	}

	if len(shows) != 2 {
		t.Fatalf("expected 2 shows, got %d", len(shows))
	}
	if shows[0].VenueName != "The Musical Hop" || shows[0].ArtistName != "Guns N Petals" {
		t.Fatalf("unexpected first show: %#v", shows[0])
	}
	if shows[1].ArtistImageLink != "" {
		t.Fatalf("expected NULL image link to map to empty string, got %q", shows[1].ArtistImageLink)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
