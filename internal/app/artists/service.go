package artists

import (
	"context"
	"time"

	"gigboard/internal/models"
	"gigboard/internal/store"
)

// Store defines persistence operations for artists
type Store interface {
	CreateArtist(ctx context.Context, artist *models.Artist) (*models.Artist, error)
	ListArtists(ctx context.Context) ([]models.ArtistRef, error)
	ArtistByID(ctx context.Context, id int64) (*models.Artist, error)
	SearchArtists(ctx context.Context, term string) ([]store.ArtistRow, error)
	ArtistShows(ctx context.Context, artistID int64) ([]store.ArtistShowRow, error)
	UpdateArtist(ctx context.Context, id int64, artist *models.Artist) (*models.Artist, error)
	DeleteArtist(ctx context.Context, id int64) (string, error)
}

// Service coordinates artist-related operations
type Service interface {
	List(ctx context.Context) ([]models.ArtistRef, error)
	Search(ctx context.Context, term string) (models.ArtistSearchResults, error)
	Detail(ctx context.Context, id int64) (*models.ArtistDetail, error)
	Find(ctx context.Context, id int64) (*models.Artist, error)
	Create(ctx context.Context, artist *models.Artist) (*models.Artist, error)
	Update(ctx context.Context, id int64, artist *models.Artist) (*models.Artist, error)
	Delete(ctx context.Context, id int64) (string, error)
}

type service struct {
	store Store
	now   func() time.Time
}

// New constructs an artists Service
func New(store Store) Service {
	return &service{store: store, now: time.Now}
}

func (s *service) List(ctx context.Context) ([]models.ArtistRef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListArtists(ctx)
}

func (s *service) Search(ctx context.Context, term string) (models.ArtistSearchResults, error) {
	if err := ctx.Err(); err != nil {
		return models.ArtistSearchResults{}, err
	}

	rows, err := s.store.SearchArtists(ctx, term)
	if err != nil {
		return models.ArtistSearchResults{}, err
	}

	now := s.now()
	results := models.ArtistSearchResults{Data: make([]models.ArtistSummary, 0, len(rows))}
	for _, a := range rows {
		upcoming := 0
		for _, t := range a.ShowTimes {
			if t.After(now) {
				upcoming++
			}
		}
		results.Data = append(results.Data, models.ArtistSummary{
			ID:               a.ID,
			Name:             a.Name,
			NumUpcomingShows: upcoming,
		})
	}
	results.Count = len(results.Data)
	return results, nil
}

// Detail returns the full artist payload with its shows partitioned
// into past and upcoming. A show starting exactly now counts as past.
func (s *service) Detail(ctx context.Context, id int64) (*models.ArtistDetail, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	artist, err := s.store.ArtistByID(ctx, id)
	if err != nil {
		return nil, err
	}
	shows, err := s.store.ArtistShows(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	past := []models.ArtistShow{}
	upcoming := []models.ArtistShow{}
	for _, row := range shows {
		entry := models.ArtistShow{
			VenueID:        row.VenueID,
			VenueName:      row.VenueName,
			VenueImageLink: row.VenueImageLink,
			StartTime:      row.StartTime.Format(time.RFC3339),
		}
		if row.StartTime.After(now) {
			upcoming = append(upcoming, entry)
		} else {
			past = append(past, entry)
		}
	}

	return &models.ArtistDetail{
		Artist:             *artist,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

func (s *service) Find(ctx context.Context, id int64) (*models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ArtistByID(ctx, id)
}

func (s *service) Create(ctx context.Context, artist *models.Artist) (*models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.CreateArtist(ctx, artist)
}

func (s *service) Update(ctx context.Context, id int64, artist *models.Artist) (*models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.UpdateArtist(ctx, id, artist)
}

func (s *service) Delete(ctx context.Context, id int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.store.DeleteArtist(ctx, id)
}
