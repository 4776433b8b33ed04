package venues

import (
	"context"
	"time"

	"gigboard/internal/models"
	"gigboard/internal/store"
)

// Store defines persistence operations for venues
type Store interface {
	CreateVenue(ctx context.Context, venue *models.Venue) (*models.Venue, error)
	VenueByID(ctx context.Context, id int64) (*models.Venue, error)
	VenueAreas(ctx context.Context) ([]store.AreaRow, error)
	SearchVenues(ctx context.Context, term string) ([]store.VenueRow, error)
	VenueShows(ctx context.Context, venueID int64) ([]store.VenueShowRow, error)
	UpdateVenue(ctx context.Context, id int64, venue *models.Venue) (*models.Venue, error)
	DeleteVenue(ctx context.Context, id int64) (string, error)
}

// Service coordinates venue-related operations
type Service interface {
	Areas(ctx context.Context) ([]models.VenueArea, error)
	Search(ctx context.Context, term string) (models.VenueSearchResults, error)
	Detail(ctx context.Context, id int64) (*models.VenueDetail, error)
	Find(ctx context.Context, id int64) (*models.Venue, error)
	Create(ctx context.Context, venue *models.Venue) (*models.Venue, error)
	Update(ctx context.Context, id int64, venue *models.Venue) (*models.Venue, error)
	Delete(ctx context.Context, id int64) (string, error)
}

type service struct {
	store Store
	now   func() time.Time
}

// New constructs a venues Service
func New(store Store) Service {
	return &service{store: store, now: time.Now}
}

// Areas groups every venue by its distinct (city, state) pair, with
// the number of shows starting strictly after now per venue.
func (s *service) Areas(ctx context.Context) ([]models.VenueArea, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := s.store.VenueAreas(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	areas := make([]models.VenueArea, 0, len(rows))
	for _, row := range rows {
		area := models.VenueArea{
			City:   row.City,
			State:  row.State,
			Venues: make([]models.VenueSummary, 0, len(row.Venues)),
		}
		for _, v := range row.Venues {
			area.Venues = append(area.Venues, models.VenueSummary{
				ID:               v.ID,
				Name:             v.Name,
				NumUpcomingShows: countUpcoming(v.ShowTimes, now),
			})
		}
		areas = append(areas, area)
	}
	return areas, nil
}

func (s *service) Search(ctx context.Context, term string) (models.VenueSearchResults, error) {
	if err := ctx.Err(); err != nil {
		return models.VenueSearchResults{}, err
	}

	rows, err := s.store.SearchVenues(ctx, term)
	if err != nil {
		return models.VenueSearchResults{}, err
	}

	now := s.now()
	results := models.VenueSearchResults{Data: make([]models.VenueSummary, 0, len(rows))}
	for _, v := range rows {
		results.Data = append(results.Data, models.VenueSummary{
			ID:               v.ID,
			Name:             v.Name,
			NumUpcomingShows: countUpcoming(v.ShowTimes, now),
		})
	}
	results.Count = len(results.Data)
	return results, nil
}

// Detail returns the full venue payload with its shows partitioned
// into past and upcoming. A show starting exactly now counts as past.
func (s *service) Detail(ctx context.Context, id int64) (*models.VenueDetail, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	venue, err := s.store.VenueByID(ctx, id)
	if err != nil {
		return nil, err
	}
	shows, err := s.store.VenueShows(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	past := []models.VenueShow{}
	upcoming := []models.VenueShow{}
	for _, row := range shows {
		entry := models.VenueShow{
			ArtistID:        row.ArtistID,
			ArtistName:      row.ArtistName,
			ArtistImageLink: row.ArtistImageLink,
			StartTime:       row.StartTime.Format(time.RFC3339),
		}
		if row.StartTime.After(now) {
			upcoming = append(upcoming, entry)
		} else {
			past = append(past, entry)
		}
	}

	return &models.VenueDetail{
		Venue:              *venue,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

func (s *service) Find(ctx context.Context, id int64) (*models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.VenueByID(ctx, id)
}

func (s *service) Create(ctx context.Context, venue *models.Venue) (*models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.CreateVenue(ctx, venue)
}

func (s *service) Update(ctx context.Context, id int64, venue *models.Venue) (*models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.UpdateVenue(ctx, id, venue)
}

func (s *service) Delete(ctx context.Context, id int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.store.DeleteVenue(ctx, id)
}

func countUpcoming(times []time.Time, now time.Time) int {
	n := 0
	for _, t := range times {
		if t.After(now) {
			n++
		}
	}
	return n
}
