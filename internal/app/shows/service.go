package shows

import (
	"context"

	"gigboard/internal/models"
)

// Store defines persistence operations for shows
type Store interface {
	CreateShow(ctx context.Context, show *models.Show) (*models.Show, error)
	ListShows(ctx context.Context) ([]models.ShowListing, error)
}

// Service coordinates show-related operations
type Service interface {
	List(ctx context.Context) ([]models.ShowListing, error)
	Create(ctx context.Context, show *models.Show) (*models.Show, error)
}

type service struct {
	store Store
}

// New constructs a shows Service
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context) ([]models.ShowListing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListShows(ctx)
}

// Create books a show. Start times in the past are accepted, and
// nothing prevents an artist or venue from being double-booked at the
// same time.
func (s *service) Create(ctx context.Context, show *models.Show) (*models.Show, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.CreateShow(ctx, show)
}
