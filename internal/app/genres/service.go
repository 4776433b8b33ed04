package genres

import "context"

// Store defines persistence operations for the genre taxonomy
type Store interface {
	GenreNames(ctx context.Context) ([]string, error)
}

// Service exposes the shared genre taxonomy
type Service interface {
	Names(ctx context.Context) ([]string, error)
}

type service struct {
	store Store
}

// New constructs a genres Service
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Names(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.GenreNames(ctx)
}
