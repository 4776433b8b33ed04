package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"gigboard/internal/forms"
	"gigboard/internal/models"
	"gigboard/internal/store"
)

// VenueService coordinates venue-related operations
type VenueService interface {
	Areas(ctx context.Context) ([]models.VenueArea, error)
	Search(ctx context.Context, term string) (models.VenueSearchResults, error)
	Detail(ctx context.Context, id int64) (*models.VenueDetail, error)
	Find(ctx context.Context, id int64) (*models.Venue, error)
	Create(ctx context.Context, venue *models.Venue) (*models.Venue, error)
	Update(ctx context.Context, id int64, venue *models.Venue) (*models.Venue, error)
	Delete(ctx context.Context, id int64) (string, error)
}

// ArtistService coordinates artist-related operations
type ArtistService interface {
	List(ctx context.Context) ([]models.ArtistRef, error)
	Search(ctx context.Context, term string) (models.ArtistSearchResults, error)
	Detail(ctx context.Context, id int64) (*models.ArtistDetail, error)
	Find(ctx context.Context, id int64) (*models.Artist, error)
	Create(ctx context.Context, artist *models.Artist) (*models.Artist, error)
	Update(ctx context.Context, id int64, artist *models.Artist) (*models.Artist, error)
	Delete(ctx context.Context, id int64) (string, error)
}

// ShowService coordinates show-related operations
type ShowService interface {
	List(ctx context.Context) ([]models.ShowListing, error)
	Create(ctx context.Context, show *models.Show) (*models.Show, error)
}

// GenreService exposes the shared genre taxonomy
type GenreService interface {
	Names(ctx context.Context) ([]string, error)
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	venues  VenueService
	artists ArtistService
	shows   ShowService
	genres  GenreService
}

// New configures a Server with the given services.
func New(venues VenueService, artists ArtistService, shows ShowService, genres GenreService) *Server {
	return &Server{
		venues:  venues,
		artists: artists,
		shows:   shows,
		genres:  genres,
	}
}

// Routes exposes the HTTP handlers for the booking directory.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Venue routes
	mux.HandleFunc("GET /venues", s.handleVenueAreas)
	mux.HandleFunc("POST /venues/search", s.handleSearchVenues)
	mux.HandleFunc("GET /venues/create", s.handleVenueCreateForm)
	mux.HandleFunc("POST /venues/create", s.handleCreateVenue)
	mux.HandleFunc("GET /venues/{id}", s.handleVenueDetail)
	mux.HandleFunc("GET /venues/{id}/edit", s.handleVenueEditForm)
	mux.HandleFunc("POST /venues/{id}/edit", s.handleEditVenue)
	mux.HandleFunc("DELETE /venues/{id}", s.handleDeleteVenue)

	// Artist routes
	mux.HandleFunc("GET /artists", s.handleListArtists)
	mux.HandleFunc("POST /artists/search", s.handleSearchArtists)
	mux.HandleFunc("GET /artists/create", s.handleArtistCreateForm)
	mux.HandleFunc("POST /artists/create", s.handleCreateArtist)
	mux.HandleFunc("GET /artists/{id}", s.handleArtistDetail)
	mux.HandleFunc("GET /artists/{id}/edit", s.handleArtistEditForm)
	mux.HandleFunc("POST /artists/{id}/edit", s.handleEditArtist)
	mux.HandleFunc("DELETE /artists/{id}", s.handleDeleteArtist)

	// Show routes
	mux.HandleFunc("GET /shows", s.handleListShows)
	mux.HandleFunc("GET /shows/create", s.handleShowCreateForm)
	mux.HandleFunc("POST /shows/create", s.handleCreateShow)

	return mux
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Name   string `json:"name"`
		Status string `json:"status"`
	}{Name: "gigboard", Status: "ok"})
}

type errorResponse struct {
	Error  string       `json:"error"`
	Fields forms.Errors `json:"fields,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// respondError maps store and service failures onto the uniform error
// taxonomy: not-found -> 404, everything else -> 500.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrVenueNotFound),
		errors.Is(err, store.ErrArtistNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}

func respondValidationFailed(w http.ResponseWriter, fieldErrs forms.Errors) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error:  "validation failed",
		Fields: fieldErrs,
	})
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
