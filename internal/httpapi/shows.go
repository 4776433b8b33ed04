package httpapi

import (
	"errors"
	"net/http"

	"gigboard/internal/forms"
	"gigboard/internal/models"
	"gigboard/internal/store"
)

func (s *Server) handleListShows(w http.ResponseWriter, r *http.Request) {
	shows, err := s.shows.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if shows == nil {
		shows = []models.ShowListing{}
	}
	writeJSON(w, http.StatusOK, shows)
}

// handleShowCreateForm exists for the external form renderer; the
// booking form itself carries no server-supplied options.
func (s *Server) handleShowCreateForm(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) handleCreateShow(w http.ResponseWriter, r *http.Request) {
	form, fieldErrs, err := forms.ParseShowForm(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid form payload"})
		return
	}
	if fieldErrs.Any() {
		respondValidationFailed(w, fieldErrs)
		return
	}

	// Start times in the past are accepted; there is no double-booking
	// check either.
	created, err := s.shows.Create(r.Context(), &models.Show{
		ArtistID:  form.ArtistID,
		VenueID:   form.VenueID,
		StartTime: form.StartTime,
	})
	if err != nil {
		// A dangling reference is a bad submission, not a server fault.
		switch {
		case errors.Is(err, store.ErrArtistNotFound):
			respondValidationFailed(w, forms.Errors{"artist_id": {"no artist with this id"}})
		case errors.Is(err, store.ErrVenueNotFound):
			respondValidationFailed(w, forms.Errors{"venue_id": {"no venue with this id"}})
		default:
			respondError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		Message string       `json:"message"`
		Show    *models.Show `json:"show"`
	}{
		Message: "Show was successfully listed!",
		Show:    created,
	})
}
