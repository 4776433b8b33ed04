package httpapi

import (
	"fmt"
	"net/http"

	"gigboard/internal/forms"
	"gigboard/internal/models"
)

func (s *Server) handleVenueAreas(w http.ResponseWriter, r *http.Request) {
	areas, err := s.venues.Areas(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, areas)
}

func (s *Server) handleSearchVenues(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid form payload"})
		return
	}

	// An empty search_term is allowed and matches every venue.
	results, err := s.venues.Search(r.Context(), r.PostFormValue("search_term"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleVenueDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid venue id"})
		return
	}

	detail, err := s.venues.Detail(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// handleVenueCreateForm supplies the data the (external) create form
// needs to render: the genre options.
func (s *Server) handleVenueCreateForm(w http.ResponseWriter, r *http.Request) {
	names, err := s.genres.Names(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Genres []string `json:"genres"`
	}{Genres: names})
}

func (s *Server) handleCreateVenue(w http.ResponseWriter, r *http.Request) {
	form, err := forms.ParseVenueForm(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid form payload"})
		return
	}
	if fieldErrs := form.Validate(); fieldErrs.Any() {
		respondValidationFailed(w, fieldErrs)
		return
	}

	created, err := s.venues.Create(r.Context(), venueFromForm(form))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		Message string        `json:"message"`
		Venue   *models.Venue `json:"venue"`
	}{
		Message: fmt.Sprintf("Venue %s was successfully listed!", created.Name),
		Venue:   created,
	})
}

// handleVenueEditForm returns the venue's current state for the edit
// form prefill. A missing id is a 404, same as the detail view.
func (s *Server) handleVenueEditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid venue id"})
		return
	}

	venue, err := s.venues.Find(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, venue)
}

func (s *Server) handleEditVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid venue id"})
		return
	}

	form, err := forms.ParseVenueForm(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid form payload"})
		return
	}
	if fieldErrs := form.Validate(); fieldErrs.Any() {
		respondValidationFailed(w, fieldErrs)
		return
	}

	updated, err := s.venues.Update(r.Context(), id, venueFromForm(form))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Message string        `json:"message"`
		Venue   *models.Venue `json:"venue"`
	}{
		Message: fmt.Sprintf("Venue %s was successfully updated!", updated.Name),
		Venue:   updated,
	})
}

func (s *Server) handleDeleteVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid venue id"})
		return
	}

	name, err := s.venues.Delete(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Venue %s was deleted successfully!", name),
	})
}

func venueFromForm(f forms.VenueForm) *models.Venue {
	return &models.Venue{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Address:            f.Address,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Website:            f.Website,
		SeekingTalent:      f.SeekingTalent,
		SeekingDescription: f.SeekingDescription,
		Genres:             f.Genres,
	}
}
