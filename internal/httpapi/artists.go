package httpapi

import (
	"fmt"
	"net/http"

	"gigboard/internal/forms"
	"gigboard/internal/models"
)

func (s *Server) handleListArtists(w http.ResponseWriter, r *http.Request) {
	artists, err := s.artists.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if artists == nil {
		artists = []models.ArtistRef{}
	}
	writeJSON(w, http.StatusOK, artists)
}

func (s *Server) handleSearchArtists(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid form payload"})
		return
	}

	results, err := s.artists.Search(r.Context(), r.PostFormValue("search_term"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleArtistDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid artist id"})
		return
	}

	detail, err := s.artists.Detail(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleArtistCreateForm(w http.ResponseWriter, r *http.Request) {
	names, err := s.genres.Names(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Genres []string `json:"genres"`
	}{Genres: names})
}

func (s *Server) handleCreateArtist(w http.ResponseWriter, r *http.Request) {
	form, err := forms.ParseArtistForm(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid form payload"})
		return
	}
	if fieldErrs := form.Validate(); fieldErrs.Any() {
		respondValidationFailed(w, fieldErrs)
		return
	}

	created, err := s.artists.Create(r.Context(), artistFromForm(form))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		Message string         `json:"message"`
		Artist  *models.Artist `json:"artist"`
	}{
		Message: fmt.Sprintf("Artist %s was successfully listed!", created.Name),
		Artist:  created,
	})
}

func (s *Server) handleArtistEditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid artist id"})
		return
	}

	artist, err := s.artists.Find(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, artist)
}

func (s *Server) handleEditArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid artist id"})
		return
	}

	form, err := forms.ParseArtistForm(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid form payload"})
		return
	}
	if fieldErrs := form.Validate(); fieldErrs.Any() {
		respondValidationFailed(w, fieldErrs)
		return
	}

	updated, err := s.artists.Update(r.Context(), id, artistFromForm(form))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Message string         `json:"message"`
		Artist  *models.Artist `json:"artist"`
	}{
		Message: fmt.Sprintf("Artist %s was successfully updated!", updated.Name),
		Artist:  updated,
	})
}

func (s *Server) handleDeleteArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid artist id"})
		return
	}

	name, err := s.artists.Delete(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Artist %s was deleted successfully!", name),
	})
}

func artistFromForm(f forms.ArtistForm) *models.Artist {
	return &models.Artist{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Website:            f.Website,
		SeekingVenue:       f.SeekingVenue,
		SeekingDescription: f.SeekingDescription,
		Genres:             f.Genres,
	}
}
