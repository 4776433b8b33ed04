// Package forms parses and validates the form-encoded submissions the
// directory's create and edit pages post. Validation failures are
// reported per field so the page layer can re-render the form with
// messages next to each input.
package forms

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Errors maps a field name to its validation messages. An empty map
// means the submission is valid.
type Errors map[string][]string

func (e Errors) add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Any reports whether any field failed validation.
func (e Errors) Any() bool {
	return len(e) > 0
}

var nonDigits = regexp.MustCompile(`\D`)

// NormalizePhone strips everything but digits, so "(819) 392-1234"
// is stored as "8193921234".
func NormalizePhone(raw string) string {
	return nonDigits.ReplaceAllString(raw, "")
}

// VenueForm carries the fields of a venue create/edit submission.
type VenueForm struct {
	Name               string
	City               string
	State              string
	Address            string
	Phone              string
	ImageLink          string
	FacebookLink       string
	Website            string
	SeekingTalent      bool
	SeekingDescription string
	Genres             []string
}

// ParseVenueForm reads a venue submission from the request body.
func ParseVenueForm(r *http.Request) (VenueForm, error) {
	if err := r.ParseForm(); err != nil {
		return VenueForm{}, err
	}
	return VenueForm{
		Name:               strings.TrimSpace(r.PostFormValue("name")),
		City:               strings.TrimSpace(r.PostFormValue("city")),
		State:              strings.TrimSpace(r.PostFormValue("state")),
		Address:            strings.TrimSpace(r.PostFormValue("address")),
		Phone:              NormalizePhone(r.PostFormValue("phone")),
		ImageLink:          strings.TrimSpace(r.PostFormValue("image_link")),
		FacebookLink:       strings.TrimSpace(r.PostFormValue("facebook_link")),
		Website:            strings.TrimSpace(r.PostFormValue("website")),
		SeekingTalent:      parseFlag(r.PostFormValue("seeking_talent")),
		SeekingDescription: strings.TrimSpace(r.PostFormValue("seeking_description")),
		Genres:             collectGenres(r.PostForm["genres"]),
	}, nil
}

// Validate checks required fields and returns the per-field errors.
func (f VenueForm) Validate() Errors {
	errs := Errors{}
	requireField(errs, "name", f.Name)
	requireField(errs, "city", f.City)
	requireField(errs, "state", f.State)
	requireField(errs, "address", f.Address)
	if len(f.Genres) == 0 {
		errs.add("genres", "select at least one genre")
	}
	return errs
}

// ArtistForm carries the fields of an artist create/edit submission.
type ArtistForm struct {
	Name               string
	City               string
	State              string
	Phone              string
	ImageLink          string
	FacebookLink       string
	Website            string
	SeekingVenue       bool
	SeekingDescription string
	Genres             []string
}

// ParseArtistForm reads an artist submission from the request body.
func ParseArtistForm(r *http.Request) (ArtistForm, error) {
	if err := r.ParseForm(); err != nil {
		return ArtistForm{}, err
	}
	return ArtistForm{
		Name:               strings.TrimSpace(r.PostFormValue("name")),
		City:               strings.TrimSpace(r.PostFormValue("city")),
		State:              strings.TrimSpace(r.PostFormValue("state")),
		Phone:              NormalizePhone(r.PostFormValue("phone")),
		ImageLink:          strings.TrimSpace(r.PostFormValue("image_link")),
		FacebookLink:       strings.TrimSpace(r.PostFormValue("facebook_link")),
		Website:            strings.TrimSpace(r.PostFormValue("website")),
		SeekingVenue:       parseFlag(r.PostFormValue("seeking_venue")),
		SeekingDescription: strings.TrimSpace(r.PostFormValue("seeking_description")),
		Genres:             collectGenres(r.PostForm["genres"]),
	}, nil
}

// Validate checks required fields and returns the per-field errors.
func (f ArtistForm) Validate() Errors {
	errs := Errors{}
	requireField(errs, "name", f.Name)
	requireField(errs, "city", f.City)
	requireField(errs, "state", f.State)
	if len(f.Genres) == 0 {
		errs.add("genres", "select at least one genre")
	}
	return errs
}

// ShowForm carries the fields of a show create submission.
type ShowForm struct {
	ArtistID  int64
	VenueID   int64
	StartTime time.Time
}

// Accepted layouts for start_time, RFC 3339 plus the plain layout the
// booking form's datetime picker posts.
var startTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseShowForm reads a show submission from the request body,
// reporting unparseable ids and timestamps as field errors.
func ParseShowForm(r *http.Request) (ShowForm, Errors, error) {
	if err := r.ParseForm(); err != nil {
		return ShowForm{}, nil, err
	}

	errs := Errors{}
	var f ShowForm

	f.ArtistID = parseID(errs, "artist_id", r.PostFormValue("artist_id"))
	f.VenueID = parseID(errs, "venue_id", r.PostFormValue("venue_id"))

	raw := strings.TrimSpace(r.PostFormValue("start_time"))
	if raw == "" {
		errs.add("start_time", "this field is required")
	} else {
		parsed := false
		for _, layout := range startTimeLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				f.StartTime = t
				parsed = true
				break
			}
		}
		if !parsed {
			errs.add("start_time", "not a recognized timestamp")
		}
	}

	return f, errs, nil
}

func parseID(errs Errors, field, raw string) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		errs.add(field, "this field is required")
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		errs.add(field, "not a valid id")
		return 0
	}
	return id
}

func requireField(errs Errors, field, value string) {
	if value == "" {
		errs.add(field, "this field is required")
	}
}

// parseFlag accepts the checkbox/select spellings the forms post for
// boolean fields ("Yes"/"No" as well as "true"/"on"/"1").
func parseFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "y", "yes", "on":
		return true
	}
	v, err := strconv.ParseBool(raw)
	return err == nil && v
}

// collectGenres drops empty selections while preserving order and the
// submitted spelling: genre names are never case-folded or trimmed
// into each other.
func collectGenres(raw []string) []string {
	var genres []string
	for _, g := range raw {
		g = strings.TrimSpace(g)
		if g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}
