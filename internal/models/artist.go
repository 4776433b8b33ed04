package models

// Artist represents a performing artist listed in the directory
type Artist struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Phone              string   `json:"phone"` // digits only
	ImageLink          string   `json:"image_link,omitempty"`
	FacebookLink       string   `json:"facebook_link,omitempty"`
	Website            string   `json:"website,omitempty"`
	SeekingVenue       bool     `json:"seeking_venue"`
	SeekingDescription string   `json:"seeking_description,omitempty"`
	Genres             []string `json:"genres"`
}

// ArtistRef is the minimal artist row used by the flat artist listing
type ArtistRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ArtistSummary is the search row for an artist
type ArtistSummary struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// ArtistSearchResults is the response to an artist search
type ArtistSearchResults struct {
	Count int             `json:"count"`
	Data  []ArtistSummary `json:"data"`
}

// ArtistShow is a show as seen from the artist's side, with the venue's
// details denormalized for display
type ArtistShow struct {
	VenueID        int64  `json:"venue_id"`
	VenueName      string `json:"venue_name"`
	VenueImageLink string `json:"venue_image_link,omitempty"`
	StartTime      string `json:"start_time"`
}

// ArtistDetail is the full artist page payload
type ArtistDetail struct {
	Artist
	PastShows          []ArtistShow `json:"past_shows"`
	UpcomingShows      []ArtistShow `json:"upcoming_shows"`
	PastShowsCount     int          `json:"past_shows_count"`
	UpcomingShowsCount int          `json:"upcoming_shows_count"`
}
