package models

import "time"

// Show links an artist to a venue at a point in time. Whether a show is
// "past" or "upcoming" is decided against the clock at query time, never
// stored.
type Show struct {
	ID        int64     `json:"id"`
	ArtistID  int64     `json:"artist_id"`
	VenueID   int64     `json:"venue_id"`
	StartTime time.Time `json:"start_time"`
}

// ShowListing is one row of the full show listing, with both sides
// denormalized via JOIN
type ShowListing struct {
	Show
	VenueName       string `json:"venue_name"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link,omitempty"`
}
