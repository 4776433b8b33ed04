package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gigboard/internal/models"
	"gigboard/internal/store"
)

// bootstrapDemoData seeds a small browsable directory when the venues
// table is empty, so a fresh instance has something to render.
func bootstrapDemoData(ctx context.Context, db *sql.DB, dataStore *store.Store) error {
	var count int
	if err := db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM venues
	`).Scan(&count); err != nil {
		return fmt.Errorf("count venues: %w", err)
	}
	if count > 0 {
		return nil
	}

	seedVenues := []*models.Venue{
		{
			Name:               "The Musical Hop",
			City:               "San Francisco",
			State:              "CA",
			Address:            "1015 Folsom Street",
			Phone:              "1231231234",
			Website:            "https://www.themusicalhop.com",
			SeekingTalent:      true,
			SeekingDescription: "We are on the lookout for a local artist to play every two weeks. Please call us.",
			Genres:             []string{"Jazz", "Reggae", "Swing", "Classical", "Folk"},
		},
		{
			Name:    "Park Square Live Music & Coffee",
			City:    "San Francisco",
			State:   "CA",
			Address: "34 Whiskey Moore Ave",
			Phone:   "4150000000",
			Genres:  []string{"Rock n Roll", "Jazz", "Classical", "Folk"},
		},
		{
			Name:    "The Dueling Pianos Bar",
			City:    "New York",
			State:   "NY",
			Address: "335 Delancey Street",
			Phone:   "9140031132",
			Genres:  []string{"Classical", "R&B", "Hip-Hop"},
		},
	}
	for _, v := range seedVenues {
		if _, err := dataStore.CreateVenue(ctx, v); err != nil {
			return fmt.Errorf("seed venue %q: %w", v.Name, err)
		}
	}

	seedArtists := []*models.Artist{
		{
			Name:               "Guns N Petals",
			City:               "San Francisco",
			State:              "CA",
			Phone:              "3261235000",
			Website:            "https://www.gunsnpetalsband.com",
			SeekingVenue:       true,
			SeekingDescription: "Looking for shows to perform at in the San Francisco Bay Area!",
			Genres:             []string{"Rock n Roll"},
		},
		{
			Name:   "Matt Quevedo",
			City:   "New York",
			State:  "NY",
			Phone:  "3004005000",
			Genres: []string{"Jazz"},
		},
		{
			Name:   "The Wild Sax Band",
			City:   "San Francisco",
			State:  "CA",
			Phone:  "4325540000",
			Genres: []string{"Jazz", "Classical"},
		},
	}
	for _, a := range seedArtists {
		if _, err := dataStore.CreateArtist(ctx, a); err != nil {
			return fmt.Errorf("seed artist %q: %w", a.Name, err)
		}
	}

	now := time.Now().UTC()
	seedShows := []*models.Show{
		{ArtistID: seedArtists[0].ID, VenueID: seedVenues[0].ID, StartTime: now.AddDate(0, -2, 0)},
		{ArtistID: seedArtists[1].ID, VenueID: seedVenues[1].ID, StartTime: now.AddDate(0, -1, 0)},
		{ArtistID: seedArtists[2].ID, VenueID: seedVenues[1].ID, StartTime: now.AddDate(0, 1, 0)},
		{ArtistID: seedArtists[2].ID, VenueID: seedVenues[2].ID, StartTime: now.AddDate(0, 1, 7)},
	}
	for _, sh := range seedShows {
		if _, err := dataStore.CreateShow(ctx, sh); err != nil {
			return fmt.Errorf("seed show: %w", err)
		}
	}

	return nil
}
