package domain

import "time"

// Show books an artist at a venue.
type Show struct {
	ID       int64
	VenueID  int64
	ArtistID int64
	ShowDate time.Time
}

// ShowListing joins a show with the names of its venue and artist.
type ShowListing struct {
	VenueID         int64
	VenueName       string
	ArtistID        int64
	ArtistName      string
	ArtistImageLink *string
	StartTime       time.Time
}

// VenueShow is a show seen from its venue.
type VenueShow struct {
	ArtistID        int64
	ArtistName      string
	ArtistImageLink *string
	StartTime       time.Time
}

// ArtistShow is a show seen from its artist.
type ArtistShow struct {
	VenueID        int64
	VenueName      string
	VenueImageLink *string
	StartTime      time.Time
}

// IsUpcoming reports whether a show starting at start has not begun by now.
func IsUpcoming(start, now time.Time) bool {
	return !start.Before(now)
}
