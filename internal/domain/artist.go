package domain

// Artist performs shows at venues.
type Artist struct {
	ID                 int64
	Name               string
	City               string
	State              string
	Phone              string
	Genres             []string
	ImageLink          *string
	FacebookLink       *string
	Website            *string
	SeekingVenues      bool
	SeekingDescription *string
}

// ArtistSummary is the listing/search projection of an artist.
type ArtistSummary struct {
	ID               int64
	Name             string
	NumUpcomingShows int
}

// ArtistDetail is an artist with their shows split around the current time.
type ArtistDetail struct {
	Artist
	PastShows     []ArtistShow
	UpcomingShows []ArtistShow
}
