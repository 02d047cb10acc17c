package domain

// Venue is a place that hosts shows.
type Venue struct {
	ID                 int64
	Name               string
	City               string
	State              string
	Address            string
	Phone              string
	Genres             []string
	ImageLink          *string
	FacebookLink       *string
	Website            *string
	SeekingTalent      bool
	SeekingDescription *string
}

// VenueSummary is the listing/search projection of a venue.
type VenueSummary struct {
	ID               int64
	Name             string
	NumUpcomingShows int
}

// VenueArea groups venues sharing a city and state.
type VenueArea struct {
	City   string
	State  string
	Venues []VenueSummary
}

// VenueDetail is a venue with its shows split around the current time.
type VenueDetail struct {
	Venue
	PastShows     []VenueShow
	UpcomingShows []VenueShow
}
