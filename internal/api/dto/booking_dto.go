package dto

import (
	"errors"
	"strings"
	"time"
)

// VenueRequest payload for POST /venues.
type VenueRequest struct {
	Name               string   `json:"name" form:"name" validate:"required"`
	City               string   `json:"city" form:"city" validate:"required"`
	State              string   `json:"state" form:"state" validate:"required,len=2"`
	Address            string   `json:"address" form:"address" validate:"required"`
	Phone              string   `json:"phone" form:"phone" validate:"required"`
	Genres             []string `json:"genres" form:"genres" validate:"required,min=1,dive,required"`
	ImageLink          *string  `json:"image_link" form:"image_link" validate:"omitempty,url"`
	FacebookLink       *string  `json:"facebook_link" form:"facebook_link" validate:"omitempty,url"`
	Website            *string  `json:"website" form:"website" validate:"omitempty,url"`
	SeekingTalent      bool     `json:"seeking_talent" form:"seeking_talent"`
	SeekingDescription *string  `json:"seeking_description" form:"seeking_description"`
}

// VenuePatchRequest payload for PATCH /venues/:id. Absent fields are left unchanged.
type VenuePatchRequest struct {
	Name               *string   `json:"name" form:"name" validate:"omitempty,min=1"`
	City               *string   `json:"city" form:"city" validate:"omitempty,min=1"`
	State              *string   `json:"state" form:"state" validate:"omitempty,len=2"`
	Address            *string   `json:"address" form:"address" validate:"omitempty,min=1"`
	Phone              *string   `json:"phone" form:"phone" validate:"omitempty,min=1"`
	Genres             *[]string `json:"genres" form:"genres" validate:"omitempty,min=1,dive,required"`
	ImageLink          *string   `json:"image_link" form:"image_link"`
	FacebookLink       *string   `json:"facebook_link" form:"facebook_link"`
	Website            *string   `json:"website" form:"website"`
	SeekingTalent      *bool     `json:"seeking_talent" form:"seeking_talent"`
	SeekingDescription *string   `json:"seeking_description" form:"seeking_description"`
}

// ArtistRequest payload for POST /artists.
type ArtistRequest struct {
	Name               string   `json:"name" form:"name" validate:"required"`
	City               string   `json:"city" form:"city" validate:"required"`
	State              string   `json:"state" form:"state" validate:"required,len=2"`
	Phone              string   `json:"phone" form:"phone"`
	Genres             []string `json:"genres" form:"genres" validate:"required,min=1,dive,required"`
	ImageLink          *string  `json:"image_link" form:"image_link" validate:"omitempty,url"`
	FacebookLink       *string  `json:"facebook_link" form:"facebook_link" validate:"omitempty,url"`
	Website            *string  `json:"website" form:"website" validate:"omitempty,url"`
	SeekingVenues      bool     `json:"seeking_venues" form:"seeking_venues"`
	SeekingDescription *string  `json:"seeking_description" form:"seeking_description"`
}

// ArtistPatchRequest payload for PATCH /artists/:id.
type ArtistPatchRequest struct {
	Name               *string   `json:"name" form:"name" validate:"omitempty,min=1"`
	City               *string   `json:"city" form:"city" validate:"omitempty,min=1"`
	State              *string   `json:"state" form:"state" validate:"omitempty,len=2"`
	Phone              *string   `json:"phone" form:"phone"`
	Genres             *[]string `json:"genres" form:"genres" validate:"omitempty,min=1,dive,required"`
	ImageLink          *string   `json:"image_link" form:"image_link"`
	FacebookLink       *string   `json:"facebook_link" form:"facebook_link"`
	Website            *string   `json:"website" form:"website"`
	SeekingVenues      *bool     `json:"seeking_venues" form:"seeking_venues"`
	SeekingDescription *string   `json:"seeking_description" form:"seeking_description"`
}

// ShowRequest payload for POST /shows.
type ShowRequest struct {
	VenueID   int64  `json:"venue_id" form:"venue_id" validate:"required,gt=0"`
	ArtistID  int64  `json:"artist_id" form:"artist_id" validate:"required,gt=0"`
	StartTime string `json:"start_time" form:"start_time" validate:"required"`
}

// SearchRequest payload for the venue and artist search endpoints.
type SearchRequest struct {
	SearchTerm string `json:"search_term" form:"search_term"`
}

// VenueResponse is the full venue record.
type VenueResponse struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Address            string   `json:"address"`
	Phone              string   `json:"phone"`
	Genres             []string `json:"genres"`
	ImageLink          *string  `json:"image_link"`
	FacebookLink       *string  `json:"facebook_link"`
	Website            *string  `json:"website"`
	SeekingTalent      bool     `json:"seeking_talent"`
	SeekingDescription *string  `json:"seeking_description"`
}

// VenueDetailResponse adds the venue's shows.
type VenueDetailResponse struct {
	VenueResponse
	PastShows          []VenueShowResponse `json:"past_shows"`
	UpcomingShows      []VenueShowResponse `json:"upcoming_shows"`
	PastShowsCount     int                 `json:"past_shows_count"`
	UpcomingShowsCount int                 `json:"upcoming_shows_count"`
}

// VenueShowResponse is a show listed on a venue page.
type VenueShowResponse struct {
	ArtistID        int64   `json:"artist_id"`
	ArtistName      string  `json:"artist_name"`
	ArtistImageLink *string `json:"artist_image_link"`
	StartTime       string  `json:"start_time"`
}

// ArtistResponse is the full artist record.
type ArtistResponse struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Phone              string   `json:"phone"`
	Genres             []string `json:"genres"`
	ImageLink          *string  `json:"image_link"`
	FacebookLink       *string  `json:"facebook_link"`
	Website            *string  `json:"website"`
	SeekingVenues      bool     `json:"seeking_venues"`
	SeekingDescription *string  `json:"seeking_description"`
}

// ArtistDetailResponse adds the artist's shows.
type ArtistDetailResponse struct {
	ArtistResponse
	PastShows          []ArtistShowResponse `json:"past_shows"`
	UpcomingShows      []ArtistShowResponse `json:"upcoming_shows"`
	PastShowsCount     int                  `json:"past_shows_count"`
	UpcomingShowsCount int                  `json:"upcoming_shows_count"`
}

// ArtistShowResponse is a show listed on an artist page.
type ArtistShowResponse struct {
	VenueID        int64   `json:"venue_id"`
	VenueName      string  `json:"venue_name"`
	VenueImageLink *string `json:"venue_image_link"`
	StartTime      string  `json:"start_time"`
}

// SummaryResponse is a search hit or area listing entry.
type SummaryResponse struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// AreaResponse groups venues by city and state.
type AreaResponse struct {
	City   string            `json:"city"`
	State  string            `json:"state"`
	Venues []SummaryResponse `json:"venues"`
}

// ListItem is an id and name pair, as listed by GET /artists and GET /.
type ListItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ShowListingResponse is an entry of GET /shows.
type ShowListingResponse struct {
	VenueID         int64   `json:"venue_id"`
	VenueName       string  `json:"venue_name"`
	ArtistID        int64   `json:"artist_id"`
	ArtistName      string  `json:"artist_name"`
	ArtistImageLink *string `json:"artist_image_link"`
	StartTime       string  `json:"start_time"`
}

// ShowResponse is a stored show.
type ShowResponse struct {
	ID        int64  `json:"id"`
	VenueID   int64  `json:"venue_id"`
	ArtistID  int64  `json:"artist_id"`
	StartTime string `json:"start_time"`
}

var startTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// ErrInvalidStartTime reports a start_time none of the accepted layouts can parse.
var ErrInvalidStartTime = errors.New("start_time must be RFC3339 or YYYY-MM-DD HH:MM:SS")

// ParseStartTime accepts RFC3339 and the date-time layouts an HTML form produces. Layouts
// without a zone are read as UTC.
func ParseStartTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range startTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidStartTime
}

// FormatTime renders t as RFC3339 in UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
