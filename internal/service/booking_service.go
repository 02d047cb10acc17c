package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/crud-backends/internal/domain"
	"github.com/spec-kit/crud-backends/internal/events"
	"github.com/spec-kit/crud-backends/internal/repository"
	apperrors "github.com/spec-kit/crud-backends/pkg/util"
)

// RecentLimit is how many venues and artists the home page lists.
const RecentLimit = 10

// BookingService coordinates the venue, artist and show workflows of the booking site.
type BookingService struct {
	venues  repository.VenueRepository
	artists repository.ArtistRepository
	shows   repository.ShowRepository
	publisher
}

// BookingDependencies bundles repositories for the booking service.
type BookingDependencies struct {
	VenueRepo  repository.VenueRepository
	ArtistRepo repository.ArtistRepository
	ShowRepo   repository.ShowRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Clock      func() time.Time
}

// HomePage lists the most recently added venues and artists.
type HomePage struct {
	Venues  []domain.Venue
	Artists []domain.Artist
}

// VenuePatch carries the venue fields an edit changes; nil fields are left alone.
type VenuePatch struct {
	Name               *string
	City               *string
	State              *string
	Address            *string
	Phone              *string
	Genres             *[]string
	ImageLink          *string
	FacebookLink       *string
	Website            *string
	SeekingTalent      *bool
	SeekingDescription *string
}

// ArtistPatch carries the artist fields an edit changes; nil fields are left alone.
type ArtistPatch struct {
	Name               *string
	City               *string
	State              *string
	Phone              *string
	Genres             *[]string
	ImageLink          *string
	FacebookLink       *string
	Website            *string
	SeekingVenues      *bool
	SeekingDescription *string
}

// ShowInput describes a show booking.
type ShowInput struct {
	VenueID   int64
	ArtistID  int64
	StartTime time.Time
}

// NewBookingService constructs the service.
func NewBookingService(deps BookingDependencies) *BookingService {
	return &BookingService{
		venues:    deps.VenueRepo,
		artists:   deps.ArtistRepo,
		shows:     deps.ShowRepo,
		publisher: newPublisher(deps.Dispatcher, deps.Logger, deps.Clock),
	}
}

// Home returns the newest venues and artists.
func (s *BookingService) Home(ctx context.Context) (*HomePage, error) {
	venues, err := s.venues.ListRecent(ctx, RecentLimit)
	if err != nil {
		return nil, err
	}
	artists, err := s.artists.ListRecent(ctx, RecentLimit)
	if err != nil {
		return nil, err
	}
	return &HomePage{Venues: venues, Artists: artists}, nil
}

// ListVenueAreas groups every venue by city and state, keeping the repository order.
func (s *BookingService) ListVenueAreas(ctx context.Context) ([]domain.VenueArea, error) {
	venues, err := s.venues.List(ctx)
	if err != nil {
		return nil, err
	}
	summaries, err := s.venueSummaries(ctx, venues)
	if err != nil {
		return nil, err
	}

	areas := []domain.VenueArea{}
	index := map[[2]string]int{}
	for i, venue := range venues {
		key := [2]string{venue.City, venue.State}
		pos, ok := index[key]
		if !ok {
			pos = len(areas)
			index[key] = pos
			areas = append(areas, domain.VenueArea{City: venue.City, State: venue.State})
		}
		areas[pos].Venues = append(areas[pos].Venues, summaries[i])
	}
	return areas, nil
}

// SearchVenues matches venue names case-insensitively against term.
func (s *BookingService) SearchVenues(ctx context.Context, term string) ([]domain.VenueSummary, error) {
	venues, err := s.venues.SearchByName(ctx, strings.TrimSpace(term))
	if err != nil {
		return nil, err
	}
	return s.venueSummaries(ctx, venues)
}

// GetVenue returns a venue with its shows split into past and upcoming.
func (s *BookingService) GetVenue(ctx context.Context, id int64) (*domain.VenueDetail, error) {
	venue, err := s.venues.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "venue", id)
	}
	shows, err := s.shows.ListByVenue(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	detail := &domain.VenueDetail{Venue: *venue, PastShows: []domain.VenueShow{}, UpcomingShows: []domain.VenueShow{}}
	for _, show := range shows {
		if domain.IsUpcoming(show.StartTime, now) {
			detail.UpcomingShows = append(detail.UpcomingShows, show)
		} else {
			detail.PastShows = append(detail.PastShows, show)
		}
	}
	return detail, nil
}

// CreateVenue stores a new venue.
func (s *BookingService) CreateVenue(ctx context.Context, venue *domain.Venue) error {
	if err := s.venues.Create(ctx, venue); err != nil {
		return apperrors.NewUnprocessable(err)
	}
	s.publish(ctx, events.Event{Type: events.EventVenueChanged, Action: events.ActionCreated, EntityID: venue.ID})
	return nil
}

// UpdateVenue applies patch to the venue with id.
func (s *BookingService) UpdateVenue(ctx context.Context, id int64, patch VenuePatch) (*domain.Venue, error) {
	venue, err := s.venues.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "venue", id)
	}
	patch.apply(venue)
	if err := s.venues.Update(ctx, venue); err != nil {
		return nil, writeErr(err, "venue", id)
	}
	s.publish(ctx, events.Event{Type: events.EventVenueChanged, Action: events.ActionUpdated, EntityID: id})
	return venue, nil
}

// DeleteVenue removes the venue and, through the foreign key, its shows.
func (s *BookingService) DeleteVenue(ctx context.Context, id int64) error {
	if err := s.venues.Delete(ctx, id); err != nil {
		return writeErr(err, "venue", id)
	}
	s.publish(ctx, events.Event{Type: events.EventVenueChanged, Action: events.ActionDeleted, EntityID: id})
	return nil
}

// ListArtists returns every artist.
func (s *BookingService) ListArtists(ctx context.Context) ([]domain.Artist, error) {
	return s.artists.List(ctx)
}

// SearchArtists matches artist names case-insensitively against term.
func (s *BookingService) SearchArtists(ctx context.Context, term string) ([]domain.ArtistSummary, error) {
	artists, err := s.artists.SearchByName(ctx, strings.TrimSpace(term))
	if err != nil {
		return nil, err
	}
	ids := make([]int64, len(artists))
	for i, artist := range artists {
		ids[i] = artist.ID
	}
	counts, err := s.shows.CountUpcomingByArtist(ctx, ids, s.now())
	if err != nil {
		return nil, err
	}
	out := make([]domain.ArtistSummary, len(artists))
	for i, artist := range artists {
		out[i] = domain.ArtistSummary{ID: artist.ID, Name: artist.Name, NumUpcomingShows: counts[artist.ID]}
	}
	return out, nil
}

// GetArtist returns an artist with their shows split into past and upcoming.
func (s *BookingService) GetArtist(ctx context.Context, id int64) (*domain.ArtistDetail, error) {
	artist, err := s.artists.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "artist", id)
	}
	shows, err := s.shows.ListByArtist(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	detail := &domain.ArtistDetail{Artist: *artist, PastShows: []domain.ArtistShow{}, UpcomingShows: []domain.ArtistShow{}}
	for _, show := range shows {
		if domain.IsUpcoming(show.StartTime, now) {
			detail.UpcomingShows = append(detail.UpcomingShows, show)
		} else {
			detail.PastShows = append(detail.PastShows, show)
		}
	}
	return detail, nil
}

// CreateArtist stores a new artist.
func (s *BookingService) CreateArtist(ctx context.Context, artist *domain.Artist) error {
	if err := s.artists.Create(ctx, artist); err != nil {
		return apperrors.NewUnprocessable(err)
	}
	s.publish(ctx, events.Event{Type: events.EventArtistChanged, Action: events.ActionCreated, EntityID: artist.ID})
	return nil
}

// UpdateArtist applies patch to the artist with id.
func (s *BookingService) UpdateArtist(ctx context.Context, id int64, patch ArtistPatch) (*domain.Artist, error) {
	artist, err := s.artists.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "artist", id)
	}
	patch.apply(artist)
	if err := s.artists.Update(ctx, artist); err != nil {
		return nil, writeErr(err, "artist", id)
	}
	s.publish(ctx, events.Event{Type: events.EventArtistChanged, Action: events.ActionUpdated, EntityID: id})
	return artist, nil
}

// DeleteArtist removes the artist and their shows.
func (s *BookingService) DeleteArtist(ctx context.Context, id int64) error {
	if err := s.artists.Delete(ctx, id); err != nil {
		return writeErr(err, "artist", id)
	}
	s.publish(ctx, events.Event{Type: events.EventArtistChanged, Action: events.ActionDeleted, EntityID: id})
	return nil
}

// ListShows returns every show with its venue and artist names.
func (s *BookingService) ListShows(ctx context.Context) ([]domain.ShowListing, error) {
	return s.shows.ListListings(ctx)
}

// CreateShow books an artist at a venue. Both must exist.
func (s *BookingService) CreateShow(ctx context.Context, input ShowInput) (*domain.Show, error) {
	if _, err := s.venues.GetByID(ctx, input.VenueID); err != nil {
		return nil, lookupErr(err, "venue", input.VenueID)
	}
	if _, err := s.artists.GetByID(ctx, input.ArtistID); err != nil {
		return nil, lookupErr(err, "artist", input.ArtistID)
	}

	show := &domain.Show{VenueID: input.VenueID, ArtistID: input.ArtistID, ShowDate: input.StartTime}
	if err := s.shows.Create(ctx, show); err != nil {
		return nil, apperrors.NewUnprocessable(err)
	}
	s.publish(ctx, events.Event{
		Type:     events.EventShowBooked,
		Action:   events.ActionCreated,
		EntityID: show.ID,
		Payload: events.ShowBookedPayload{
			VenueID:   show.VenueID,
			ArtistID:  show.ArtistID,
			StartTime: show.ShowDate,
		},
	})
	return show, nil
}

func (s *BookingService) venueSummaries(ctx context.Context, venues []domain.Venue) ([]domain.VenueSummary, error) {
	ids := make([]int64, len(venues))
	for i, venue := range venues {
		ids[i] = venue.ID
	}
	counts, err := s.shows.CountUpcomingByVenue(ctx, ids, s.now())
	if err != nil {
		return nil, err
	}
	out := make([]domain.VenueSummary, len(venues))
	for i, venue := range venues {
		out[i] = domain.VenueSummary{ID: venue.ID, Name: venue.Name, NumUpcomingShows: counts[venue.ID]}
	}
	return out, nil
}

func (p VenuePatch) apply(v *domain.Venue) {
	setString(&v.Name, p.Name)
	setString(&v.City, p.City)
	setString(&v.State, p.State)
	setString(&v.Address, p.Address)
	setString(&v.Phone, p.Phone)
	if p.Genres != nil {
		v.Genres = *p.Genres
	}
	setNullable(&v.ImageLink, p.ImageLink)
	setNullable(&v.FacebookLink, p.FacebookLink)
	setNullable(&v.Website, p.Website)
	if p.SeekingTalent != nil {
		v.SeekingTalent = *p.SeekingTalent
	}
	setNullable(&v.SeekingDescription, p.SeekingDescription)
}

func (p ArtistPatch) apply(a *domain.Artist) {
	setString(&a.Name, p.Name)
	setString(&a.City, p.City)
	setString(&a.State, p.State)
	setString(&a.Phone, p.Phone)
	if p.Genres != nil {
		a.Genres = *p.Genres
	}
	setNullable(&a.ImageLink, p.ImageLink)
	setNullable(&a.FacebookLink, p.FacebookLink)
	setNullable(&a.Website, p.Website)
	if p.SeekingVenues != nil {
		a.SeekingVenues = *p.SeekingVenues
	}
	setNullable(&a.SeekingDescription, p.SeekingDescription)
}

func setString(dst *string, val *string) {
	if val != nil {
		*dst = strings.TrimSpace(*val)
	}
}

// setNullable stores val, clearing the column when it is blank.
func setNullable(dst **string, val *string) {
	if val == nil {
		return
	}
	trimmed := strings.TrimSpace(*val)
	if trimmed == "" {
		*dst = nil
		return
	}
	*dst = &trimmed
}
