package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/spec-kit/crud-backends/internal/domain"
	"github.com/spec-kit/crud-backends/internal/events"
	"github.com/spec-kit/crud-backends/internal/repository"
)

type venueRepoMock struct{ mock.Mock }

func (m *venueRepoMock) Create(ctx context.Context, venue *domain.Venue) error {
	args := m.Called(ctx, venue)
	return args.Error(0)
}

func (m *venueRepoMock) Update(ctx context.Context, venue *domain.Venue) error {
	args := m.Called(ctx, venue)
	return args.Error(0)
}

func (m *venueRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *venueRepoMock) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	args := m.Called(ctx, id)
	venue, _ := args.Get(0).(*domain.Venue)
	return venue, args.Error(1)
}

func (m *venueRepoMock) List(ctx context.Context) ([]domain.Venue, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Venue), args.Error(1)
}

func (m *venueRepoMock) ListRecent(ctx context.Context, limit int) ([]domain.Venue, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Venue), args.Error(1)
}

func (m *venueRepoMock) SearchByName(ctx context.Context, term string) ([]domain.Venue, error) {
	args := m.Called(ctx, term)
	return args.Get(0).([]domain.Venue), args.Error(1)
}

type artistRepoMock struct{ mock.Mock }

func (m *artistRepoMock) Create(ctx context.Context, artist *domain.Artist) error {
	args := m.Called(ctx, artist)
	return args.Error(0)
}

func (m *artistRepoMock) Update(ctx context.Context, artist *domain.Artist) error {
	args := m.Called(ctx, artist)
	return args.Error(0)
}

func (m *artistRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *artistRepoMock) GetByID(ctx context.Context, id int64) (*domain.Artist, error) {
	args := m.Called(ctx, id)
	artist, _ := args.Get(0).(*domain.Artist)
	return artist, args.Error(1)
}

func (m *artistRepoMock) List(ctx context.Context) ([]domain.Artist, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Artist), args.Error(1)
}

func (m *artistRepoMock) ListRecent(ctx context.Context, limit int) ([]domain.Artist, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Artist), args.Error(1)
}

func (m *artistRepoMock) SearchByName(ctx context.Context, term string) ([]domain.Artist, error) {
	args := m.Called(ctx, term)
	return args.Get(0).([]domain.Artist), args.Error(1)
}

type showRepoMock struct{ mock.Mock }

func (m *showRepoMock) Create(ctx context.Context, show *domain.Show) error {
	args := m.Called(ctx, show)
	return args.Error(0)
}

func (m *showRepoMock) ListListings(ctx context.Context) ([]domain.ShowListing, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ShowListing), args.Error(1)
}

func (m *showRepoMock) ListByVenue(ctx context.Context, venueID int64) ([]domain.VenueShow, error) {
	args := m.Called(ctx, venueID)
	return args.Get(0).([]domain.VenueShow), args.Error(1)
}

func (m *showRepoMock) ListByArtist(ctx context.Context, artistID int64) ([]domain.ArtistShow, error) {
	args := m.Called(ctx, artistID)
	return args.Get(0).([]domain.ArtistShow), args.Error(1)
}

func (m *showRepoMock) CountUpcomingByVenue(ctx context.Context, venueIDs []int64, now time.Time) (map[int64]int, error) {
	args := m.Called(ctx, venueIDs, now)
	return args.Get(0).(map[int64]int), args.Error(1)
}

func (m *showRepoMock) CountUpcomingByArtist(ctx context.Context, artistIDs []int64, now time.Time) (map[int64]int, error) {
	args := m.Called(ctx, artistIDs, now)
	return args.Get(0).(map[int64]int), args.Error(1)
}

type categoryRepoMock struct{ mock.Mock }

func (m *categoryRepoMock) List(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *categoryRepoMock) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	args := m.Called(ctx, id)
	category, _ := args.Get(0).(*domain.Category)
	return category, args.Error(1)
}

type questionRepoMock struct{ mock.Mock }

func (m *questionRepoMock) Create(ctx context.Context, q *domain.Question) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *questionRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *questionRepoMock) GetByID(ctx context.Context, id int64) (*domain.Question, error) {
	args := m.Called(ctx, id)
	q, _ := args.Get(0).(*domain.Question)
	return q, args.Error(1)
}

func (m *questionRepoMock) ListWithFilter(ctx context.Context, filter repository.QuestionFilter) ([]domain.Question, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Question), args.Error(1)
}

func (m *questionRepoMock) Count(ctx context.Context, filter repository.QuestionFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

type drinkRepoMock struct{ mock.Mock }

func (m *drinkRepoMock) Create(ctx context.Context, drink *domain.Drink) error {
	args := m.Called(ctx, drink)
	return args.Error(0)
}

func (m *drinkRepoMock) Update(ctx context.Context, drink *domain.Drink) error {
	args := m.Called(ctx, drink)
	return args.Error(0)
}

func (m *drinkRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *drinkRepoMock) GetByID(ctx context.Context, id int64) (*domain.Drink, error) {
	args := m.Called(ctx, id)
	drink, _ := args.Get(0).(*domain.Drink)
	return drink, args.Error(1)
}

func (m *drinkRepoMock) List(ctx context.Context) ([]domain.Drink, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Drink), args.Error(1)
}

// memoryCache is an in-process cache.Cache.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	deletes int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memoryCache) SetJSON(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = raw
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	c.deletes++
	return nil
}

func (c *memoryCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

// recorder collects every published event.
type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func newRecordingDispatcher(types ...events.EventType) (events.Dispatcher, *recorder) {
	d := events.NewInMemoryDispatcher()
	r := &recorder{}
	for _, et := range types {
		d.Subscribe(et, func(_ context.Context, e events.Event) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.events = append(r.events, e)
			return nil
		})
	}
	return d, r
}

func (r *recorder) all() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.Event(nil), r.events...)
}
