package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/spec-kit/crud-backends/internal/domain"
	"github.com/spec-kit/crud-backends/internal/service"
)

type drinkServiceMock struct{ mock.Mock }

func (m *drinkServiceMock) List(ctx context.Context) ([]domain.Drink, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Drink), args.Error(1)
}

func (m *drinkServiceMock) ListDetailed(ctx context.Context) ([]domain.Drink, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Drink), args.Error(1)
}

func (m *drinkServiceMock) Create(ctx context.Context, subject string, input service.DrinkInput) (*domain.Drink, error) {
	args := m.Called(ctx, subject, input)
	drink, _ := args.Get(0).(*domain.Drink)
	return drink, args.Error(1)
}

func (m *drinkServiceMock) Update(ctx context.Context, subject string, id int64, patch service.DrinkPatch) (*domain.Drink, error) {
	args := m.Called(ctx, subject, id, patch)
	drink, _ := args.Get(0).(*domain.Drink)
	return drink, args.Error(1)
}

func (m *drinkServiceMock) Delete(ctx context.Context, subject string, id int64) error {
	args := m.Called(ctx, subject, id)
	return args.Error(0)
}

type triviaServiceMock struct{ mock.Mock }

func (m *triviaServiceMock) Categories(ctx context.Context) (map[int64]string, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).(map[int64]string)
	return categories, args.Error(1)
}

func (m *triviaServiceMock) QuestionsByCategory(ctx context.Context, categoryID int64, page int) (*domain.QuestionPage, error) {
	args := m.Called(ctx, categoryID, page)
	result, _ := args.Get(0).(*domain.QuestionPage)
	return result, args.Error(1)
}

func (m *triviaServiceMock) ListQuestions(ctx context.Context, page int) (*domain.QuestionPage, error) {
	args := m.Called(ctx, page)
	result, _ := args.Get(0).(*domain.QuestionPage)
	return result, args.Error(1)
}

func (m *triviaServiceMock) SearchQuestions(ctx context.Context, term string, page int) (*domain.QuestionPage, error) {
	args := m.Called(ctx, term, page)
	result, _ := args.Get(0).(*domain.QuestionPage)
	return result, args.Error(1)
}

func (m *triviaServiceMock) CreateQuestion(ctx context.Context, q *domain.Question) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *triviaServiceMock) DeleteQuestion(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *triviaServiceMock) NextQuizQuestion(ctx context.Context, categoryID int64, previous []int64) (*domain.Question, error) {
	args := m.Called(ctx, categoryID, previous)
	q, _ := args.Get(0).(*domain.Question)
	return q, args.Error(1)
}

type bookingServiceMock struct{ mock.Mock }

func (m *bookingServiceMock) Home(ctx context.Context) (*service.HomePage, error) {
	args := m.Called(ctx)
	home, _ := args.Get(0).(*service.HomePage)
	return home, args.Error(1)
}

func (m *bookingServiceMock) ListVenueAreas(ctx context.Context) ([]domain.VenueArea, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.VenueArea), args.Error(1)
}

func (m *bookingServiceMock) SearchVenues(ctx context.Context, term string) ([]domain.VenueSummary, error) {
	args := m.Called(ctx, term)
	return args.Get(0).([]domain.VenueSummary), args.Error(1)
}

func (m *bookingServiceMock) GetVenue(ctx context.Context, id int64) (*domain.VenueDetail, error) {
	args := m.Called(ctx, id)
	detail, _ := args.Get(0).(*domain.VenueDetail)
	return detail, args.Error(1)
}

func (m *bookingServiceMock) CreateVenue(ctx context.Context, venue *domain.Venue) error {
	args := m.Called(ctx, venue)
	return args.Error(0)
}

func (m *bookingServiceMock) UpdateVenue(ctx context.Context, id int64, patch service.VenuePatch) (*domain.Venue, error) {
	args := m.Called(ctx, id, patch)
	venue, _ := args.Get(0).(*domain.Venue)
	return venue, args.Error(1)
}

func (m *bookingServiceMock) DeleteVenue(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *bookingServiceMock) ListArtists(ctx context.Context) ([]domain.Artist, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Artist), args.Error(1)
}

func (m *bookingServiceMock) SearchArtists(ctx context.Context, term string) ([]domain.ArtistSummary, error) {
	args := m.Called(ctx, term)
	return args.Get(0).([]domain.ArtistSummary), args.Error(1)
}

func (m *bookingServiceMock) GetArtist(ctx context.Context, id int64) (*domain.ArtistDetail, error) {
	args := m.Called(ctx, id)
	detail, _ := args.Get(0).(*domain.ArtistDetail)
	return detail, args.Error(1)
}

func (m *bookingServiceMock) CreateArtist(ctx context.Context, artist *domain.Artist) error {
	args := m.Called(ctx, artist)
	return args.Error(0)
}

func (m *bookingServiceMock) UpdateArtist(ctx context.Context, id int64, patch service.ArtistPatch) (*domain.Artist, error) {
	args := m.Called(ctx, id, patch)
	artist, _ := args.Get(0).(*domain.Artist)
	return artist, args.Error(1)
}

func (m *bookingServiceMock) DeleteArtist(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *bookingServiceMock) ListShows(ctx context.Context) ([]domain.ShowListing, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ShowListing), args.Error(1)
}

func (m *bookingServiceMock) CreateShow(ctx context.Context, input service.ShowInput) (*domain.Show, error) {
	args := m.Called(ctx, input)
	show, _ := args.Get(0).(*domain.Show)
	return show, args.Error(1)
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }
