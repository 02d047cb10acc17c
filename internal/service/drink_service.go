package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/crud-backends/internal/cache"
	"github.com/spec-kit/crud-backends/internal/domain"
	"github.com/spec-kit/crud-backends/internal/events"
	"github.com/spec-kit/crud-backends/internal/repository"
	apperrors "github.com/spec-kit/crud-backends/pkg/util"
)

// DrinksCacheKey holds the cached public drink list.
const DrinksCacheKey = "drinks:all"

// DrinkService manages the coffee shop menu.
type DrinkService struct {
	drinks repository.DrinkRepository
	cache  cache.Cache
	logger *zap.Logger
	publisher
}

// DrinkDependencies bundles collaborators for the drink service.
type DrinkDependencies struct {
	DrinkRepo  repository.DrinkRepository
	Cache      cache.Cache
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Clock      func() time.Time
}

// DrinkInput describes a new drink.
type DrinkInput struct {
	Title  string
	Recipe []domain.Ingredient
}

// DrinkPatch carries the drink fields an edit changes.
type DrinkPatch struct {
	Title  *string
	Recipe *[]domain.Ingredient
}

// NewDrinkService constructs the service.
func NewDrinkService(deps DrinkDependencies) *DrinkService {
	s := &DrinkService{
		drinks: deps.DrinkRepo,
		cache:  deps.Cache,
		logger: deps.Logger,
	}
	if s.cache == nil {
		s.cache = cache.Nop()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	s.publisher = newPublisher(deps.Dispatcher, s.logger, deps.Clock)
	return s
}

// List returns the menu, reading through the cache.
func (s *DrinkService) List(ctx context.Context) ([]domain.Drink, error) {
	var cached []domain.Drink
	hit, err := s.cache.GetJSON(ctx, DrinksCacheKey, &cached)
	if err != nil {
		s.logger.Warn("drink cache read failed", zap.Error(err))
	}
	if hit {
		return cached, nil
	}

	drinks, err := s.ListDetailed(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetJSON(ctx, DrinksCacheKey, drinks); err != nil {
		s.logger.Warn("drink cache write failed", zap.Error(err))
	}
	return drinks, nil
}

// ListDetailed returns the menu straight from the database.
func (s *DrinkService) ListDetailed(ctx context.Context) ([]domain.Drink, error) {
	drinks, err := s.drinks.List(ctx)
	if err != nil {
		return nil, err
	}
	if drinks == nil {
		drinks = []domain.Drink{}
	}
	return drinks, nil
}

// Create adds a drink on behalf of subject.
func (s *DrinkService) Create(ctx context.Context, subject string, input DrinkInput) (*domain.Drink, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" || len(input.Recipe) == 0 {
		return nil, apperrors.NewValidationError("title and recipe are required", nil)
	}

	drink := &domain.Drink{Title: title, Recipe: input.Recipe}
	if err := s.drinks.Create(ctx, drink); err != nil {
		return nil, apperrors.NewUnprocessable(err)
	}
	s.publish(ctx, events.Event{Type: events.EventDrinkChanged, Action: events.ActionCreated, EntityID: drink.ID, Subject: subject})
	return drink, nil
}

// Update applies patch to the drink with id on behalf of subject.
func (s *DrinkService) Update(ctx context.Context, subject string, id int64, patch DrinkPatch) (*domain.Drink, error) {
	drink, err := s.drinks.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "drink", id)
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, apperrors.NewValidationError("title must not be blank", nil)
		}
		drink.Title = title
	}
	if patch.Recipe != nil {
		if len(*patch.Recipe) == 0 {
			return nil, apperrors.NewValidationError("recipe must not be empty", nil)
		}
		drink.Recipe = *patch.Recipe
	}

	if err := s.drinks.Update(ctx, drink); err != nil {
		return nil, writeErr(err, "drink", id)
	}
	s.publish(ctx, events.Event{Type: events.EventDrinkChanged, Action: events.ActionUpdated, EntityID: id, Subject: subject})
	return drink, nil
}

// Delete removes the drink with id on behalf of subject.
func (s *DrinkService) Delete(ctx context.Context, subject string, id int64) error {
	if err := s.drinks.Delete(ctx, id); err != nil {
		return writeErr(err, "drink", id)
	}
	s.publish(ctx, events.Event{Type: events.EventDrinkChanged, Action: events.ActionDeleted, EntityID: id, Subject: subject})
	return nil
}
