package service

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/crud-backends/internal/cache"
	"github.com/spec-kit/crud-backends/internal/domain"
	"github.com/spec-kit/crud-backends/internal/events"
	"github.com/spec-kit/crud-backends/internal/repository"
	apperrors "github.com/spec-kit/crud-backends/pkg/util"
)

// QuestionsPerPage is the trivia listing page size.
const QuestionsPerPage = 10

// CategoriesCacheKey holds the cached category map.
const CategoriesCacheKey = "categories:all"

// TriviaService serves question listings and quiz play.
type TriviaService struct {
	categories repository.CategoryRepository
	questions  repository.QuestionRepository
	cache      cache.Cache
	logger     *zap.Logger
	pick       func(n int) int
	publisher
}

// TriviaDependencies bundles collaborators for the trivia service.
type TriviaDependencies struct {
	CategoryRepo repository.CategoryRepository
	QuestionRepo repository.QuestionRepository
	Cache        cache.Cache
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
	// Picker returns an index in [0, n). Defaults to math/rand.
	Picker func(n int) int
	Clock  func() time.Time
}

// NewTriviaService constructs the service.
func NewTriviaService(deps TriviaDependencies) *TriviaService {
	s := &TriviaService{
		categories: deps.CategoryRepo,
		questions:  deps.QuestionRepo,
		cache:      deps.Cache,
		logger:     deps.Logger,
		pick:       deps.Picker,
	}
	if s.cache == nil {
		s.cache = cache.Nop()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	s.publisher = newPublisher(deps.Dispatcher, s.logger, deps.Clock)
	if s.pick == nil {
		s.pick = rand.IntN
	}
	return s
}

// NormalizePage maps missing or non-positive page numbers to the first page.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// Categories returns every category type keyed by id.
func (s *TriviaService) Categories(ctx context.Context) (map[int64]string, error) {
	var cached map[int64]string
	hit, err := s.cache.GetJSON(ctx, CategoriesCacheKey, &cached)
	if err != nil {
		s.logger.Warn("category cache read failed", zap.Error(err))
	}
	if hit && len(cached) > 0 {
		return cached, nil
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, apperrors.NewNotFound("categories", nil)
	}
	out := domain.CategoryMap(categories)
	if err := s.cache.SetJSON(ctx, CategoriesCacheKey, out); err != nil {
		s.logger.Warn("category cache write failed", zap.Error(err))
	}
	return out, nil
}

// ListQuestions returns one page of every question together with the category map.
func (s *TriviaService) ListQuestions(ctx context.Context, page int) (*domain.QuestionPage, error) {
	result, err := s.page(ctx, repository.QuestionFilter{}, page)
	if err != nil {
		return nil, err
	}
	if len(result.Questions) == 0 {
		return nil, apperrors.NewNotFound("questions", map[string]any{"page": NormalizePage(page)})
	}
	categories, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	result.Categories = categories
	return result, nil
}

// SearchQuestions pages through questions whose text contains term, ignoring case.
func (s *TriviaService) SearchQuestions(ctx context.Context, term string, page int) (*domain.QuestionPage, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperrors.NewValidationError("searchTerm is required", map[string]any{"searchTerm": "required"})
	}
	return s.page(ctx, repository.QuestionFilter{SearchTerm: &term}, page)
}

// QuestionsByCategory pages through the questions of one category.
func (s *TriviaService) QuestionsByCategory(ctx context.Context, categoryID int64, page int) (*domain.QuestionPage, error) {
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, lookupErr(err, "category", categoryID)
	}
	result, err := s.page(ctx, repository.QuestionFilter{CategoryID: &categoryID}, page)
	if err != nil {
		return nil, err
	}
	if result.TotalQuestions == 0 {
		return nil, apperrors.NewNotFound("questions", map[string]any{"category": categoryID})
	}
	result.CurrentCategory = &category.Type
	return result, nil
}

// CreateQuestion stores a new question.
func (s *TriviaService) CreateQuestion(ctx context.Context, q *domain.Question) error {
	q.Question = strings.TrimSpace(q.Question)
	q.Answer = strings.TrimSpace(q.Answer)
	if err := s.questions.Create(ctx, q); err != nil {
		return apperrors.NewUnprocessable(err)
	}
	s.publish(ctx, events.Event{Type: events.EventQuestionChanged, Action: events.ActionCreated, EntityID: q.ID})
	return nil
}

// DeleteQuestion removes a question.
func (s *TriviaService) DeleteQuestion(ctx context.Context, id int64) error {
	if err := s.questions.Delete(ctx, id); err != nil {
		return writeErr(err, "question", id)
	}
	s.publish(ctx, events.Event{Type: events.EventQuestionChanged, Action: events.ActionDeleted, EntityID: id})
	return nil
}

// NextQuizQuestion picks a random question from categoryID (AllCategories for any) that is not
// in previous. It returns nil once every candidate has been asked.
func (s *TriviaService) NextQuizQuestion(ctx context.Context, categoryID int64, previous []int64) (*domain.Question, error) {
	filter := repository.QuestionFilter{ExcludeIDs: previous}
	if categoryID != domain.AllCategories {
		filter.CategoryID = &categoryID
	}
	candidates, err := s.questions.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.NewUnprocessable(err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	chosen := candidates[s.pick(len(candidates))]
	return &chosen, nil
}

func (s *TriviaService) page(ctx context.Context, filter repository.QuestionFilter, page int) (*domain.QuestionPage, error) {
	total, err := s.questions.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	filter.Limit = QuestionsPerPage
	filter.Offset = (NormalizePage(page) - 1) * QuestionsPerPage
	questions, err := s.questions.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	if questions == nil {
		questions = []domain.Question{}
	}
	return &domain.QuestionPage{Questions: questions, TotalQuestions: total}, nil
}
