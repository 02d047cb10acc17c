package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crud-backends/internal/api/dto"
	"github.com/spec-kit/crud-backends/internal/domain"
)

// QuestionService lists, searches and edits trivia questions.
type QuestionService interface {
	ListQuestions(ctx context.Context, page int) (*domain.QuestionPage, error)
	SearchQuestions(ctx context.Context, term string, page int) (*domain.QuestionPage, error)
	CreateQuestion(ctx context.Context, q *domain.Question) error
	DeleteQuestion(ctx context.Context, id int64) error
}

// QuestionsHandler manages trivia question endpoints.
type QuestionsHandler struct {
	service QuestionService
}

// NewQuestionsHandler constructs handler.
func NewQuestionsHandler(svc QuestionService) *QuestionsHandler {
	return &QuestionsHandler{service: svc}
}

// List GET /questions?page=N.
func (h *QuestionsHandler) List(c *fiber.Ctx) error {
	page, err := h.service.ListQuestions(c.UserContext(), pageQuery(c))
	if err != nil {
		return err
	}
	return success(c, fiber.Map{
		"questions":       questionResponses(page.Questions),
		"totalQuestions":  page.TotalQuestions,
		"categories":      page.Categories,
		"currentCategory": page.CurrentCategory,
	})
}

// Create POST /questions.
func (h *QuestionsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateQuestionRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	q := &domain.Question{
		Question:   strings.TrimSpace(req.Question),
		Answer:     strings.TrimSpace(req.Answer),
		Category:   int64(req.Category),
		Difficulty: req.Difficulty,
	}
	if err := h.service.CreateQuestion(c.UserContext(), q); err != nil {
		return err
	}
	return success(c, fiber.Map{"created": q.ID})
}

// Search POST /questions/search.
func (h *QuestionsHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchQuestionsRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	page, err := h.service.SearchQuestions(c.UserContext(), req.SearchTerm, pageQuery(c))
	if err != nil {
		return err
	}
	return success(c, fiber.Map{
		"questions":       questionResponses(page.Questions),
		"totalQuestions":  page.TotalQuestions,
		"currentCategory": page.CurrentCategory,
	})
}

// Delete DELETE /questions/:id.
func (h *QuestionsHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "id", "question")
	if err != nil {
		return err
	}
	if err := h.service.DeleteQuestion(c.UserContext(), id); err != nil {
		return err
	}
	return success(c, fiber.Map{"deleted": id})
}

func questionResponse(q domain.Question) dto.QuestionResponse {
	return dto.QuestionResponse{
		ID:         q.ID,
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   q.Category,
		Difficulty: q.Difficulty,
	}
}

func questionResponses(questions []domain.Question) []dto.QuestionResponse {
	out := make([]dto.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, questionResponse(q))
	}
	return out
}
