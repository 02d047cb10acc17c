package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crud-backends/internal/api/dto"
	"github.com/spec-kit/crud-backends/internal/domain"
	apperrors "github.com/spec-kit/crud-backends/pkg/util"
)

// QuizService picks quiz questions.
type QuizService interface {
	NextQuizQuestion(ctx context.Context, categoryID int64, previous []int64) (*domain.Question, error)
}

// QuizzesHandler serves quiz play.
type QuizzesHandler struct {
	service QuizService
}

// NewQuizzesHandler constructs handler.
func NewQuizzesHandler(svc QuizService) *QuizzesHandler {
	return &QuizzesHandler{service: svc}
}

// Next POST /quizzes.
func (h *QuizzesHandler) Next(c *fiber.Ctx) error {
	var req dto.QuizRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewUnprocessable(err)
	}
	if err := validateStruct(&req); err != nil {
		return err
	}

	q, err := h.service.NextQuizQuestion(c.UserContext(), int64(req.QuizCategory.ID), req.PreviousQuestions)
	if err != nil {
		return err
	}
	var question *dto.QuestionResponse
	if q != nil {
		resp := questionResponse(*q)
		question = &resp
	}
	return success(c, fiber.Map{
		"question":           question,
		"previous_questions": req.PreviousQuestions,
	})
}
