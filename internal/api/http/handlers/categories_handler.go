package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crud-backends/internal/domain"
)

// CategoryService reads categories and their questions.
type CategoryService interface {
	Categories(ctx context.Context) (map[int64]string, error)
	QuestionsByCategory(ctx context.Context, categoryID int64, page int) (*domain.QuestionPage, error)
}

// CategoriesHandler manages trivia category endpoints.
type CategoriesHandler struct {
	service CategoryService
}

// NewCategoriesHandler constructs handler.
func NewCategoriesHandler(svc CategoryService) *CategoriesHandler {
	return &CategoriesHandler{service: svc}
}

// List GET /categories.
func (h *CategoriesHandler) List(c *fiber.Ctx) error {
	categories, err := h.service.Categories(c.UserContext())
	if err != nil {
		return err
	}
	return success(c, fiber.Map{"categories": categories})
}

// Questions GET /categories/:id/questions.
func (h *CategoriesHandler) Questions(c *fiber.Ctx) error {
	id, err := idParam(c, "id", "category")
	if err != nil {
		return err
	}
	page, err := h.service.QuestionsByCategory(c.UserContext(), id, pageQuery(c))
	if err != nil {
		return err
	}
	return success(c, fiber.Map{
		"questions":       questionResponses(page.Questions),
		"totalQuestions":  page.TotalQuestions,
		"currentCategory": page.CurrentCategory,
	})
}
