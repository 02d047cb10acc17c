package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crud-backends/internal/api/dto"
	"github.com/spec-kit/crud-backends/internal/auth"
	"github.com/spec-kit/crud-backends/internal/domain"
	"github.com/spec-kit/crud-backends/internal/service"
)

// DrinkService manages the coffee shop menu.
type DrinkService interface {
	List(ctx context.Context) ([]domain.Drink, error)
	ListDetailed(ctx context.Context) ([]domain.Drink, error)
	Create(ctx context.Context, subject string, input service.DrinkInput) (*domain.Drink, error)
	Update(ctx context.Context, subject string, id int64, patch service.DrinkPatch) (*domain.Drink, error)
	Delete(ctx context.Context, subject string, id int64) error
}

// DrinksHandler manages drink endpoints. Everything but List runs behind a permission check.
type DrinksHandler struct {
	service DrinkService
}

// NewDrinksHandler constructs handler.
func NewDrinksHandler(svc DrinkService) *DrinksHandler {
	return &DrinksHandler{service: svc}
}

// List GET /drinks.
func (h *DrinksHandler) List(c *fiber.Ctx) error {
	drinks, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]dto.DrinkShort, 0, len(drinks))
	for i := range drinks {
		out = append(out, drinkShort(&drinks[i]))
	}
	return success(c, fiber.Map{"drinks": out})
}

// Detail GET /drinks-detail.
func (h *DrinksHandler) Detail(c *fiber.Ctx) error {
	drinks, err := h.service.ListDetailed(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]dto.DrinkLong, 0, len(drinks))
	for i := range drinks {
		out = append(out, drinkLong(&drinks[i]))
	}
	return success(c, fiber.Map{"drinks": out})
}

// Create POST /drinks.
func (h *DrinksHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateDrinkRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	drink, err := h.service.Create(c.UserContext(), subject(c), service.DrinkInput{
		Title:  strings.TrimSpace(req.Title),
		Recipe: ingredients(req.Recipe),
	})
	if err != nil {
		return err
	}
	return success(c, fiber.Map{"drinks": []dto.DrinkLong{drinkLong(drink)}})
}

// Update PATCH /drinks/:id.
func (h *DrinksHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c, "id", "drink")
	if err != nil {
		return err
	}
	var req dto.UpdateDrinkRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	patch := service.DrinkPatch{Title: req.Title}
	if req.Recipe != nil {
		recipe := ingredients(*req.Recipe)
		patch.Recipe = &recipe
	}
	drink, err := h.service.Update(c.UserContext(), subject(c), id, patch)
	if err != nil {
		return err
	}
	return success(c, fiber.Map{"drinks": []dto.DrinkLong{drinkLong(drink)}})
}

// Delete DELETE /drinks/:id.
func (h *DrinksHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "id", "drink")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), subject(c), id); err != nil {
		return err
	}
	return success(c, fiber.Map{"delete": id})
}

func subject(c *fiber.Ctx) string {
	if claims, ok := auth.ClaimsFromContext(c); ok {
		return claims.Subject
	}
	return ""
}

func ingredients(recipe dto.Recipe) []domain.Ingredient {
	out := make([]domain.Ingredient, 0, len(recipe))
	for _, r := range recipe {
		out = append(out, domain.Ingredient{Color: r.Color, Name: r.Name, Parts: r.Parts})
	}
	return out
}

func drinkShort(d *domain.Drink) dto.DrinkShort {
	recipe := make([]dto.IngredientShort, 0, len(d.Recipe))
	for _, r := range d.Recipe {
		recipe = append(recipe, dto.IngredientShort{Color: r.Color, Parts: r.Parts})
	}
	return dto.DrinkShort{ID: d.ID, Title: d.Title, Recipe: recipe}
}

func drinkLong(d *domain.Drink) dto.DrinkLong {
	recipe := make([]dto.IngredientLong, 0, len(d.Recipe))
	for _, r := range d.Recipe {
		recipe = append(recipe, dto.IngredientLong{Color: r.Color, Name: r.Name, Parts: r.Parts})
	}
	return dto.DrinkLong{ID: d.ID, Title: d.Title, Recipe: recipe}
}
