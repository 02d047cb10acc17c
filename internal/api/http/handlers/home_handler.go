package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crud-backends/internal/api/dto"
	"github.com/spec-kit/crud-backends/internal/service"
)

// HomeService lists recent additions.
type HomeService interface {
	Home(ctx context.Context) (*service.HomePage, error)
}

// HomeHandler serves the booking site landing page.
type HomeHandler struct {
	service HomeService
}

// NewHomeHandler constructs handler.
func NewHomeHandler(svc HomeService) *HomeHandler {
	return &HomeHandler{service: svc}
}

// Index GET /.
func (h *HomeHandler) Index(c *fiber.Ctx) error {
	home, err := h.service.Home(c.UserContext())
	if err != nil {
		return err
	}
	venues := make([]dto.ListItem, 0, len(home.Venues))
	for _, v := range home.Venues {
		venues = append(venues, dto.ListItem{ID: v.ID, Name: v.Name})
	}
	artists := make([]dto.ListItem, 0, len(home.Artists))
	for _, a := range home.Artists {
		artists = append(artists, dto.ListItem{ID: a.ID, Name: a.Name})
	}
	return success(c, fiber.Map{"venues": venues, "artists": artists})
}
