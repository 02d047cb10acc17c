package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crud-backends/internal/api/dto"
	"github.com/spec-kit/crud-backends/internal/domain"
	"github.com/spec-kit/crud-backends/internal/service"
	apperrors "github.com/spec-kit/crud-backends/pkg/util"
)

// ShowService lists and books shows.
type ShowService interface {
	ListShows(ctx context.Context) ([]domain.ShowListing, error)
	CreateShow(ctx context.Context, input service.ShowInput) (*domain.Show, error)
}

// ShowsHandler manages show endpoints.
type ShowsHandler struct {
	service ShowService
}

// NewShowsHandler constructs handler.
func NewShowsHandler(svc ShowService) *ShowsHandler {
	return &ShowsHandler{service: svc}
}

// List GET /shows.
func (h *ShowsHandler) List(c *fiber.Ctx) error {
	listings, err := h.service.ListShows(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]dto.ShowListingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, dto.ShowListingResponse{
			VenueID:         l.VenueID,
			VenueName:       l.VenueName,
			ArtistID:        l.ArtistID,
			ArtistName:      l.ArtistName,
			ArtistImageLink: l.ArtistImageLink,
			StartTime:       dto.FormatTime(l.StartTime),
		})
	}
	return success(c, fiber.Map{"shows": out})
}

// Create POST /shows.
func (h *ShowsHandler) Create(c *fiber.Ctx) error {
	var req dto.ShowRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	start, err := dto.ParseStartTime(req.StartTime)
	if err != nil {
		return apperrors.NewValidationError(err.Error(), map[string]any{"start_time": req.StartTime})
	}

	show, err := h.service.CreateShow(c.UserContext(), service.ShowInput{
		VenueID:   req.VenueID,
		ArtistID:  req.ArtistID,
		StartTime: start,
	})
	if err != nil {
		return err
	}
	return success(c, fiber.Map{"show": dto.ShowResponse{
		ID:        show.ID,
		VenueID:   show.VenueID,
		ArtistID:  show.ArtistID,
		StartTime: dto.FormatTime(show.ShowDate),
	}})
}
