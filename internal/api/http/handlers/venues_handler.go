package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crud-backends/internal/api/dto"
	"github.com/spec-kit/crud-backends/internal/domain"
	"github.com/spec-kit/crud-backends/internal/service"
)

// VenueService is the venue half of the booking service.
type VenueService interface {
	ListVenueAreas(ctx context.Context) ([]domain.VenueArea, error)
	SearchVenues(ctx context.Context, term string) ([]domain.VenueSummary, error)
	GetVenue(ctx context.Context, id int64) (*domain.VenueDetail, error)
	CreateVenue(ctx context.Context, venue *domain.Venue) error
	UpdateVenue(ctx context.Context, id int64, patch service.VenuePatch) (*domain.Venue, error)
	DeleteVenue(ctx context.Context, id int64) error
}

// VenuesHandler manages venue endpoints.
type VenuesHandler struct {
	service VenueService
}

// NewVenuesHandler constructs handler.
func NewVenuesHandler(svc VenueService) *VenuesHandler {
	return &VenuesHandler{service: svc}
}

// List GET /venues.
func (h *VenuesHandler) List(c *fiber.Ctx) error {
	areas, err := h.service.ListVenueAreas(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]dto.AreaResponse, 0, len(areas))
	for _, area := range areas {
		out = append(out, dto.AreaResponse{City: area.City, State: area.State, Venues: venueSummaries(area.Venues)})
	}
	return success(c, fiber.Map{"areas": out})
}

// Search POST /venues/search.
func (h *VenuesHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	found, err := h.service.SearchVenues(c.UserContext(), req.SearchTerm)
	if err != nil {
		return err
	}
	return success(c, fiber.Map{"count": len(found), "data": venueSummaries(found)})
}

// Get GET /venues/:id.
func (h *VenuesHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c, "id", "venue")
	if err != nil {
		return err
	}
	detail, err := h.service.GetVenue(c.UserContext(), id)
	if err != nil {
		return err
	}
	return success(c, fiber.Map{"venue": venueDetailResponse(detail)})
}

// Create POST /venues.
func (h *VenuesHandler) Create(c *fiber.Ctx) error {
	var req dto.VenueRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	venue := venueFromRequest(req)
	if err := h.service.CreateVenue(c.UserContext(), venue); err != nil {
		return err
	}
	return success(c, fiber.Map{"venue": venueResponse(venue)})
}

// Update PATCH /venues/:id.
func (h *VenuesHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c, "id", "venue")
	if err != nil {
		return err
	}
	var req dto.VenuePatchRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	venue, err := h.service.UpdateVenue(c.UserContext(), id, venuePatch(req))
	if err != nil {
		return err
	}
	return success(c, fiber.Map{"venue": venueResponse(venue)})
}

// Delete DELETE /venues/:id.
func (h *VenuesHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "id", "venue")
	if err != nil {
		return err
	}
	if err := h.service.DeleteVenue(c.UserContext(), id); err != nil {
		return err
	}
	return success(c, fiber.Map{"deleted": id})
}
