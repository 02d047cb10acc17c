package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crud-backends/internal/api/dto"
	"github.com/spec-kit/crud-backends/internal/domain"
	"github.com/spec-kit/crud-backends/internal/service"
)

// ArtistService is the artist half of the booking service.
type ArtistService interface {
	ListArtists(ctx context.Context) ([]domain.Artist, error)
	SearchArtists(ctx context.Context, term string) ([]domain.ArtistSummary, error)
	GetArtist(ctx context.Context, id int64) (*domain.ArtistDetail, error)
	CreateArtist(ctx context.Context, artist *domain.Artist) error
	UpdateArtist(ctx context.Context, id int64, patch service.ArtistPatch) (*domain.Artist, error)
	DeleteArtist(ctx context.Context, id int64) error
}

// ArtistsHandler manages artist endpoints.
type ArtistsHandler struct {
	service ArtistService
}

// NewArtistsHandler constructs handler.
func NewArtistsHandler(svc ArtistService) *ArtistsHandler {
	return &ArtistsHandler{service: svc}
}

// List GET /artists.
func (h *ArtistsHandler) List(c *fiber.Ctx) error {
	artists, err := h.service.ListArtists(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]dto.ListItem, 0, len(artists))
	for _, a := range artists {
		out = append(out, dto.ListItem{ID: a.ID, Name: a.Name})
	}
	return success(c, fiber.Map{"artists": out})
}

// Search POST /artists/search.
func (h *ArtistsHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	found, err := h.service.SearchArtists(c.UserContext(), req.SearchTerm)
	if err != nil {
		return err
	}
	return success(c, fiber.Map{"count": len(found), "data": artistSummaries(found)})
}

// Get GET /artists/:id.
func (h *ArtistsHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c, "id", "artist")
	if err != nil {
		return err
	}
	detail, err := h.service.GetArtist(c.UserContext(), id)
	if err != nil {
		return err
	}
	return success(c, fiber.Map{"artist": artistDetailResponse(detail)})
}

// Create POST /artists.
func (h *ArtistsHandler) Create(c *fiber.Ctx) error {
	var req dto.ArtistRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	artist := artistFromRequest(req)
	if err := h.service.CreateArtist(c.UserContext(), artist); err != nil {
		return err
	}
	return success(c, fiber.Map{"artist": artistResponse(artist)})
}

// Update PATCH /artists/:id.
func (h *ArtistsHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c, "id", "artist")
	if err != nil {
		return err
	}
	var req dto.ArtistPatchRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	artist, err := h.service.UpdateArtist(c.UserContext(), id, artistPatch(req))
	if err != nil {
		return err
	}
	return success(c, fiber.Map{"artist": artistResponse(artist)})
}

// Delete DELETE /artists/:id.
func (h *ArtistsHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "id", "artist")
	if err != nil {
		return err
	}
	if err := h.service.DeleteArtist(c.UserContext(), id); err != nil {
		return err
	}
	return success(c, fiber.Map{"deleted": id})
}
