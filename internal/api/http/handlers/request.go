package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crud-backends/internal/service"
	apperrors "github.com/spec-kit/crud-backends/pkg/util"
)

// bindBody parses a JSON or form body into dst and validates it.
func bindBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperrors.NewBadRequest("malformed request body")
	}
	return validateStruct(dst)
}

// idParam reads a positive integer route parameter. Anything else cannot name a row.
func idParam(c *fiber.Ctx, name, resource string) (int64, error) {
	raw := c.Params(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewNotFound(resource, map[string]any{"id": raw})
	}
	return id, nil
}

func pageQuery(c *fiber.Ctx) int {
	return service.NormalizePage(c.QueryInt("page", 1))
}

func success(c *fiber.Ctx, payload fiber.Map) error {
	payload["success"] = true
	return c.JSON(payload)
}
