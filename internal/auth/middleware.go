package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/crud-backends/pkg/util"
)

const claimsKey = "auth_claims"

// RequirePermission rejects the request unless it carries a valid bearer token holding
// permission. An empty permission only demands a valid token.
func RequirePermission(verifier *Verifier, permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := ExtractBearer(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return toHTTPError(err)
		}

		claims, err := verifier.Verify(c.UserContext(), raw, permission)
		if err != nil {
			return toHTTPError(err)
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// ClaimsFromContext retrieves the verified claims.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	claims, ok := c.Locals(claimsKey).(*Claims)
	return claims, ok
}

func toHTTPError(err error) error {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.DomainError()
	}
	return apperrors.NewInternalError(err)
}
