package middleware

import (
	"strings"

	"catalog/internal/models"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// claimsKey is the Locals key AuthRequired stores verified claims under.
const claimsKey = "claims"

// AuthRequired is a Fiber middleware to check for a valid bearer token.
// Every verification failure (malformed, expired, bad signature) is answered
// with 401; the specific cause only reaches the logs.
func AuthRequired(authService *services.AuthService, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		claims, err := authService.Authenticate(parts[1])
		if err != nil {
			log.Debug().Err(err).Str("path", c.Path()).Msg("token verification failed")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		// Store verified claims in Fiber context for subsequent handlers
		c.Locals(claimsKey, claims)

		return c.Next()
	}
}

// AdminRequired gates admin-only routes. It must be chained after
// AuthRequired: a request reaching it without verified claims in the context
// is treated as unauthenticated, never as authorized.
func AdminRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(claimsKey).(*models.Claims)
		if !ok || claims == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication required",
			})
		}

		if err := authService.AuthorizeAdmin(claims); err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Admin access required",
			})
		}

		return c.Next()
	}
}

// ClaimsFromContext returns the verified claims stored by AuthRequired.
func ClaimsFromContext(c *fiber.Ctx) (*models.Claims, bool) {
	claims, ok := c.Locals(claimsKey).(*models.Claims)
	return claims, ok && claims != nil
}
