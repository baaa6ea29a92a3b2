package middleware

import (
	"log"
	"strings"

	"bozor/internal/response"
	"bozor/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired is a Fiber middleware that verifies the bearer access
// token and stores the authenticated user ID in the request context.
func AuthRequired(tokens *services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return response.Fail(c, fiber.StatusUnauthorized,
				"Authorization header is required", "Authorization header is required")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return response.Fail(c, fiber.StatusUnauthorized,
				"Authorization header format must be 'Bearer <token>'",
				"Authorization header format must be 'Bearer <token>'")
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			log.Printf("Token verification failed: %v", err)
			return response.FailWith(c, err)
		}

		userID, err := tokens.CurrentUser(claims)
		if err != nil {
			return response.FailWith(c, err)
		}

		c.Locals("user_id", userID)
		return c.Next()
	}
}
