package middleware

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"

	"github.com/13roger10/Belezza.ai-sub001/cache"
)

// Protected validates the bearer token and rejects tokens whose id appears in
// the revocation store. The salon id claim is placed in locals so handlers
// can scope their queries.
func Protected(revoked cache.Store) fiber.Handler {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "solid_secret_key" // Replace with secure key in production
	}

	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(secret),
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid token",
				})
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid token claims",
				})
			}

			if jti, ok := claims["jti"].(string); ok && jti != "" {
				_, found, err := revoked.Get(c.UserContext(), "revoked:"+jti)
				if err == nil && found {
					return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
						"error": "Token revoked",
					})
				}
			}

			salonID, err := extractSalonID(claims)
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid salon ID in token",
				})
			}
			c.Locals("salonID", salonID)
			return c.Next()
		},
	})
}

// extractSalonID handles the formats the salon id claim shows up in.
func extractSalonID(claims jwt.MapClaims) (uint, error) {
	val := claims["salon_id"]
	if val == nil {
		return 0, fmt.Errorf("no salon_id found in claims")
	}
	switch v := val.(type) {
	case float64:
		return uint(v), nil
	case uint:
		return v, nil
	case int:
		return uint(v), nil
	default:
		return 0, fmt.Errorf("unsupported salon_id type: %T", v)
	}
}

func jwtError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":   "Unauthorized",
		"message": "Invalid or expired token",
	})
}
