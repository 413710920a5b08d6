package middleware

import (
	"strings"

	"field-presence-backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Auth is the trust boundary to the identity subsystem: it validates the
// bearer token and copies the caller's identity claims into the request
// context. Issuing tokens is not this service's job.
func Auth(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing token"})
	}

	tokenString := strings.Replace(authHeader, "Bearer ", "", 1)

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(config.GetEnv("JWT_SECRET", "dev-only-secret")), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
	}

	claims := token.Claims.(jwt.MapClaims)
	c.Locals("user_id", claims["user_id"])
	c.Locals("branch_id", claims["branch_id"])
	c.Locals("role_level", claims["role_level"])

	return c.Next()
}

// RequireManager gates the admin surfaces on an elevated role.
func RequireManager(minLevel int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		level, ok := c.Locals("role_level").(float64)
		if !ok || int(level) < minLevel {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "insufficient role"})
		}
		return c.Next()
	}
}
