package middleware

import (
	"strings"

	"mall-pos/internal/model"
	"mall-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

// IdentityKey is the fiber.Ctx locals key holding the *model.Identity
const IdentityKey = "identity"

// RequireAuth validates the bearer token and stores the session identity in context
func RequireAuth(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		identity, err := authService.Authenticate(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
		}

		c.Locals(IdentityKey, identity)
		return c.Next()
	}
}

// IdentityFrom returns the identity set by RequireAuth
func IdentityFrom(c *fiber.Ctx) (*model.Identity, bool) {
	identity, ok := c.Locals(IdentityKey).(*model.Identity)
	return identity, ok && identity != nil
}

// RequirePrivilege checks that the session's role grants the privilege
func RequirePrivilege(requiredPrivilege string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFrom(c)
		if !ok {
			return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
		}

		if !model.RoleHasPrivilege(identity.Role, requiredPrivilege) {
			return c.Status(403).JSON(fiber.Map{
				"error": "Forbidden: requires '" + requiredPrivilege + "' privilege",
			})
		}

		return c.Next()
	}
}
