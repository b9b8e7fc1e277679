package middleware

import (
	"fmt"
	"strings"

	"educenter/internal/config"
	"educenter/internal/pkg/jwt"
	"educenter/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware creates the authentication gate. Claims are attached to the
// request and the chain is continued only after the token fully verifies.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := extractToken(c)
		if accessToken == "" {
			return response.Unauthorized(c, "Token not provided")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.AccessSecret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		c.Locals("accountID", claims.AccountID)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware. The rejection
// message names the caller's role and the allowed set.
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Token not provided")
		}

		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, fmt.Sprintf(
			"Role %s is not allowed here (requires one of: %s)",
			role, strings.Join(allowedRoles, ", "),
		))
	}
}

// AdminOnly middleware allows ADMIN and SUPERADMIN roles
func AdminOnly() fiber.Handler {
	return RoleMiddleware("ADMIN", "SUPERADMIN")
}

// CenterManagers middleware allows roles that can register centers
func CenterManagers() fiber.Handler {
	return RoleMiddleware("CEO", "ADMIN", "SUPERADMIN")
}

// extractToken pulls the bearer token from the Authorization header, falling
// back to the access_token cookie
func extractToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return c.Cookies("access_token")
}
