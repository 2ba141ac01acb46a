package middleware

import (
	"abonizera-api/internal/core/services"
	"abonizera-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the session middlewares
const (
	LocalSessionID = "sessionID"
	LocalAdmin     = "admin"
	LocalUser      = "user"
	LocalUserID    = "userID"
)

// AdminAuth requires a valid admin session via the X-Session-ID header
func AdminAuth(sessions services.SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Get("X-Session-ID")
		if sessionID == "" {
			return response.Unauthorized(c, "Access denied. No session ID provided.")
		}

		identity, ok := sessions.Resolve(sessionID)
		if !ok || identity.Kind != services.SessionKindAdmin {
			return response.Unauthorized(c, "Invalid session. Please login again.")
		}

		c.Locals(LocalSessionID, sessionID)
		c.Locals(LocalAdmin, identity)

		return c.Next()
	}
}

// UserAuth requires a valid end-user session via the X-Session-ID header
func UserAuth(sessions services.SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Get("X-Session-ID")
		if sessionID == "" {
			return response.Unauthorized(c, "Access denied. No session ID provided.")
		}

		identity, ok := sessions.Resolve(sessionID)
		if !ok || identity.Kind != services.SessionKindUser {
			return response.Unauthorized(c, "Invalid session. Please login again.")
		}

		c.Locals(LocalSessionID, sessionID)
		c.Locals(LocalUser, identity)
		c.Locals(LocalUserID, identity.ID)

		return c.Next()
	}
}
