package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"movie-magic-club/services"
)

// VisitorSession tags every browser with a long-lived anonymous id. The
// verification gate counts free clicks against this id.
func VisitorSession(c *fiber.Ctx) error {
	sessionID := c.Cookies(services.VisitorCookieName)
	if sessionID == "" {
		id, err := services.GenerateVisitorID()
		if err != nil {
			slog.Error("Failed to generate visitor id", "error", err)
			return c.Next()
		}
		sessionID = id
		c.Cookie(&fiber.Cookie{
			Name:     services.VisitorCookieName,
			Value:    sessionID,
			Expires:  time.Now().Add(365 * 24 * time.Hour),
			HTTPOnly: true,
			SameSite: "Lax",
			Path:     "/",
		})
	}

	c.Locals("session_id", sessionID)
	return c.Next()
}

// SessionID returns the visitor id stored by VisitorSession.
func SessionID(c *fiber.Ctx) string {
	if id, ok := c.Locals("session_id").(string); ok {
		return id
	}
	return ""
}
