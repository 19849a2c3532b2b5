package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"movie-magic-club/services"
)

// RequireAdmin guards the JSON admin API. Unauthenticated callers get 401.
func RequireAdmin(c *fiber.Ctx) error {
	sessionID := c.Cookies(services.AdminCookieName)
	if sessionID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	session, err := services.GetAdminSession(c.Context(), sessionID)
	if err != nil {
		slog.Error("Failed to load admin session", "error", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}
	if session == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired session",
		})
	}

	c.Locals("admin_session_id", session.SessionID)

	// Keep active admins logged in.
	services.ExtendAdminSession(c.Context(), sessionID)

	return c.Next()
}

// RequireAdminPage guards the rendered admin pages. Browsers are sent to the
// login form instead of receiving a JSON error.
func RequireAdminPage(c *fiber.Ctx) error {
	sessionID := c.Cookies(services.AdminCookieName)
	if sessionID != "" {
		session, err := services.GetAdminSession(c.Context(), sessionID)
		if err != nil {
			slog.Error("Failed to load admin session", "error", err)
		}
		if session != nil {
			c.Locals("admin_session_id", session.SessionID)
			services.ExtendAdminSession(c.Context(), sessionID)
			return c.Next()
		}
	}

	return c.Redirect("/admin/login", fiber.StatusSeeOther)
}
