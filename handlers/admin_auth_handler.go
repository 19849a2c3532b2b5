package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"movie-magic-club/config"
	"movie-magic-club/services"
)

// AdminLoginPage renders the password form.
func AdminLoginPage(c *fiber.Ctx) error {
	return c.Render("admin_login", fiber.Map{
		"Title": "Admin login",
		"Error": "",
	})
}

// AdminLogin checks the configured password and opens a database-backed
// session. The password is bcrypt-hashed once when the handler is built.
func AdminLogin(cfg *config.Config) fiber.Handler {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("Failed to hash admin password", "error", err)
	}

	return func(c *fiber.Ctx) error {
		if !services.LoginLimiter.Allow(c.IP()) {
			slog.Warn("Login rate limit hit", "ip", c.IP())
			return c.Status(fiber.StatusTooManyRequests).Render("admin_login", fiber.Map{
				"Title": "Admin login",
				"Error": "Too many attempts, try again later",
			})
		}

		password := c.FormValue("password")
		if bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil {
			services.LoginLimiter.Record(c.IP())
			slog.Info("Invalid admin password attempt", "ip", c.IP())
			return c.Render("admin_login", fiber.Map{
				"Title": "Admin login",
				"Error": "Invalid password",
			})
		}

		services.LoginLimiter.Reset(c.IP())

		session, err := services.CreateAdminSession(c.Context(), c.IP(), c.Get("User-Agent"))
		if err != nil {
			slog.Error("Failed to create admin session", "error", err)
			return c.Status(fiber.StatusInternalServerError).Render("admin_login", fiber.Map{
				"Title": "Admin login",
				"Error": "Could not start a session, is the database up?",
			})
		}

		c.Cookie(&fiber.Cookie{
			Name:     services.AdminCookieName,
			Value:    session.SessionID,
			Expires:  session.ExpiresAt,
			HTTPOnly: true,
			SameSite: "Lax",
			Path:     "/",
		})

		slog.Info("Admin logged in", "ip", c.IP())
		return c.Redirect("/admin/movies", fiber.StatusSeeOther)
	}
}

// AdminLogout destroys the session and clears the cookie.
func AdminLogout(c *fiber.Ctx) error {
	sessionID := c.Cookies(services.AdminCookieName)
	if sessionID != "" {
		if err := services.DestroyAdminSession(c.Context(), sessionID); err != nil {
			slog.Error("Failed to destroy admin session", "error", err)
		}
	}

	c.ClearCookie(services.AdminCookieName)
	return c.Redirect("/", fiber.StatusSeeOther)
}
