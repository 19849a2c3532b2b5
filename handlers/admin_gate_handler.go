package handlers

import (
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"movie-magic-club/services"
)

// AdminGatePage shows the verification gate controls: on/off switch, free
// clicks per day and how long a completed verification lasts.
func AdminGatePage(c *fiber.Ctx) error {
	settings := services.GetVerificationSettings(c.Context())

	return c.Render("admin_gate", fiber.Map{
		"Title":    "Verification gate",
		"Settings": settings,
		"Message":  c.Query("message"),
	})
}

// AdminUpdateGate saves the gate settings.
func AdminUpdateGate(c *fiber.Ctx) error {
	settings := services.GetVerificationSettings(c.Context())

	settings.Enabled = c.FormValue("enabled") != ""

	if limit, err := strconv.Atoi(c.FormValue("free_limit")); err == nil && limit >= 0 {
		settings.FreeLimit = limit
	}
	if minutes, err := strconv.Atoi(c.FormValue("valid_minutes")); err == nil {
		settings.ValidMinutes = minutes
	}

	if err := services.UpdateVerificationSettings(c.Context(), settings); err != nil {
		slog.Error("Failed to update gate settings", "error", err)
		return redirectWithMessage(c, "/admin/gate", "MongoDB not connected")
	}

	return redirectWithMessage(c, "/admin/gate", "Gate settings saved")
}
