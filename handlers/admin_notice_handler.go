package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"movie-magic-club/services"
)

// AdminNoticePage manages the site-wide banner.
func AdminNoticePage(c *fiber.Ctx) error {
	notice, err := services.ActiveNotice(c.Context())
	if err != nil {
		slog.Error("Failed to fetch notice", "error", err)
	}

	return c.Render("admin_notice", fiber.Map{
		"Title":   "Site notice",
		"Notice":  notice,
		"Success": c.Query("success"),
		"Error":   c.Query("error"),
	})
}

// AdminUpdateNotice saves the banner. Only one notice stays active.
func AdminUpdateNotice(c *fiber.Ctx) error {
	message := c.FormValue("message")
	if message == "" {
		return c.Redirect("/admin/notice?error=1", fiber.StatusSeeOther)
	}

	active := c.FormValue("active") != ""

	err := services.UpdateNotice(c.Context(), message, c.FormValue("notice_type"), c.FormValue("icon"), active)
	if err != nil {
		slog.Error("Failed to update notice", "error", err)
		return c.Redirect("/admin/notice?error=db", fiber.StatusSeeOther)
	}

	return c.Redirect("/admin/notice?success=1", fiber.StatusSeeOther)
}

// AdminDisableNotice hides every banner.
func AdminDisableNotice(c *fiber.Ctx) error {
	if err := services.DisableNotices(c.Context()); err != nil {
		slog.Error("Failed to disable notices", "error", err)
		return c.Redirect("/admin/notice?error=db", fiber.StatusSeeOther)
	}

	return c.Redirect("/admin/notice?success=disabled", fiber.StatusSeeOther)
}
