package handlers

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"movie-magic-club/models"
	"movie-magic-club/services"
)

// SubmitPage renders the community submission form.
func SubmitPage(c *fiber.Ctx) error {
	return c.Render("submit", fiber.Map{
		"Title":     "Submit a movie",
		"Submitted": c.Query("submitted") == "1",
	})
}

// SubmitMovie queues a community submission for admin review.
func SubmitMovie(c *fiber.Ctx) error {
	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		return c.Status(fiber.StatusBadRequest).Render("submit", fiber.Map{
			"Title": "Submit a movie",
			"Error": "Title is required",
		})
	}

	sub := &models.Submission{
		Title:       title,
		Language:    strings.TrimSpace(c.FormValue("language")),
		Quality:     strings.TrimSpace(c.FormValue("quality")),
		Category:    strings.TrimSpace(c.FormValue("category")),
		WatchURL:    strings.TrimSpace(c.FormValue("watch_url")),
		DownloadURL: strings.TrimSpace(c.FormValue("download_url")),
		Description: strings.TrimSpace(c.FormValue("description")),
		SubmittedBy: strings.TrimSpace(c.FormValue("submitted_by")),
	}

	if year, err := strconv.Atoi(c.FormValue("year")); err == nil && year > 0 {
		sub.Year = &year
	}

	sub.Languages = splitLanguages(c.FormValue("languages"))
	if sub.Language == "" && len(sub.Languages) > 0 {
		sub.Language = sub.Languages[0]
	}
	sub.IsMultiDubbed = len(sub.Languages) > 1

	if err := services.CreateSubmission(c.Context(), sub); err != nil {
		slog.Error("Failed to save submission", "title", title, "error", err)
		return c.Status(fiber.StatusInternalServerError).Render("submit", fiber.Map{
			"Title": "Submit a movie",
			"Error": "Could not save your submission, please try again later",
		})
	}

	return c.Redirect("/submit?submitted=1", fiber.StatusSeeOther)
}

// splitLanguages parses a comma-separated language list.
func splitLanguages(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if lang := strings.TrimSpace(part); lang != "" {
			out = append(out, lang)
		}
	}
	return out
}
