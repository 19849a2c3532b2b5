package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"movie-magic-club/services"
)

// AdminSubmissions shows the pending community submissions queue.
func AdminSubmissions(c *fiber.Ctx) error {
	submissions, err := services.ListPendingSubmissions(c.Context())

	message := c.Query("message")
	if err != nil {
		slog.Error("Failed to list submissions", "error", err)
		if message == "" {
			message = "MongoDB not connected"
		}
	}

	return c.Render("admin_submissions", fiber.Map{
		"Title":        "Review submissions",
		"Message":      message,
		"Submissions":  submissions,
		"TotalPending": len(submissions),
	})
}

// AdminApproveSubmission publishes a submission into the catalog.
func AdminApproveSubmission(c *fiber.Ctx) error {
	id := c.Params("id")

	err := services.ApproveSubmission(c.Context(), id)
	if errors.Is(err, services.ErrSubmissionNotFound) {
		return redirectWithMessage(c, "/admin/submissions", "Submission not found")
	}
	if err != nil {
		slog.Error("Failed to approve submission", "id", id, "error", err)
		return redirectWithMessage(c, "/admin/submissions", "MongoDB not connected")
	}

	return redirectWithMessage(c, "/admin/submissions", "Submission approved successfully ✅")
}

// AdminRejectSubmission marks a submission rejected without publishing it.
func AdminRejectSubmission(c *fiber.Ctx) error {
	id := c.Params("id")

	err := services.RejectSubmission(c.Context(), id)
	if errors.Is(err, services.ErrSubmissionNotFound) {
		return redirectWithMessage(c, "/admin/submissions", "Submission not found")
	}
	if err != nil {
		slog.Error("Failed to reject submission", "id", id, "error", err)
		return redirectWithMessage(c, "/admin/submissions", "MongoDB not connected")
	}

	return redirectWithMessage(c, "/admin/submissions", "Submission rejected ❌")
}
