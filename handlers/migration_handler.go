package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"movie-magic-club/services"
)

// MigrateSeriesHandler splits embedded season arrays out of old series
// documents into the seasons and episodes collections. Admin-only; safe to
// call more than once.
func MigrateSeriesHandler(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	slog.Info("Starting series migration", "timestamp", time.Now().Format(time.RFC3339))

	if err := services.MigrateEmbeddedSeasons(ctx); err != nil {
		slog.Error("Series migration failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Migration failed",
			"details": err.Error(),
		})
	}

	slog.Info("Series migration completed", "timestamp", time.Now().Format(time.RFC3339))

	return c.JSON(fiber.Map{
		"message":   "Migration completed successfully",
		"details":   "Embedded seasons have been moved to the seasons and episodes collections",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
