package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"movie-magic-club/config"
	"movie-magic-club/models"
	"movie-magic-club/services"
)

// SupportPage renders the contact form.
func SupportPage(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Render("support", fiber.Map{
			"Title":       "Support",
			"BotUsername": cfg.BotUsername,
		})
	}
}

// SubmitSupportMessage stores a visitor message and pings the admin on
// Telegram when a bot token and admin chat are configured.
func SubmitSupportMessage(cfg *config.Config, auto *config.Automation) fiber.Handler {
	notifier := services.NewTelegramClient(cfg.Credentials.BotToken)

	return func(c *fiber.Ctx) error {
		name := strings.TrimSpace(c.FormValue("name"))
		message := strings.TrimSpace(c.FormValue("message"))
		if name == "" || message == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "Name and message are required",
			})
		}

		if !services.SupportLimiter.Allow(c.IP()) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"error":   "Too many messages, please try again later",
			})
		}

		msg := &models.SupportMessage{
			Name:             name,
			Email:            strings.TrimSpace(c.FormValue("email")),
			TelegramUsername: strings.TrimSpace(c.FormValue("telegram_username")),
			Message:          message,
			IPAddress:        c.IP(),
		}

		if err := services.CreateSupportMessage(c.Context(), msg); err != nil {
			slog.Error("Failed to save support message", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Database not connected",
			})
		}

		services.SupportLimiter.Record(c.IP())

		if cfg.Credentials.BotToken != "" && auto.AdminTelegramID != "" {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
				defer cancel()

				text := fmt.Sprintf("📨 <b>New Support Message</b>\n\n👤 <b>From:</b> %s\n💬 %s", name, message)
				if err := notifier.SendMessage(ctx, auto.AdminTelegramID, text); err != nil {
					slog.Warn("Support notification failed", "error", err)
				}
			}()
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Your message has been sent successfully! We'll get back to you soon.",
		})
	}
}

// AdminSupportMessages lists every support message, newest first.
func AdminSupportMessages(c *fiber.Ctx) error {
	messages, err := services.ListSupportMessages(c.Context())
	if err != nil {
		slog.Error("Failed to list support messages", "error", err)
	}

	return c.Render("admin_support_messages", fiber.Map{
		"Title":    "Support messages",
		"Messages": messages,
	})
}

// AdminUpdateSupportStatus moves a message between pending/replied/closed.
func AdminUpdateSupportStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	status := c.FormValue("status")

	if err := services.UpdateSupportStatus(c.Context(), id, status); err != nil {
		slog.Error("Failed to update support status", "id", id, "status", status, "error", err)
	}

	return c.Redirect("/support/messages", fiber.StatusSeeOther)
}

// NoticeAPI serves the active site banner to the frontend.
func NoticeAPI(c *fiber.Ctx) error {
	notice, err := services.ActiveNotice(c.Context())
	if err != nil {
		slog.Error("Failed to fetch notice", "error", err)
		return c.JSON(fiber.Map{"active": false})
	}
	if notice == nil {
		return c.JSON(fiber.Map{"active": false})
	}

	return c.JSON(fiber.Map{
		"active":     true,
		"message":    notice.Message,
		"type":       notice.Type,
		"icon":       notice.Icon,
		"created_at": notice.CreatedAt,
	})
}
