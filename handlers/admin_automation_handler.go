package handlers

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"movie-magic-club/config"
	"movie-magic-club/services"
)

// Background budget for one manually triggered job or scan. Covers the
// seedbox wait plus upload time.
const manualJobTimeout = 45 * time.Minute

// AdminAutomation renders the pipeline dashboard: recent jobs plus a live
// event feed over the websocket.
func AdminAutomation(auto *config.Automation) fiber.Handler {
	return func(c *fiber.Ctx) error {
		jobs, err := services.ListJobs(c.Context(), adminListLimit)

		message := c.Query("message")
		if err != nil {
			slog.Error("Failed to list automation jobs", "error", err)
			if message == "" {
				message = "MongoDB not connected"
			}
		}

		return c.Render("admin_automation", fiber.Map{
			"Title":       "Automation",
			"Message":     message,
			"Enabled":     auto.Enabled,
			"Interval":    auto.ScrapeIntervalMinutes,
			"Jobs":        jobs,
			"Subscribers": services.GetJobFeed().SubscriberCount(),
		})
	}
}

// AdminTriggerScan kicks off one forum scan in the background. Overlapping
// scans are refused by the pipeline itself.
func AdminTriggerScan(pipeline *services.Pipeline) fiber.Handler {
	return func(c *fiber.Ctx) error {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), manualJobTimeout)
			defer cancel()

			if _, err := pipeline.ScanOnce(ctx, 0); err != nil {
				slog.Error("Manual scan failed", "error", err)
			}
		}()

		return redirectWithMessage(c, "/admin/automation", "Scan started ⏳")
	}
}

// AdminAddMagnet runs one hand-entered magnet through the pipeline.
func AdminAddMagnet(pipeline *services.Pipeline) fiber.Handler {
	return func(c *fiber.Ctx) error {
		title := strings.TrimSpace(c.FormValue("title"))
		magnet := strings.TrimSpace(c.FormValue("magnet"))

		if title == "" || !strings.HasPrefix(magnet, "magnet:") {
			return redirectWithMessage(c, "/admin/automation", "A title and a magnet link are required")
		}

		year := parseYear(c.FormValue("year"))

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), manualJobTimeout)
			defer cancel()

			if _, err := pipeline.ProcessMagnet(ctx, title, year, magnet); err != nil {
				slog.Error("Manual magnet job failed", "title", title, "error", err)
			}
		}()

		return redirectWithMessage(c, "/admin/automation", "Job started ⏳")
	}
}

// JobsAPI returns recent jobs as JSON for dashboard polling.
func JobsAPI(c *fiber.Ctx) error {
	jobs, err := services.ListJobs(c.Context(), adminListLimit)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Database not connected",
		})
	}
	return c.JSON(fiber.Map{"jobs": jobs})
}

// JobFeedUpgrade gates the websocket endpoint to upgrade requests.
func JobFeedUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		c.Locals("allowed", true)
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// HandleJobFeed streams pipeline events to one admin dashboard until the
// socket closes.
func HandleJobFeed(c *websocket.Conn) {
	feed := services.GetJobFeed()
	sub := feed.Subscribe(c)
	defer feed.Unsubscribe(sub.ID)

	go jobFeedWriter(sub)
	jobFeedReader(sub)
}

// jobFeedWriter pushes queued events and keeps the connection alive.
func jobFeedWriter(sub *services.JobFeedConnection) {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		sub.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-sub.Send:
			sub.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				sub.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := sub.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				slog.Error("Failed to write job feed message", "error", err)
				return
			}

		case <-ticker.C:
			sub.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := sub.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// jobFeedReader drains the socket so pings and closes are noticed. The feed
// is one-way; inbound payloads are ignored.
func jobFeedReader(sub *services.JobFeedConnection) {
	defer sub.Conn.Close()

	sub.Conn.SetReadLimit(4 * 1024)
	sub.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	sub.Conn.SetPongHandler(func(string) error {
		sub.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := sub.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("Job feed read error", "error", err)
			}
			return
		}
		sub.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	}
}
