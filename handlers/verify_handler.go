package handlers

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"movie-magic-club/config"
	"movie-magic-club/middleware"
	"movie-magic-club/services"
)

// safeNext keeps redirect targets on this site. Anything that is not a plain
// absolute path falls back to the home page.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}

// clickThrough counts one use against the visitor's daily quota and either
// forwards to the external player/host URL or detours through verification.
// The quota is spent before the check, so the configured limit is the point
// at which the gate closes, not the number of clicks that pass it.
func clickThrough(c *fiber.Ctx, target string) error {
	sessionID := middleware.SessionID(c)

	if err := services.IncrementFreeUsed(c.Context(), sessionID); err != nil {
		slog.Warn("Failed to count free use", "error", err)
	}

	required, err := services.RequiresVerification(c.Context(), sessionID)
	if err != nil {
		slog.Warn("Verification check failed, letting the click through", "error", err)
		required = false
	}

	if required {
		return c.Redirect("/verify/start?next="+url.QueryEscape(c.OriginalURL()), fiber.StatusSeeOther)
	}
	return c.Redirect(target, fiber.StatusSeeOther)
}

// WatchClick gates the Watch Now button.
func WatchClick(c *fiber.Ctx) error {
	movieID := c.Params("id")

	movie, err := services.GetMovie(c.Context(), movieID)
	if err != nil {
		slog.Error("Failed to load movie for watch click", "movieID", movieID, "error", err)
	}
	if movie == nil || movie.WatchURL == "" {
		return c.Redirect("/movie/"+movieID, fiber.StatusSeeOther)
	}

	return clickThrough(c, movie.WatchURL)
}

// DownloadClick gates the Download button.
func DownloadClick(c *fiber.Ctx) error {
	movieID := c.Params("id")

	movie, err := services.GetMovie(c.Context(), movieID)
	if err != nil {
		slog.Error("Failed to load movie for download click", "movieID", movieID, "error", err)
	}
	if movie == nil || movie.DownloadURL == "" {
		return c.Redirect("/movie/"+movieID, fiber.StatusSeeOther)
	}

	return clickThrough(c, movie.DownloadURL)
}

// EpisodeWatchClick gates episode playback the same way movie clicks are.
func EpisodeWatchClick(c *fiber.Ctx) error {
	episodeID := c.Params("id")

	episode, _, _, err := services.GetEpisode(c.Context(), episodeID)
	if err != nil {
		slog.Error("Failed to load episode for watch click", "episodeID", episodeID, "error", err)
	}
	if episode == nil || episode.WatchURL == "" {
		return c.Redirect("/series", fiber.StatusSeeOther)
	}

	return clickThrough(c, episode.WatchURL)
}

// EpisodeDownloadClick gates episode downloads.
func EpisodeDownloadClick(c *fiber.Ctx) error {
	episodeID := c.Params("id")

	episode, _, _, err := services.GetEpisode(c.Context(), episodeID)
	if err != nil {
		slog.Error("Failed to load episode for download click", "episodeID", episodeID, "error", err)
	}
	if episode == nil || episode.DownloadURL == "" {
		return c.Redirect("/series", fiber.StatusSeeOther)
	}

	return clickThrough(c, episode.DownloadURL)
}

// VerifyStart is the entry point once a visitor runs out of free clicks. It
// binds a one-time token to the session, wraps the callback URL in a
// monetized shortlink and shows the "complete verification" page.
func VerifyStart(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		next := safeNext(c.Query("next", "/"))
		sessionID := middleware.SessionID(c)

		required, err := services.RequiresVerification(c.Context(), sessionID)
		if err != nil {
			slog.Warn("Verification check failed", "error", err)
		}
		if !required {
			return c.Redirect(next, fiber.StatusSeeOther)
		}

		token, err := services.CreateVerificationToken(c.Context(), sessionID, next)
		if err != nil {
			slog.Error("Failed to create verification token", "error", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not start verification")
		}

		callback := fmt.Sprintf("%s://%s/verify/auto?token=%s", c.Protocol(), c.Hostname(), token)
		shortURL := services.Shorten(c.Context(), cfg.ShortlinkURL, cfg.ShortlinkAPI, callback)

		return c.Render("verify_start", fiber.Map{
			"Title":    "Verification",
			"ShortURL": shortURL,
		})
	}
}

// VerifyAuto is the callback the shortlink lands on. A valid token marks the
// session verified and resumes the original click.
func VerifyAuto(c *fiber.Ctx) error {
	token := c.Query("token")

	doc, err := services.UseVerificationToken(c.Context(), token)
	if err != nil {
		slog.Error("Failed to consume verification token", "error", err)
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	if doc == nil {
		// Invalid, expired or already used.
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	if err := services.MarkVerified(c.Context(), middleware.SessionID(c)); err != nil {
		slog.Error("Failed to mark session verified", "error", err)
	}

	return c.Redirect(safeNext(doc.Next), fiber.StatusSeeOther)
}
