package handlers

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"movie-magic-club/services"
)

// SeriesHome renders the series tab: hero slider, genre chips and the
// latest-uploads rows.
func SeriesHome(c *fiber.Ctx) error {
	latest, err := services.LatestSeries(c.Context(), homeLatestLimit)
	if err != nil {
		slog.Error("Failed to load latest series", "error", err)
	}

	return c.Render("series_index", fiber.Map{
		"Title":       "Series",
		"Latest":      latest,
		"ActiveGenre": "",
	})
}

// BrowseSeriesPage lists every series, optionally narrowed by ?genre=.
func BrowseSeriesPage(c *fiber.Ctx) error {
	genre := strings.TrimSpace(c.Query("genre"))

	series, err := services.BrowseSeries(c.Context(), genre)
	if err != nil {
		slog.Error("Failed to browse series", "genre", genre, "error", err)
	}

	return c.Render("series_browse", fiber.Map{
		"Title":  "Browse series",
		"Genre":  genre,
		"Series": series,
	})
}

// SeriesDetail shows one series with its seasons and episode selector.
func SeriesDetail(c *fiber.Ctx) error {
	seriesID := c.Params("id")

	series, seasons, episodeCount, err := services.SeriesDetail(c.Context(), seriesID)
	if err != nil {
		slog.Error("Failed to load series detail", "seriesID", seriesID, "error", err)
	}

	title := "Series"
	if series != nil {
		title = series.Title
	}

	return c.Render("series_detail", fiber.Map{
		"Title":        title,
		"Series":       series,
		"Seasons":      seasons,
		"EpisodeCount": episodeCount,
	})
}

// EpisodeDetail shows one episode with its watch and download actions. The
// season and series are resolved for breadcrumbs and metadata.
func EpisodeDetail(c *fiber.Ctx) error {
	episodeID := c.Params("id")

	episode, season, series, err := services.GetEpisode(c.Context(), episodeID)
	if err != nil {
		slog.Error("Failed to load episode", "episodeID", episodeID, "error", err)
	}

	title := "Episode"
	if episode != nil {
		title = episode.EpisodeLabel()
	}

	return c.Render("episode_detail", fiber.Map{
		"Title":   title,
		"Series":  series,
		"Season":  season,
		"Episode": episode,
	})
}
