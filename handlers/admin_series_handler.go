package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"movie-magic-club/config"
	"movie-magic-club/models"
	"movie-magic-club/services"
)

// AdminSeries renders the series dashboard with search.
func AdminSeries(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))

	var (
		series []models.Series
		err    error
	)
	if q != "" {
		series, err = services.SearchSeriesAdmin(c.Context(), q, adminListLimit)
	} else {
		series, err = services.LatestSeries(c.Context(), adminListLimit)
	}

	message := c.Query("message")
	if err != nil {
		slog.Error("Failed to list series for admin", "error", err)
		if message == "" {
			message = "MongoDB not connected"
		}
	}

	return c.Render("admin_series", fiber.Map{
		"Title":     "Manage series",
		"Message":   message,
		"Query":     q,
		"Series":    series,
		"Languages": services.HomeLanguages,
	})
}

// AdminCreateSeries saves a new show.
func AdminCreateSeries(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		title := strings.TrimSpace(c.FormValue("title"))
		if title == "" {
			return redirectWithMessage(c, "/admin/series", "Title is required")
		}

		languages := formValues(c, "languages")
		primary := "Tamil"
		if len(languages) > 0 {
			primary = languages[0]
		}

		quality := c.FormValue("quality")
		if quality == "" {
			quality = "HD"
		}

		series := &models.Series{
			Title:       title,
			Year:        parseYear(c.FormValue("year")),
			Language:    primary,
			Languages:   languages,
			Quality:     quality,
			Category:    c.FormValue("category"),
			Description: c.FormValue("description"),
		}

		if path, err := savePosterUpload(c, cfg.PosterDir); err != nil {
			slog.Error("Poster upload failed", "title", title, "error", err)
		} else if path != "" {
			series.PosterPath = path
		}

		if _, err := services.CreateSeries(c.Context(), series); err != nil {
			slog.Error("Failed to create series", "title", title, "error", err)
			return redirectWithMessage(c, "/admin/series", "MongoDB not connected")
		}

		return redirectWithMessage(c, "/admin/series", "Series saved successfully ✅")
	}
}

// AdminEditSeriesPage renders the edit form for one show.
func AdminEditSeriesPage(c *fiber.Ctx) error {
	seriesID := c.Params("id")

	series, err := services.GetSeries(c.Context(), seriesID)
	if err != nil {
		slog.Error("Failed to load series for edit", "seriesID", seriesID, "error", err)
		return redirectWithMessage(c, "/admin/series", "MongoDB not connected")
	}
	if series == nil {
		return redirectWithMessage(c, "/admin/series", "Series not found")
	}

	return c.Render("admin_edit_series", fiber.Map{
		"Title":     "Edit series",
		"Series":    series,
		"Languages": services.HomeLanguages,
	})
}

// AdminUpdateSeries applies the edit form.
func AdminUpdateSeries(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		seriesID := c.Params("id")

		languages := formValues(c, "languages")
		primary := "Tamil"
		if len(languages) > 0 {
			primary = languages[0]
		}

		quality := c.FormValue("quality")
		if quality == "" {
			quality = "HD"
		}

		fields := map[string]interface{}{
			"title":       c.FormValue("title"),
			"year":        parseYear(c.FormValue("year")),
			"language":    primary,
			"languages":   languages,
			"quality":     quality,
			"category":    c.FormValue("category"),
			"description": c.FormValue("description"),
		}

		if path, err := savePosterUpload(c, cfg.PosterDir); err != nil {
			slog.Error("Poster upload failed", "seriesID", seriesID, "error", err)
		} else if path != "" {
			fields["poster_path"] = path
		}

		if err := services.UpdateSeries(c.Context(), seriesID, fields); err != nil {
			slog.Error("Failed to update series", "seriesID", seriesID, "error", err)
			return redirectWithMessage(c, "/admin/series", "Failed to update series")
		}

		return redirectWithMessage(c, "/admin/series", "Series updated successfully")
	}
}

// AdminDeleteSeries removes the show and everything under it.
func AdminDeleteSeries(c *fiber.Ctx) error {
	seriesID := c.Params("id")

	if err := services.DeleteSeries(c.Context(), seriesID); err != nil {
		slog.Error("Failed to delete series", "seriesID", seriesID, "error", err)
		return redirectWithMessage(c, "/admin/series", "Failed to delete series")
	}

	return redirectWithMessage(c, "/admin/series", "Series deleted successfully")
}

// AdminSeasons lists and adds seasons for one show.
func AdminSeasons(c *fiber.Ctx) error {
	seriesID := c.Params("id")

	series, err := services.GetSeries(c.Context(), seriesID)
	if err != nil {
		slog.Error("Failed to load series", "seriesID", seriesID, "error", err)
		return redirectWithMessage(c, "/admin/series", "MongoDB not connected")
	}
	if series == nil {
		return redirectWithMessage(c, "/admin/series", "Series not found")
	}

	seasons, err := services.ListSeasons(c.Context(), series.ID)
	if err != nil {
		slog.Error("Failed to list seasons", "seriesID", seriesID, "error", err)
	}

	return c.Render("admin_series_seasons", fiber.Map{
		"Title":   "Manage seasons",
		"Message": c.Query("message"),
		"Series":  series,
		"Seasons": seasons,
	})
}

// AdminAddSeason adds one season; duplicate numbers are rejected.
func AdminAddSeason(c *fiber.Ctx) error {
	seriesID := c.Params("id")
	seasonsPath := "/admin/series/" + seriesID + "/seasons"

	series, err := services.GetSeries(c.Context(), seriesID)
	if err != nil || series == nil {
		return redirectWithMessage(c, "/admin/series", "Series not found")
	}

	number, err := strconv.Atoi(c.FormValue("number"))
	if err != nil || number <= 0 {
		return redirectWithMessage(c, seasonsPath, "Season number is required")
	}

	_, err = services.AddSeason(c.Context(), series.ID, number, c.FormValue("name"), parseYear(c.FormValue("year")))
	if errors.Is(err, services.ErrSeasonExists) {
		return redirectWithMessage(c, seasonsPath, fmt.Sprintf("Season %d already exists", number))
	}
	if err != nil {
		slog.Error("Failed to add season", "seriesID", seriesID, "number", number, "error", err)
		return redirectWithMessage(c, seasonsPath, "MongoDB not connected")
	}

	return redirectWithMessage(c, seasonsPath, "Season added")
}

// AdminDeleteSeason removes one season and its episodes.
func AdminDeleteSeason(c *fiber.Ctx) error {
	seriesID := c.Params("id")
	seasonID := c.Params("seasonID")
	seasonsPath := "/admin/series/" + seriesID + "/seasons"

	if err := services.DeleteSeason(c.Context(), seasonID); err != nil {
		slog.Error("Failed to delete season", "seasonID", seasonID, "error", err)
		return redirectWithMessage(c, seasonsPath, "Failed to delete season")
	}

	return redirectWithMessage(c, seasonsPath, "Season deleted")
}

// AdminEpisodes lists and adds episodes for one season.
func AdminEpisodes(c *fiber.Ctx) error {
	seasonID := c.Params("seasonID")

	season, err := services.GetSeason(c.Context(), seasonID)
	if err != nil {
		slog.Error("Failed to load season", "seasonID", seasonID, "error", err)
	}
	if season == nil {
		return c.Render("admin_series_episodes", fiber.Map{
			"Title":   "Manage episodes",
			"Message": "Season not found",
		})
	}

	series, err := services.GetSeries(c.Context(), season.SeriesID.Hex())
	if err != nil {
		slog.Error("Failed to load series for season", "seasonID", seasonID, "error", err)
	}

	episodes, err := services.ListEpisodes(c.Context(), season.ID)
	if err != nil {
		slog.Error("Failed to list episodes", "seasonID", seasonID, "error", err)
	}

	return c.Render("admin_series_episodes", fiber.Map{
		"Title":    "Manage episodes",
		"Message":  c.Query("message"),
		"Series":   series,
		"Season":   season,
		"Episodes": episodes,
	})
}

// AdminAddEpisode adds one episode with its watch/download links.
func AdminAddEpisode(c *fiber.Ctx) error {
	seasonID := c.Params("seasonID")
	episodesPath := "/admin/seasons/" + seasonID + "/episodes"

	season, err := services.GetSeason(c.Context(), seasonID)
	if err != nil {
		slog.Error("Failed to load season", "seasonID", seasonID, "error", err)
		return redirectWithMessage(c, episodesPath, "MongoDB not connected")
	}
	if season == nil {
		return redirectWithMessage(c, episodesPath, "Season not found")
	}

	number, err := strconv.Atoi(c.FormValue("episode_number"))
	if err != nil || number <= 0 {
		return redirectWithMessage(c, episodesPath, "Episode number is required")
	}

	episode := &models.Episode{
		Number:      number,
		Title:       c.FormValue("episode_title"),
		WatchURL:    c.FormValue("watch_link"),
		DownloadURL: c.FormValue("download_link"),
		Description: c.FormValue("description"),
	}

	err = services.AddEpisode(c.Context(), season, episode)
	if errors.Is(err, services.ErrEpisodeExists) {
		return redirectWithMessage(c, episodesPath, fmt.Sprintf("Episode %d already exists", number))
	}
	if err != nil {
		slog.Error("Failed to add episode", "seasonID", seasonID, "number", number, "error", err)
		return redirectWithMessage(c, episodesPath, "MongoDB not connected")
	}

	return redirectWithMessage(c, episodesPath, "Episode added")
}

// AdminDeleteEpisode removes one episode.
func AdminDeleteEpisode(c *fiber.Ctx) error {
	seasonID := c.Params("seasonID")
	episodeID := c.Params("episodeID")
	episodesPath := "/admin/seasons/" + seasonID + "/episodes"

	if err := services.DeleteEpisode(c.Context(), episodeID); err != nil {
		slog.Error("Failed to delete episode", "episodeID", episodeID, "error", err)
		return redirectWithMessage(c, episodesPath, "Failed to delete episode")
	}

	return redirectWithMessage(c, episodesPath, "Episode deleted")
}
