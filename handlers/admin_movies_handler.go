package handlers

import (
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"movie-magic-club/config"
	"movie-magic-club/models"
	"movie-magic-club/services"
)

const adminListLimit = 50

// redirectWithMessage sends the admin back to a dashboard with a flash note.
func redirectWithMessage(c *fiber.Ctx, path, message string) error {
	return c.Redirect(path+"?message="+url.QueryEscape(message), fiber.StatusSeeOther)
}

// parseYear turns a form value into an optional year. Blank and garbage
// both mean "no year".
func parseYear(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &year
}

// formValues reads a repeated form field (language checkboxes).
func formValues(c *fiber.Ctx, key string) []string {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		if v := strings.TrimSpace(c.FormValue(key)); v != "" {
			return []string{v}
		}
		return nil
	}

	var out []string
	for _, v := range form.Value[key] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// savePosterUpload stores an uploaded poster and returns its relative path.
// No file selected is not an error.
func savePosterUpload(c *fiber.Ctx, posterDir string) (string, error) {
	header, err := c.FormFile("poster")
	if err != nil || header == nil || header.Filename == "" {
		return "", nil
	}

	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	return services.SavePoster(posterDir, header.Filename, file)
}

// AdminMovies renders the movies dashboard: per-language stats, search and
// the newest fifty entries.
func AdminMovies(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))

	var (
		movies []models.Movie
		err    error
	)
	if q != "" {
		movies, err = services.SearchMovies(c.Context(), q, adminListLimit)
	} else {
		movies, err = services.LatestMovies(c.Context(), adminListLimit)
	}
	if err != nil {
		slog.Error("Failed to list movies for admin", "error", err)
	}

	total, countErr := services.CountMovies(c.Context())
	counts, _ := services.CountMoviesByLanguage(c.Context())

	message := c.Query("message")
	if countErr != nil && message == "" {
		message = "MongoDB not connected"
	}

	return c.Render("admin_movies", fiber.Map{
		"Title":          "Manage movies",
		"Message":        message,
		"Query":          q,
		"TotalMovies":    total,
		"LanguageCounts": counts,
		"Languages":      services.HomeLanguages,
		"Movies":         movies,
	})
}

// AdminCreateMovie saves a new catalog entry. The first checked language
// becomes the primary one.
func AdminCreateMovie(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		title := strings.TrimSpace(c.FormValue("title"))
		if title == "" {
			return redirectWithMessage(c, "/admin/movies", "Title is required")
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

		movie := &models.Movie{
			Title:         title,
			Year:          parseYear(c.FormValue("year")),
			Language:      primary,
			Languages:     languages,
			IsMultiDubbed: len(languages) > 1,
			Quality:       quality,
			Category:      c.FormValue("category"),
			WatchURL:      c.FormValue("watch_url"),
			DownloadURL:   c.FormValue("download_url"),
			Description:   c.FormValue("description"),
		}

		if path, err := savePosterUpload(c, cfg.PosterDir); err != nil {
			slog.Error("Poster upload failed", "title", title, "error", err)
		} else if path != "" {
			movie.PosterPath = path
		}

		if _, err := services.CreateMovie(c.Context(), movie); err != nil {
			slog.Error("Failed to create movie", "title", title, "error", err)
			return redirectWithMessage(c, "/admin/movies", "MongoDB not connected")
		}

		return redirectWithMessage(c, "/admin/movies", "Movie saved successfully ✅")
	}
}

// AdminEditMoviePage renders the edit form for one movie.
func AdminEditMoviePage(c *fiber.Ctx) error {
	movieID := c.Params("id")

	movie, err := services.GetMovie(c.Context(), movieID)
	if err != nil {
		slog.Error("Failed to load movie for edit", "movieID", movieID, "error", err)
		return redirectWithMessage(c, "/admin/movies", "MongoDB not connected")
	}
	if movie == nil {
		return redirectWithMessage(c, "/admin/movies", "Movie not found")
	}

	return c.Render("admin_edit_movie", fiber.Map{
		"Title":     "Edit movie",
		"Movie":     movie,
		"Languages": services.HomeLanguages,
	})
}

// AdminUpdateMovie applies the edit form. An empty year clears the stored
// one; the poster is only replaced when a new file is uploaded.
func AdminUpdateMovie(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		movieID := c.Params("id")

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
			"title":           c.FormValue("title"),
			"year":            parseYear(c.FormValue("year")),
			"language":        primary,
			"languages":       languages,
			"is_multi_dubbed": len(languages) > 1,
			"quality":         quality,
			"category":        c.FormValue("category"),
			"watch_url":       c.FormValue("watch_url"),
			"download_url":    c.FormValue("download_url"),
			"description":     c.FormValue("description"),
		}

		if path, err := savePosterUpload(c, cfg.PosterDir); err != nil {
			slog.Error("Poster upload failed", "movieID", movieID, "error", err)
		} else if path != "" {
			fields["poster_path"] = path
		}

		if err := services.UpdateMovie(c.Context(), movieID, fields); err != nil {
			slog.Error("Failed to update movie", "movieID", movieID, "error", err)
			return redirectWithMessage(c, "/admin/movies", "Failed to update movie")
		}

		return redirectWithMessage(c, "/admin/movies", "Movie updated successfully")
	}
}

// AdminDeleteMovie removes a catalog entry.
func AdminDeleteMovie(c *fiber.Ctx) error {
	movieID := c.Params("id")

	if err := services.DeleteMovie(c.Context(), movieID); err != nil {
		slog.Error("Failed to delete movie", "movieID", movieID, "error", err)
		return redirectWithMessage(c, "/admin/movies", "Failed to delete movie")
	}

	return redirectWithMessage(c, "/admin/movies", "Movie deleted successfully")
}
