package handlers

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"movie-magic-club/models"
	"movie-magic-club/services"
)

const (
	homeLatestLimit  = 20
	languageRowLimit = 12
	searchLimit      = 30
)

// LanguageRow is one shelf on the home page.
type LanguageRow struct {
	Language string
	Movies   []models.Movie
}

var languageNames = map[string]string{
	"tamil":     "Tamil",
	"telugu":    "Telugu",
	"hindi":     "Hindi",
	"malayalam": "Malayalam",
	"kannada":   "Kannada",
}

var genreNames = map[string]string{
	"action":  "Action",
	"comedy":  "Comedy",
	"drama":   "Drama",
	"horror":  "Horror",
	"crime":   "Crime",
	"romance": "Romance",
}

// titleWord uppercases the first letter of a slug ("tamil" -> "Tamil").
func titleWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// Home renders the landing page: hero and trending come from the latest
// uploads, followed by one shelf per supported language.
func Home(c *fiber.Ctx) error {
	latest, err := services.LatestMovies(c.Context(), homeLatestLimit)
	if err != nil {
		slog.Error("Failed to load latest movies", "error", err)
	}

	rows := make([]LanguageRow, 0, len(services.HomeLanguages))
	for _, language := range services.HomeLanguages {
		movies, err := services.MoviesByLanguage(c.Context(), language, languageRowLimit)
		if err != nil {
			slog.Error("Failed to load language shelf", "language", language, "error", err)
			continue
		}
		rows = append(rows, LanguageRow{Language: language, Movies: movies})
	}

	notice, err := services.ActiveNotice(c.Context())
	if err != nil {
		slog.Error("Failed to load site notice", "error", err)
	}

	return c.Render("index", fiber.Map{
		"Title":        "Movies Magic Club",
		"Latest":       latest,
		"LanguageRows": rows,
		"Notice":       notice,
	})
}

// SearchPage runs a case-insensitive title search.
func SearchPage(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))

	var movies []models.Movie
	if query != "" {
		var err error
		movies, err = services.SearchMovies(c.Context(), query, searchLimit)
		if err != nil {
			slog.Error("Search failed", "query", query, "error", err)
		}
	}

	return c.Render("search", fiber.Map{
		"Title":  "Search",
		"Query":  query,
		"Movies": movies,
	})
}

// BrowseMovies lists every movie, optionally narrowed by ?genre=.
func BrowseMovies(c *fiber.Ctx) error {
	genre := strings.TrimSpace(c.Query("genre"))

	movies, err := services.MoviesByCategory(c.Context(), genre)
	if err != nil {
		slog.Error("Failed to browse movies", "genre", genre, "error", err)
	}

	return c.Render("movies_browse", fiber.Map{
		"Title":  "Browse movies",
		"Genre":  genre,
		"Movies": movies,
	})
}

// BrowseByLanguage is the see-all page behind each home shelf.
func BrowseByLanguage(c *fiber.Ctx) error {
	slug := strings.ToLower(c.Params("slug"))
	language, ok := languageNames[slug]
	if !ok {
		language = titleWord(slug)
	}

	movies, err := services.MoviesByLanguage(c.Context(), language, 0)
	if err != nil {
		slog.Error("Failed to browse by language", "language", language, "error", err)
	}

	return c.Render("browse", fiber.Map{
		"Title":        language + " movies",
		"PageTitle":    language + " movies",
		"PageSubtitle": fmt.Sprintf("All %s movies saved in Movies Magic Club", language),
		"Movies":       movies,
	})
}

// BrowseByGenre lists movies whose category mentions the genre.
func BrowseByGenre(c *fiber.Ctx) error {
	slug := strings.ToLower(c.Params("slug"))
	genre, ok := genreNames[slug]
	if !ok {
		genre = titleWord(slug)
	}

	movies, err := services.MoviesByCategory(c.Context(), genre)
	if err != nil {
		slog.Error("Failed to browse by genre", "genre", genre, "error", err)
	}

	return c.Render("browse", fiber.Map{
		"Title":        genre + " movies",
		"PageTitle":    genre + " movies",
		"PageSubtitle": fmt.Sprintf("All movies tagged as %s", genre),
		"Movies":       movies,
	})
}

// MovieDetail renders a single movie page. A missing or malformed id renders
// the template with no movie rather than an error page.
func MovieDetail(c *fiber.Ctx) error {
	movieID := c.Params("id")

	movie, err := services.GetMovie(c.Context(), movieID)
	if err != nil {
		slog.Error("Failed to load movie", "movieID", movieID, "error", err)
	}

	title := "Movie"
	if movie != nil {
		title = movie.Title
	}

	return c.Render("movie_detail", fiber.Map{
		"Title": title,
		"Movie": movie,
	})
}

// LegalPage renders the DMCA / terms page.
func LegalPage(c *fiber.Ctx) error {
	return c.Render("legal", fiber.Map{
		"Title": "Legal",
	})
}

func RobotsTxt(c *fiber.Ctx) error {
	return c.SendString("User-agent: *\nDisallow: /admin/\nAllow: /")
}

func HealthCheck(c *fiber.Ctx) error {
	mongoState := "connected"
	if err := services.PingDatabase(c.Context()); err != nil {
		mongoState = "disconnected"
	}
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "movie-magic-club",
		"mongo":   mongoState,
	})
}

// MoviesCount is a plain-text probe for checking database connectivity.
func MoviesCount(c *fiber.Ctx) error {
	count, err := services.CountMovies(c.Context())
	if err != nil {
		return c.SendString("MongoDB not connected")
	}
	return c.SendString(fmt.Sprintf("Movies in DB: %d", count))
}
