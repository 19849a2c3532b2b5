package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/joho/godotenv"

	"movie-magic-club/bot"
	"movie-magic-club/config"
	"movie-magic-club/handlers"
	"movie-magic-club/middleware"
	"movie-magic-club/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found")
	}

	// Initialize structured logger
	logLevel := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	logHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(logHandler))

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	auto, err := config.LoadAutomation()
	if err != nil {
		slog.Error("Failed to load automation configuration", "error", err)
		os.Exit(1)
	}

	// Initialize MongoDB. The site keeps serving without it: pages render
	// empty and writes report the outage instead of crashing the process.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := services.InitMongoDB(ctx, cfg.MongoURI)
	if err != nil {
		slog.Error("Failed to connect to MongoDB, serving in degraded mode", "error", err)
	} else {
		defer db.Disconnect(ctx)

		// Initialize services
		services.InitServices(db, cfg.DatabaseName)
	}

	// Background workers share one context so they stop together
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	services.StartSessionCleanup(workerCtx)

	pipeline := services.NewPipeline(auto, cfg.Credentials.BotToken, cfg.PosterDir)
	if auto.Enabled {
		pipeline.StartScheduler(workerCtx)
	}

	// Telegram bot polls in its own goroutine and refuses to start
	// when the credentials are incomplete
	go bot.Run(workerCtx, cfg.Credentials)

	// Server-rendered pages share one layout
	engine := html.New("./templates", ".html")
	engine.AddFunc("lower", strings.ToLower)
	engine.AddFunc("has", func(list []string, v string) bool {
		for _, item := range list {
			if item == v {
				return true
			}
		}
		return false
	})

	// Create Fiber app
	app := fiber.New(fiber.Config{
		Views:       engine,
		ViewsLayout: "layouts/main",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			slog.Error("Request error", "error", err, "status", code)
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path}\n",
	}))

	// Static assets skip the visitor cookie
	app.Static("/static", "./static")
	app.Use(middleware.VisitorSession)

	// Public pages
	app.Get("/", handlers.Home)
	app.Get("/search", handlers.SearchPage)
	app.Get("/movies/browse", handlers.BrowseMovies)
	app.Get("/movie/:id", handlers.MovieDetail)
	app.Get("/language/:slug", handlers.BrowseByLanguage)
	app.Get("/genre/:slug", handlers.BrowseByGenre)
	app.Get("/legal", handlers.LegalPage)
	app.Get("/robots.txt", handlers.RobotsTxt)
	app.Get("/health", handlers.HealthCheck)
	app.Get("/debug/movies-count", handlers.MoviesCount)

	// Series pages ("/series/browse" must be registered before "/series/:id")
	app.Get("/series", handlers.SeriesHome)
	app.Get("/series/browse", handlers.BrowseSeriesPage)
	app.Get("/series/:id", handlers.SeriesDetail)

	// Click-through gate: outbound links spend the free quota first
	app.Get("/watch/:id", handlers.WatchClick)
	app.Get("/download/:id", handlers.DownloadClick)
	app.Get("/episode/:id/watch", handlers.EpisodeWatchClick)
	app.Get("/episode/:id/download", handlers.EpisodeDownloadClick)
	app.Get("/episode/:id", handlers.EpisodeDetail)

	// Verification flow
	app.Get("/verify/start", handlers.VerifyStart(cfg))
	app.Get("/verify/auto", handlers.VerifyAuto)

	// Support and community submissions
	app.Get("/support", handlers.SupportPage(cfg))
	app.Post("/support/message", handlers.SubmitSupportMessage(cfg, auto))
	app.Get("/support/messages", middleware.RequireAdminPage, handlers.AdminSupportMessages)
	app.Get("/submit", handlers.SubmitPage)
	app.Post("/submit", handlers.SubmitMovie)
	app.Get("/api/notice", handlers.NoticeAPI)

	// Admin authentication (registered before the guarded group)
	app.Get("/admin/login", handlers.AdminLoginPage)
	app.Post("/admin/login", handlers.AdminLogin(cfg))
	app.Get("/admin/logout", handlers.AdminLogout)

	// Admin pages (protected)
	admin := app.Group("/admin", middleware.RequireAdminPage)

	admin.Get("/movies", handlers.AdminMovies)
	admin.Post("/movies", handlers.AdminCreateMovie(cfg))
	admin.Get("/movies/:id/edit", handlers.AdminEditMoviePage)
	admin.Post("/movies/:id/edit", handlers.AdminUpdateMovie(cfg))
	admin.Post("/movies/:id/delete", handlers.AdminDeleteMovie)

	admin.Get("/series", handlers.AdminSeries)
	admin.Post("/series", handlers.AdminCreateSeries(cfg))
	admin.Get("/series/:id/edit", handlers.AdminEditSeriesPage)
	admin.Post("/series/:id/edit", handlers.AdminUpdateSeries(cfg))
	admin.Post("/series/:id/delete", handlers.AdminDeleteSeries)
	admin.Get("/series/:id/seasons", handlers.AdminSeasons)
	admin.Post("/series/:id/seasons/add", handlers.AdminAddSeason)
	admin.Post("/series/:id/seasons/:seasonID/delete", handlers.AdminDeleteSeason)
	admin.Get("/seasons/:seasonID/episodes", handlers.AdminEpisodes)
	admin.Post("/seasons/:seasonID/episodes", handlers.AdminAddEpisode)
	admin.Post("/seasons/:seasonID/episodes/:episodeID/delete", handlers.AdminDeleteEpisode)

	admin.Get("/submissions", handlers.AdminSubmissions)
	admin.Post("/submissions/approve/:id", handlers.AdminApproveSubmission)
	admin.Post("/submissions/reject/:id", handlers.AdminRejectSubmission)

	admin.Get("/notice", handlers.AdminNoticePage)
	admin.Post("/notice/update", handlers.AdminUpdateNotice)
	admin.Post("/notice/disable", handlers.AdminDisableNotice)

	admin.Get("/gate", handlers.AdminGatePage)
	admin.Post("/gate", handlers.AdminUpdateGate)

	admin.Get("/automation", handlers.AdminAutomation(auto))
	admin.Post("/automation/scan", handlers.AdminTriggerScan(pipeline))
	admin.Post("/automation/magnet", handlers.AdminAddMagnet(pipeline))
	admin.Post("/support/:id/status", handlers.AdminUpdateSupportStatus)

	// Admin JSON API (protected)
	api := app.Group("/api/admin", middleware.RequireAdmin)
	api.Get("/jobs", handlers.JobsAPI)
	api.Post("/migrate-series", handlers.MigrateSeriesHandler)

	// WebSocket endpoint for the live job feed (requires authentication)
	app.Get("/ws/admin/jobs", middleware.RequireAdmin, handlers.JobFeedUpgrade, websocket.New(handlers.HandleJobFeed))

	// Shut down on SIGINT/SIGTERM: workers first, then the listener
	go func() {
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
		<-signals
		slog.Info("Shutting down")
		cancelWorkers()
		if err := app.Shutdown(); err != nil {
			slog.Error("Server shutdown failed", "error", err)
		}
	}()

	// Start server
	slog.Info("Server starting", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("Server failed to start", "error", err)
		os.Exit(1)
	}
}
