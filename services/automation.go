package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"movie-magic-club/config"
	"movie-magic-club/models"
)

const (
	debridWaitLimit  = 30 * time.Minute
	releasePause     = 5 * time.Second
	defaultScanLimit = 10
)

// Pipeline wires the scraper, seedbox, file host and metadata clients into
// the automated release flow.
type Pipeline struct {
	cfg       *config.Automation
	scraper   *Scraper
	debrid    *DebridClient
	ppd       *PPDClient
	telegram  *TelegramClient
	feed      *JobFeed
	posterDir string
	scanGuard chan struct{}
	sem       chan struct{}
}

func NewPipeline(cfg *config.Automation, botToken, posterDir string) *Pipeline {
	workers := cfg.MaxConcurrentDownloads
	if workers < 1 {
		workers = 1
	}

	return &Pipeline{
		cfg:       cfg,
		scraper:   NewScraper(cfg.TamilMVBaseURL, cfg.TamilMVLatestURL),
		debrid:    NewDebridClient(cfg.DebridAPIURL, cfg.DebridAPIKey),
		ppd:       NewPPDClient(cfg.PPDAPIURL, cfg.PPDAPIKey),
		telegram:  NewTelegramClient(botToken),
		feed:      GetJobFeed(),
		posterDir: posterDir,
		scanGuard: make(chan struct{}, 1),
		sem:       make(chan struct{}, workers),
	}
}

// mark persists a job state change and pushes it to the dashboards.
func (p *Pipeline) mark(ctx context.Context, release models.Release, status string, extra bson.M) {
	db := GetDatabase()
	if db != nil {
		set := bson.M{"status": status, "updated_at": time.Now().UTC()}
		for key, value := range extra {
			set[key] = value
		}

		opts := options.Update().SetUpsert(true)
		_, err := db.Collection("automation_movies").UpdateOne(ctx,
			bson.M{"title": release.Title, "year": release.Year},
			bson.M{
				"$set":         set,
				"$setOnInsert": bson.M{"created_at": time.Now().UTC()},
			},
			opts,
		)
		if err != nil {
			slog.Error("Failed to persist automation job", "title", release.Title, "error", err)
		}
	}

	event := models.JobEvent{Type: "job_status", Title: release.Title, Status: status}
	if detail, ok := extra["error"].(string); ok {
		event.Detail = detail
	}
	if movieID, ok := extra["movie_id"].(string); ok {
		event.MovieID = movieID
	}
	p.feed.Publish(event)
}

func (p *Pipeline) fail(ctx context.Context, release models.Release, cause error) {
	slog.Error("Release pipeline failed", "title", release.Title, "error", cause)
	p.mark(ctx, release, models.JobStatusFailed, bson.M{"error": cause.Error()})
}

// ProcessRelease runs one release through the full pipeline and returns the
// catalog id of the published movie.
func (p *Pipeline) ProcessRelease(ctx context.Context, release models.Release, torrent models.Torrent) (string, error) {
	select {
	case p.sem <- struct{}{}:
		defer func() { <-p.sem }()
	case <-ctx.Done():
		return "", ctx.Err()
	}

	slog.Info("Processing release", "title", release.Title, "torrent", torrent.Title, "sizeGB", torrent.SizeGB)

	p.mark(ctx, release, models.JobStatusDebridAdd, bson.M{
		"magnet":  torrent.Magnet,
		"quality": torrent.Title,
		"error":   "",
	})

	torrentID, err := p.debrid.AddMagnet(ctx, torrent.Magnet)
	if err != nil {
		p.fail(ctx, release, err)
		return "", err
	}

	p.mark(ctx, release, models.JobStatusDownloading, nil)

	// The TMDB lookup runs while the seedbox leeches.
	metaCh := make(chan *TMDBMovie, 1)
	go func() {
		meta, err := SearchTMDB(ctx, p.cfg.TMDBAPIURL, p.cfg.TMDBAPIKey, release.Title, release.Year)
		if err != nil {
			slog.Warn("TMDB lookup failed", "title", release.Title, "error", err)
		}
		metaCh <- meta
	}()

	directLink, err := p.debrid.WaitForDownload(ctx, torrentID, debridWaitLimit)
	meta := <-metaCh
	if err != nil {
		p.fail(ctx, release, err)
		return "", err
	}

	p.mark(ctx, release, models.JobStatusUploading, nil)

	year := time.Now().Year()
	if release.Year != nil {
		year = *release.Year
	}
	filename := fmt.Sprintf("%s_%d.mkv", release.Title, year)

	hosted, err := p.ppd.RemoteUpload(ctx, directLink, filename)
	if err != nil {
		// The direct link still works, so save the file for a manual upload.
		if path, dlErr := DownloadToDisk(ctx, directLink, p.cfg.DownloadDir, filename); dlErr != nil {
			slog.Warn("Manual download fallback failed", "title", release.Title, "error", dlErr)
		} else {
			slog.Info("Release saved for manual upload", "title", release.Title, "path", path)
			err = fmt.Errorf("%w (saved to %s for manual upload)", err, path)
		}
		p.fail(ctx, release, err)
		return "", err
	}

	movie := &models.Movie{
		Title:       release.Title,
		Year:        release.Year,
		Language:    "Tamil",
		Languages:   []string{"Tamil"},
		Quality:     `HD \ 1080P`,
		WatchURL:    hosted.WatchURL,
		DownloadURL: hosted.DownloadURL,
	}

	if meta != nil {
		movie.Description = meta.Overview
		movie.Rating = meta.Rating
		if meta.PosterURL != "" {
			posterPath, err := DownloadPoster(ctx, meta.PosterURL, p.posterDir)
			if err != nil {
				slog.Warn("Poster download failed", "title", release.Title, "error", err)
			} else {
				movie.PosterPath = posterPath
			}
		}
	}

	p.mark(ctx, release, models.JobStatusSaving, bson.M{
		"watch_url":    hosted.WatchURL,
		"download_url": hosted.DownloadURL,
	})

	movieID, err := UpsertAutoMovie(ctx, movie)
	if err != nil {
		p.fail(ctx, release, err)
		return "", err
	}

	p.mark(ctx, release, models.JobStatusComplete, bson.M{"movie_id": movieID, "error": ""})
	slog.Info("Release published", "title", release.Title, "movieID", movieID)

	if p.cfg.NotifyAdmin && p.cfg.AdminTelegramID != "" {
		if err := p.telegram.NotifyMovieAdded(ctx, p.cfg.AdminTelegramID, p.cfg.SiteURL, release.Title, movieID); err != nil {
			slog.Warn("Admin notification failed", "error", err)
		}
	}

	return movieID, nil
}

// ProcessMagnet runs the pipeline for one hand-entered magnet link.
func (p *Pipeline) ProcessMagnet(ctx context.Context, title string, year *int, magnet string) (string, error) {
	name := magnetDisplayName(magnet)
	if name == "" {
		name = title
	}

	release := models.Release{Title: title, Year: year}
	torrent := models.Torrent{Title: name, Magnet: magnet, SizeGB: ParseSizeGB(name)}
	return p.ProcessRelease(ctx, release, torrent)
}

// skipRelease reports whether a persisted job blocks reprocessing. Jobs left
// mid-flight by a crash are considered stale and run again.
func (p *Pipeline) skipRelease(ctx context.Context, release models.Release) bool {
	db := GetDatabase()
	if db == nil {
		return false
	}

	var job models.AutomationJob
	err := db.Collection("automation_movies").FindOne(ctx,
		bson.M{"title": release.Title, "year": release.Year}).Decode(&job)
	if err != nil {
		return false
	}

	switch job.Status {
	case models.JobStatusComplete:
		return true
	case models.JobStatusFailed:
		return !p.cfg.RetryFailed
	default:
		return false
	}
}

// ScanOnce crawls the forum once and processes anything new.
func (p *Pipeline) ScanOnce(ctx context.Context, limit int) (models.ScanSummary, error) {
	select {
	case p.scanGuard <- struct{}{}:
		defer func() { <-p.scanGuard }()
	default:
		return models.ScanSummary{}, fmt.Errorf("a scan is already running")
	}

	if limit <= 0 {
		limit = defaultScanLimit
	}

	summary := models.ScanSummary{}

	releases, err := p.scraper.LatestReleases(ctx, limit)
	if err != nil {
		return summary, err
	}
	summary.Scanned = len(releases)

	for _, release := range releases {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}

		existing, err := FindMovieByTitleYear(ctx, release.Title, release.Year)
		if err != nil {
			slog.Warn("Catalog lookup failed", "title", release.Title, "error", err)
		}
		if existing != nil {
			slog.Info("Skipping release already in catalog", "title", release.Title)
			summary.Skipped++
			continue
		}
		if p.skipRelease(ctx, release) {
			summary.Skipped++
			continue
		}

		torrents, err := p.scraper.TopicTorrents(ctx, release.TopicURL)
		if err != nil {
			slog.Warn("Topic scrape failed", "title", release.Title, "error", err)
			summary.Failed++
			continue
		}
		if len(torrents) == 0 {
			slog.Warn("No torrents in topic", "title", release.Title)
			summary.Failed++
			continue
		}

		best := SelectBestTorrent(torrents)
		if best == nil {
			slog.Info("No release matched the quality rules", "title", release.Title)
			summary.Skipped++
			continue
		}

		if _, err := p.ProcessRelease(ctx, release, *best); err != nil {
			summary.Failed++
		} else {
			summary.Added++
			summary.Movies = append(summary.Movies, release.Title)
		}

		// Breather between releases so the external services are not hammered.
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		case <-time.After(releasePause):
		}
	}

	slog.Info("Forum scan finished",
		"scanned", summary.Scanned,
		"added", summary.Added,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
	)
	return summary, nil
}

// StartScheduler runs periodic scans until the context is cancelled.
func (p *Pipeline) StartScheduler(ctx context.Context) {
	interval := time.Duration(p.cfg.ScrapeIntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = 30 * time.Minute
	}

	go func() {
		slog.Info("Automation scheduler started", "interval", interval.String())

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				scanCtx, cancel := context.WithTimeout(ctx, interval)
				if _, err := p.ScanOnce(scanCtx, defaultScanLimit); err != nil {
					slog.Error("Scheduled scan failed", "error", err)
				}
				cancel()

			case <-ctx.Done():
				slog.Info("Automation scheduler stopped")
				return
			}
		}
	}()
}

// ListJobs returns recent pipeline jobs for the admin panel.
func ListJobs(ctx context.Context, limit int64) ([]models.AutomationJob, error) {
	db := GetDatabase()
	if db == nil {
		return nil, ErrDatabaseUnavailable
	}

	opts := options.Find().SetSort(bson.M{"updated_at": -1}).SetLimit(limit)
	cursor, err := db.Collection("automation_movies").Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list automation jobs: %w", err)
	}
	defer cursor.Close(ctx)

	var jobs []models.AutomationJob
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("failed to decode automation jobs: %w", err)
	}
	return jobs, nil
}
