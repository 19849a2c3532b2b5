package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Automation holds the release pipeline settings. The block is flat and
// mostly secrets, so it is parsed from struct tags rather than a column of
// getEnv calls.
type Automation struct {
	Enabled bool `env:"AUTOMATION_ENABLED" envDefault:"false"`

	// Debrid-Link seedbox API
	DebridAPIKey string `env:"DEBRID_API_KEY"`
	DebridAPIURL string `env:"DEBRID_API_URL" envDefault:"https://debrid-link.com/api/v2"`

	// Generic PPD remote-upload API
	PPDAPIKey string `env:"PPD_API_KEY"`
	PPDAPIURL string `env:"PPD_API_URL"`

	// TMDB metadata
	TMDBAPIKey string `env:"TMDB_API_KEY"`
	TMDBAPIURL string `env:"TMDB_API_URL" envDefault:"https://api.themoviedb.org/3"`

	// TamilMV forum scraper
	TamilMVBaseURL   string `env:"TAMILMV_BASE_URL" envDefault:"https://tamilmv.re"`
	TamilMVLatestURL string `env:"TAMILMV_LATEST_URL"`

	MaxConcurrentDownloads int  `env:"MAX_CONCURRENT_DOWNLOADS" envDefault:"1"`
	ScrapeIntervalMinutes  int  `env:"SCRAPE_INTERVAL_MINUTES" envDefault:"30"`
	RetryFailed            bool `env:"AUTO_RETRY_FAILED" envDefault:"true"`
	NotifyAdmin            bool `env:"AUTO_NOTIFY_ADMIN" envDefault:"true"`

	// Chat that receives pipeline notifications
	AdminTelegramID string `env:"ADMIN_TELEGRAM_ID"`

	// Public site base, used in notification links
	SiteURL string `env:"SITE_URL"`

	// Scratch space for the manual upload fallback
	DownloadDir string `env:"DOWNLOAD_DIR" envDefault:"downloads"`
}

func LoadAutomation() (*Automation, error) {
	cfg := &Automation{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing automation config: %w", err)
	}
	if cfg.TamilMVLatestURL == "" {
		cfg.TamilMVLatestURL = cfg.TamilMVBaseURL + "/index.php?/forums/forum/8-tamil-dubbed-movies/"
	}
	return cfg, nil
}
