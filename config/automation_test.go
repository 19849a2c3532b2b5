package config

import (
	"os"
	"testing"
)

func TestLoadAutomationDefaults(t *testing.T) {
	for _, key := range []string{
		"AUTOMATION_ENABLED", "SCRAPE_INTERVAL_MINUTES", "MAX_CONCURRENT_DOWNLOADS",
		"TAMILMV_BASE_URL", "TAMILMV_LATEST_URL", "DEBRID_API_URL",
	} {
		os.Unsetenv(key)
	}

	cfg, err := LoadAutomation()
	if err != nil {
		t.Fatalf("LoadAutomation() error = %v", err)
	}

	if cfg.Enabled {
		t.Error("Enabled = true, want false by default")
	}
	if cfg.ScrapeIntervalMinutes != 30 {
		t.Errorf("ScrapeIntervalMinutes = %d, want 30", cfg.ScrapeIntervalMinutes)
	}
	if cfg.MaxConcurrentDownloads != 1 {
		t.Errorf("MaxConcurrentDownloads = %d, want 1", cfg.MaxConcurrentDownloads)
	}
	if !cfg.RetryFailed || !cfg.NotifyAdmin {
		t.Errorf("RetryFailed = %v, NotifyAdmin = %v, want both true", cfg.RetryFailed, cfg.NotifyAdmin)
	}
	if cfg.DebridAPIURL != "https://debrid-link.com/api/v2" {
		t.Errorf("DebridAPIURL = %q, want debrid-link default", cfg.DebridAPIURL)
	}

	want := "https://tamilmv.re/index.php?/forums/forum/8-tamil-dubbed-movies/"
	if cfg.TamilMVLatestURL != want {
		t.Errorf("TamilMVLatestURL = %q, want %q", cfg.TamilMVLatestURL, want)
	}
}

func TestLoadAutomationDerivedLatestURL(t *testing.T) {
	os.Setenv("TAMILMV_BASE_URL", "https://mirror.example")
	os.Unsetenv("TAMILMV_LATEST_URL")
	defer os.Unsetenv("TAMILMV_BASE_URL")

	cfg, err := LoadAutomation()
	if err != nil {
		t.Fatalf("LoadAutomation() error = %v", err)
	}

	want := "https://mirror.example/index.php?/forums/forum/8-tamil-dubbed-movies/"
	if cfg.TamilMVLatestURL != want {
		t.Errorf("TamilMVLatestURL = %q, want %q", cfg.TamilMVLatestURL, want)
	}
}

func TestLoadAutomationExplicitLatestURL(t *testing.T) {
	os.Setenv("TAMILMV_LATEST_URL", "https://mirror.example/forum/movies/")
	defer os.Unsetenv("TAMILMV_LATEST_URL")

	cfg, err := LoadAutomation()
	if err != nil {
		t.Fatalf("LoadAutomation() error = %v", err)
	}

	if cfg.TamilMVLatestURL != "https://mirror.example/forum/movies/" {
		t.Errorf("TamilMVLatestURL = %q, want the explicit value", cfg.TamilMVLatestURL)
	}
}

func TestLoadAutomationOverrides(t *testing.T) {
	os.Setenv("AUTOMATION_ENABLED", "true")
	os.Setenv("SCRAPE_INTERVAL_MINUTES", "5")
	os.Setenv("MAX_CONCURRENT_DOWNLOADS", "2")
	defer func() {
		os.Unsetenv("AUTOMATION_ENABLED")
		os.Unsetenv("SCRAPE_INTERVAL_MINUTES")
		os.Unsetenv("MAX_CONCURRENT_DOWNLOADS")
	}()

	cfg, err := LoadAutomation()
	if err != nil {
		t.Fatalf("LoadAutomation() error = %v", err)
	}

	if !cfg.Enabled {
		t.Error("Enabled = false, want true")
	}
	if cfg.ScrapeIntervalMinutes != 5 {
		t.Errorf("ScrapeIntervalMinutes = %d, want 5", cfg.ScrapeIntervalMinutes)
	}
	if cfg.MaxConcurrentDownloads != 2 {
		t.Errorf("MaxConcurrentDownloads = %d, want 2", cfg.MaxConcurrentDownloads)
	}
}
