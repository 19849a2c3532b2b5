package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
)

// Fallbacks used when the verification settings document is missing.
const (
	VerificationDefaultEnabled      = true
	VerificationDefaultFreeLimit    = 3
	VerificationDefaultValidMinutes = 1440 // 24 hours
)

// Credentials holds the Telegram API credential set. It is resolved once at
// startup and passed to whatever needs it; nothing reads these variables
// anywhere else in the codebase.
type Credentials struct {
	APIID    int
	APIHash  string
	BotToken string
}

// Valid reports whether every credential is present. A zero API_ID, an empty
// API_HASH and an empty BOT_TOKEN all count as missing.
func (c Credentials) Valid() bool {
	return c.APIID != 0 && c.APIHash != "" && c.BotToken != ""
}

// ResolveCredentials reads API_ID, API_HASH and BOT_TOKEN from the
// environment, substituting 0 / "" for unset values. When any credential is
// missing it logs a single warning and still returns the set, so the web
// service can run without the bot. The only hard failure is a non-numeric
// API_ID, which is reported as a configuration error instead of being
// carried forward as a bad identifier.
func ResolveCredentials() (Credentials, error) {
	raw := getEnv("API_ID", "0")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return Credentials{}, fmt.Errorf("configuration error: API_ID %q is not a number: %w", raw, err)
	}

	creds := Credentials{
		APIID:    id,
		APIHash:  getEnv("API_HASH", ""),
		BotToken: getEnv("BOT_TOKEN", ""),
	}

	if !creds.Valid() {
		slog.Warn("API_ID, API_HASH and BOT_TOKEN must be set")
	}

	return creds, nil
}

type Config struct {
	Credentials Credentials

	// MongoDB configuration
	MongoURI     string
	DatabaseName string

	// Admin configuration
	AdminPassword string

	// Shortlink service for the verification gate
	ShortlinkAPI string
	ShortlinkURL string

	// Telegram bot username, without @
	BotUsername string

	// Server configuration
	Port      string
	PosterDir string
}

func LoadConfig() (*Config, error) {
	creds, err := ResolveCredentials()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Credentials:   creds,
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DatabaseName:  getEnv("DB_NAME", "sr_movies"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
		ShortlinkAPI:  getEnv("SHORTLINK_API", ""),
		ShortlinkURL:  getEnv("SHORTLINK_URL", ""),
		BotUsername:   getEnv("BOT_USERNAME", "Movie_magic_club_bot"),
		Port:          getEnv("PORT", "8080"),
		PosterDir:     getEnv("POSTER_DIR", "static/posters"),
	}

	if cfg.ShortlinkAPI == "" || cfg.ShortlinkURL == "" {
		slog.Info("Shortlink service not configured, verification links will not be monetized")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
