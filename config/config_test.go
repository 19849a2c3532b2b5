package config

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"
)

// recordingHandler captures log records so tests can count emitted warnings.
type recordingHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r)
	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func (h *recordingHandler) warnings() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var msgs []string
	for _, r := range h.records {
		if r.Level == slog.LevelWarn {
			msgs = append(msgs, r.Message)
		}
	}
	return msgs
}

func captureLog(t *testing.T) *recordingHandler {
	t.Helper()
	rec := &recordingHandler{}
	prev := slog.Default()
	slog.SetDefault(slog.New(rec))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return rec
}

func clearCredentialEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"API_ID", "API_HASH", "BOT_TOKEN"} {
		os.Unsetenv(key)
	}
}

func TestResolveCredentials(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		want     Credentials
		wantWarn bool
	}{
		{
			name: "all credentials set",
			env: map[string]string{
				"API_ID":    "12345",
				"API_HASH":  "abcde",
				"BOT_TOKEN": "xyz",
			},
			want:     Credentials{APIID: 12345, APIHash: "abcde", BotToken: "xyz"},
			wantWarn: false,
		},
		{
			name:     "nothing set",
			env:      nil,
			want:     Credentials{APIID: 0, APIHash: "", BotToken: ""},
			wantWarn: true,
		},
		{
			name: "API_ID unset",
			env: map[string]string{
				"API_HASH":  "abcde",
				"BOT_TOKEN": "xyz",
			},
			want:     Credentials{APIID: 0, APIHash: "abcde", BotToken: "xyz"},
			wantWarn: true,
		},
		{
			name: "API_HASH unset",
			env: map[string]string{
				"API_ID":    "12345",
				"BOT_TOKEN": "xyz",
			},
			want:     Credentials{APIID: 12345, APIHash: "", BotToken: "xyz"},
			wantWarn: true,
		},
		{
			name: "BOT_TOKEN unset",
			env: map[string]string{
				"API_ID":   "12345",
				"API_HASH": "abcde",
			},
			want:     Credentials{APIID: 12345, APIHash: "abcde", BotToken: ""},
			wantWarn: true,
		},
		{
			name: "API_ID literal zero counts as missing",
			env: map[string]string{
				"API_ID":    "0",
				"API_HASH":  "abcde",
				"BOT_TOKEN": "xyz",
			},
			want:     Credentials{APIID: 0, APIHash: "abcde", BotToken: "xyz"},
			wantWarn: true,
		},
		{
			name: "API_HASH set but empty counts as missing",
			env: map[string]string{
				"API_ID":    "12345",
				"API_HASH":  "",
				"BOT_TOKEN": "xyz",
			},
			want:     Credentials{APIID: 12345, APIHash: "", BotToken: "xyz"},
			wantWarn: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearCredentialEnv(t)
			for k, v := range tt.env {
				os.Setenv(k, v)
			}
			defer clearCredentialEnv(t)

			rec := captureLog(t)

			got, err := ResolveCredentials()
			if err != nil {
				t.Fatalf("ResolveCredentials() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveCredentials() = %+v, want %+v", got, tt.want)
			}
			if got.Valid() == tt.wantWarn {
				t.Errorf("Valid() = %v, wantWarn %v", got.Valid(), tt.wantWarn)
			}

			warns := rec.warnings()
			if tt.wantWarn {
				if len(warns) != 1 {
					t.Fatalf("got %d warnings, want exactly 1", len(warns))
				}
				if !strings.Contains(warns[0], "API_ID, API_HASH and BOT_TOKEN") {
					t.Errorf("warning %q does not name the required variables", warns[0])
				}
			} else if len(warns) != 0 {
				t.Errorf("got %d warnings, want 0", len(warns))
			}
		})
	}
}

func TestResolveCredentialsIdempotent(t *testing.T) {
	clearCredentialEnv(t)
	os.Setenv("API_ID", "12345")
	os.Setenv("API_HASH", "abcde")
	os.Setenv("BOT_TOKEN", "xyz")
	defer clearCredentialEnv(t)

	rec := captureLog(t)

	first, err := ResolveCredentials()
	if err != nil {
		t.Fatalf("first ResolveCredentials() error = %v", err)
	}
	second, err := ResolveCredentials()
	if err != nil {
		t.Fatalf("second ResolveCredentials() error = %v", err)
	}

	if first != second {
		t.Errorf("resolved sets differ: %+v vs %+v", first, second)
	}
	if warns := rec.warnings(); len(warns) != 0 {
		t.Errorf("got %d warnings, want 0", len(warns))
	}
}

func TestResolveCredentialsWarnsOncePerCall(t *testing.T) {
	clearCredentialEnv(t)
	defer clearCredentialEnv(t)

	rec := captureLog(t)

	if _, err := ResolveCredentials(); err != nil {
		t.Fatalf("ResolveCredentials() error = %v", err)
	}
	if _, err := ResolveCredentials(); err != nil {
		t.Fatalf("ResolveCredentials() error = %v", err)
	}

	if warns := rec.warnings(); len(warns) != 2 {
		t.Errorf("got %d warnings across two calls, want 2", len(warns))
	}
}

func TestResolveCredentialsMalformedAPIID(t *testing.T) {
	tests := []struct {
		name  string
		apiID string
	}{
		{name: "alphabetic", apiID: "abc"},
		{name: "decimal", apiID: "12.5"},
		{name: "trailing garbage", apiID: "12345x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearCredentialEnv(t)
			os.Setenv("API_ID", tt.apiID)
			os.Setenv("API_HASH", "abcde")
			os.Setenv("BOT_TOKEN", "xyz")
			defer clearCredentialEnv(t)

			captureLog(t)

			_, err := ResolveCredentials()
			if err == nil {
				t.Fatal("ResolveCredentials() error = nil, want configuration error")
			}
			if !strings.Contains(err.Error(), "API_ID") {
				t.Errorf("error %q does not name API_ID", err)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearCredentialEnv(t)
	for _, key := range []string{"MONGO_URI", "DB_NAME", "ADMIN_PASSWORD", "BOT_USERNAME", "PORT"} {
		os.Unsetenv(key)
	}
	defer clearCredentialEnv(t)

	captureLog(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.DatabaseName != "sr_movies" {
		t.Errorf("DatabaseName = %q, want %q", cfg.DatabaseName, "sr_movies")
	}
	if cfg.AdminPassword != "admin123" {
		t.Errorf("AdminPassword = %q, want %q", cfg.AdminPassword, "admin123")
	}
	if cfg.BotUsername != "Movie_magic_club_bot" {
		t.Errorf("BotUsername = %q, want %q", cfg.BotUsername, "Movie_magic_club_bot")
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		want         string
	}{
		{
			name:         "env var set",
			key:          "TEST_VAR",
			defaultValue: "default",
			envValue:     "custom",
			want:         "custom",
		},
		{
			name:         "env var not set",
			key:          "TEST_VAR_MISSING",
			defaultValue: "default",
			envValue:     "",
			want:         "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			}

			got := getEnv(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}
