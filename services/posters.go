package services

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var posterClient = &http.Client{Timeout: 30 * time.Second}

// posterName builds a collision-free filename keeping the upload's extension.
func posterName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	u := uuid.New()
	return hex.EncodeToString(u[:]) + ext
}

// SavePoster stores an uploaded poster under posterDir and returns the path
// recorded on the movie, relative to the static mount.
func SavePoster(posterDir, originalName string, r io.Reader) (string, error) {
	if originalName == "" {
		return "", nil
	}
	if err := os.MkdirAll(posterDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create poster directory: %w", err)
	}

	name := posterName(originalName)
	dst, err := os.Create(filepath.Join(posterDir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create poster file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", fmt.Errorf("failed to write poster file: %w", err)
	}
	return "posters/" + name, nil
}

// DownloadPoster fetches a poster image into posterDir and returns the same
// relative path shape as SavePoster. Used by the automation pipeline.
func DownloadPoster(ctx context.Context, imageURL, posterDir string) (string, error) {
	if imageURL == "" {
		return "", nil
	}

	req, err := http.NewRequestWithContext(ctx, "GET", imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build poster request: %w", err)
	}

	resp, err := posterClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download poster: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("poster download returned %s", resp.Status)
	}

	name := imageURL
	if parsed, err := url.Parse(imageURL); err == nil {
		name = parsed.Path
	}
	if filepath.Ext(name) == "" {
		name += ".jpg"
	}

	return SavePoster(posterDir, name, resp.Body)
}
