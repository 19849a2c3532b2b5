package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var shortlinkClient = &http.Client{Timeout: 10 * time.Second}

type shortlinkResponse struct {
	Status       string `json:"status"`
	ShortenedURL string `json:"shortenedUrl"`
	Message      string `json:"message"`
}

// Shorten turns a destination URL into a monetized short link. Any failure
// falls back to the destination itself so the verify flow keeps working.
func Shorten(ctx context.Context, apiBase, apiKey, destination string) string {
	if apiBase == "" || apiKey == "" {
		return destination
	}

	endpoint := fmt.Sprintf("%s/api?api=%s&url=%s",
		strings.TrimRight(apiBase, "/"),
		url.QueryEscape(apiKey),
		url.QueryEscape(destination),
	)

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		slog.Error("Failed to build shortlink request", "error", err)
		return destination
	}

	resp, err := shortlinkClient.Do(req)
	if err != nil {
		slog.Error("Shortlink request failed", "error", err)
		return destination
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		slog.Error("Shortlink service returned an error", "status", resp.StatusCode, "body", string(body))
		return destination
	}

	var parsed shortlinkResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		slog.Error("Failed to decode shortlink response", "error", err)
		return destination
	}
	if parsed.Status != "success" || parsed.ShortenedURL == "" {
		slog.Warn("Shortlink service rejected the URL", "status", parsed.Status, "message", parsed.Message)
		return destination
	}
	return parsed.ShortenedURL
}
