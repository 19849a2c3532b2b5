package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const debridPollInterval = 30 * time.Second

// torrentID tolerates both string and numeric ids in seedbox responses.
type torrentID string

func (t *torrentID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = torrentID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("torrent id is neither string nor number: %s", string(data))
	}
	*t = torrentID(n.String())
	return nil
}

// DebridStatus is one torrent's state in the seedbox.
type DebridStatus struct {
	Status   string
	Progress float64
	Name     string
	Size     int64
}

// DebridClient talks to the Debrid-Link seedbox API.
type DebridClient struct {
	apiURL string
	apiKey string
	client *http.Client
}

func NewDebridClient(apiURL, apiKey string) *DebridClient {
	return &DebridClient{
		apiURL: strings.TrimRight(apiURL, "/"),
		apiKey: apiKey,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (d *DebridClient) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Authorization", "Bearer "+d.apiKey)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("seedbox returned %s: %s", resp.Status, string(body))
	}
	return body, nil
}

// AddMagnet queues a magnet link and returns the seedbox torrent id.
func (d *DebridClient) AddMagnet(ctx context.Context, magnet string) (string, error) {
	form := url.Values{}
	form.Set("url", magnet)

	req, err := http.NewRequestWithContext(ctx, "POST", d.apiURL+"/seedbox/add", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build seedbox add request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := d.do(req)
	if err != nil {
		return "", fmt.Errorf("failed to add magnet: %w", err)
	}

	var parsed struct {
		Success bool `json:"success"`
		Value   struct {
			ID torrentID `json:"id"`
		} `json:"value"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode seedbox add response: %w", err)
	}
	if !parsed.Success || parsed.Value.ID == "" {
		return "", fmt.Errorf("seedbox rejected magnet: %s", string(body))
	}
	return string(parsed.Value.ID), nil
}

// TorrentStatus finds the torrent in the seedbox list. A torrent missing
// from the list reports status "error", matching how the seedbox drops
// failed items.
func (d *DebridClient) TorrentStatus(ctx context.Context, id string) (DebridStatus, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", d.apiURL+"/seedbox/list", nil)
	if err != nil {
		return DebridStatus{}, fmt.Errorf("failed to build seedbox list request: %w", err)
	}

	body, err := d.do(req)
	if err != nil {
		return DebridStatus{}, fmt.Errorf("failed to list seedbox: %w", err)
	}

	var parsed struct {
		Value []struct {
			ID              torrentID `json:"id"`
			Status          string    `json:"status"`
			DownloadPercent float64   `json:"downloadPercent"`
			Name            string    `json:"name"`
			TotalSize       int64     `json:"totalSize"`
		} `json:"value"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return DebridStatus{}, fmt.Errorf("failed to decode seedbox list: %w", err)
	}

	for _, torrent := range parsed.Value {
		if string(torrent.ID) == id {
			return DebridStatus{
				Status:   torrent.Status,
				Progress: torrent.DownloadPercent,
				Name:     torrent.Name,
				Size:     torrent.TotalSize,
			}, nil
		}
	}
	return DebridStatus{Status: "error"}, nil
}

// DownloadLink returns the direct link of the largest file in a completed
// torrent, which is the movie itself rather than samples or subtitles.
func (d *DebridClient) DownloadLink(ctx context.Context, id string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/seedbox/%s/files", d.apiURL, id), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build seedbox files request: %w", err)
	}

	body, err := d.do(req)
	if err != nil {
		return "", fmt.Errorf("failed to list torrent files: %w", err)
	}

	var parsed struct {
		Value []struct {
			Size        int64  `json:"size"`
			DownloadURL string `json:"downloadUrl"`
		} `json:"value"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode torrent files: %w", err)
	}
	if len(parsed.Value) == 0 {
		return "", fmt.Errorf("torrent %s has no files", id)
	}

	largest := parsed.Value[0]
	for _, file := range parsed.Value[1:] {
		if file.Size > largest.Size {
			largest = file
		}
	}
	if largest.DownloadURL == "" {
		return "", fmt.Errorf("torrent %s has no download url", id)
	}
	return largest.DownloadURL, nil
}

// WaitForDownload polls the seedbox until the torrent completes, then
// resolves its direct link. A torrent that errors out fails immediately.
func (d *DebridClient) WaitForDownload(ctx context.Context, id string, maxWait time.Duration) (string, error) {
	deadline := time.Now().Add(maxWait)

	for {
		status, err := d.TorrentStatus(ctx, id)
		if err != nil {
			return "", err
		}

		switch status.Status {
		case "downloaded":
			return d.DownloadLink(ctx, id)
		case "error":
			return "", fmt.Errorf("torrent %s failed in seedbox", id)
		}

		if time.Now().After(deadline) {
			return "", fmt.Errorf("torrent %s timed out after %s", id, maxWait)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(debridPollInterval):
		}
	}
}
