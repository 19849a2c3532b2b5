package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/melbahja/got"
)

// PPDResult carries the hosted links produced by a remote upload.
type PPDResult struct {
	FileID      string
	WatchURL    string
	DownloadURL string
}

// PPDClient talks to the pay-per-download host's remote upload API.
type PPDClient struct {
	apiURL string
	apiKey string
	client *http.Client
}

func NewPPDClient(apiURL, apiKey string) *PPDClient {
	return &PPDClient{
		apiURL: strings.TrimRight(apiURL, "/"),
		apiKey: apiKey,
		// Remote uploads are queued server side but the call can still be slow.
		client: &http.Client{Timeout: 5 * time.Minute},
	}
}

// RemoteUpload asks the host to pull a direct link and returns the watch and
// download pages for the hosted file.
func (p *PPDClient) RemoteUpload(ctx context.Context, directLink, filename string) (*PPDResult, error) {
	form := url.Values{}
	form.Set("api_key", p.apiKey)
	form.Set("url", directLink)
	form.Set("filename", filename)

	req, err := http.NewRequestWithContext(ctx, "POST", p.apiURL+"/remote_upload", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build remote upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote upload failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read remote upload response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remote upload returned %s: %s", resp.Status, string(body))
	}

	var parsed struct {
		Success bool   `json:"success"`
		FileID  string `json:"file_id"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode remote upload response: %w", err)
	}
	if !parsed.Success || parsed.FileID == "" {
		return nil, fmt.Errorf("remote upload rejected: %s", string(body))
	}

	return &PPDResult{
		FileID:      parsed.FileID,
		WatchURL:    fmt.Sprintf("%s/watch/%s", p.apiURL, parsed.FileID),
		DownloadURL: fmt.Sprintf("%s/download/%s", p.apiURL, parsed.FileID),
	}, nil
}

// UploadStatus reports the progress of a queued remote upload.
func (p *PPDClient) UploadStatus(ctx context.Context, fileID string) (string, float64, error) {
	endpoint := fmt.Sprintf("%s/file/%s/status?api_key=%s", p.apiURL, fileID, url.QueryEscape(p.apiKey))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return "", 0, fmt.Errorf("failed to build upload status request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("upload status check failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, fmt.Errorf("failed to read upload status: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("upload status returned %s: %s", resp.Status, string(body))
	}

	var parsed struct {
		Status   string  `json:"status"`
		Progress float64 `json:"progress"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", 0, fmt.Errorf("failed to decode upload status: %w", err)
	}
	return parsed.Status, parsed.Progress, nil
}

// DownloadToDisk pulls a direct link into the download directory for hosts
// without a remote upload API. Returns the local path of the file.
func DownloadToDisk(ctx context.Context, directLink, downloadDir, filename string) (string, error) {
	if err := os.MkdirAll(downloadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	dest := filepath.Join(downloadDir, filename)

	dl := got.NewDownload(ctx, directLink, dest)
	if err := dl.Init(); err != nil {
		return "", fmt.Errorf("failed to init download: %w", err)
	}
	if err := dl.Start(); err != nil {
		return "", fmt.Errorf("failed to download file: %w", err)
	}
	return dest, nil
}
