package models

import (
	"testing"
	"time"
)

func TestSubmissionAsMovie(t *testing.T) {
	year := 2024
	submitted := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	sub := Submission{
		Title:         "Test Movie",
		Year:          &year,
		Language:      "Tamil",
		Languages:     []string{"Tamil", "Telugu"},
		IsMultiDubbed: true,
		Quality:       `HD \ 1080P`,
		Category:      "Action",
		WatchURL:      "https://watch.example/m",
		DownloadURL:   "https://dl.example/m",
		Description:   "A test entry",
		SubmittedBy:   "someone",
		SubmittedAt:   submitted,
		Status:        SubmissionStatusPending,
	}

	movie := sub.AsMovie()

	if movie.Title != sub.Title {
		t.Errorf("AsMovie().Title = %q, want %q", movie.Title, sub.Title)
	}
	if movie.Year == nil || *movie.Year != year {
		t.Errorf("AsMovie().Year = %v, want %d", movie.Year, year)
	}
	if !movie.IsMultiDubbed {
		t.Error("AsMovie().IsMultiDubbed = false, want true")
	}
	if movie.WatchURL != sub.WatchURL || movie.DownloadURL != sub.DownloadURL {
		t.Errorf("AsMovie() links = %q/%q, want %q/%q", movie.WatchURL, movie.DownloadURL, sub.WatchURL, sub.DownloadURL)
	}
	if !movie.CreatedAt.Equal(submitted) {
		t.Errorf("AsMovie().CreatedAt = %v, want submission time %v", movie.CreatedAt, submitted)
	}
	if movie.AutoAdded {
		t.Error("AsMovie().AutoAdded = true, want false")
	}
}
