package services

import (
	"testing"

	"movie-magic-club/models"
)

func TestParseSizeGB(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"plain gigabytes", "2.9GB", 2.9},
		{"spaced gigabytes", "1.4 GB", 1.4},
		{"megabytes convert", "512MB", 0.5},
		{"lowercase unit", "3.2gb", 3.2},
		{"embedded in release name", "Amaran (2024) Tamil HQ HDRip - 1080p - x264 - 2.9GB - ESub", 2.9},
		{"dotted release name", "Amaran.2024.Tamil.HQ.HDRip.1080p.x264.2.9GB", 2.9},
		{"no size", "Amaran (2024) Tamil HQ HDRip", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseSizeGB(tt.text); got != tt.want {
				t.Errorf("ParseSizeGB(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestBlacklisted(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  bool
	}{
		{"cam rip", "Movie (2024) Tamil CAM - 720p", true},
		{"telesync", "Movie (2024) Telesync - 1080p", true},
		{"low res", "Movie (2024) HDRip - 480p - 700MB", true},
		{"oversized 4k", "Movie (2024) 2160p WEB-DL", true},
		{"clean web release", "Movie (2024) Tamil HQ HDRip - 1080p - 2.4GB", false},
		{"lowercase tc inside a word is fine", "Dutch Movie (2024) 1080p WEB-DL", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Blacklisted(tt.title); got != tt.want {
				t.Errorf("Blacklisted(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}

func TestSelectBestTorrent(t *testing.T) {
	tests := []struct {
		name     string
		torrents []models.Torrent
		want     string // title of expected pick, "" for none
	}{
		{
			name: "optimal window wins over big encode",
			torrents: []models.Torrent{
				{Title: "Movie (2024) Tamil HDRip - 1080p - x264 - 9.8GB", SizeGB: 9.8},
				{Title: "Movie (2024) Tamil HQ HDRip - 1080p - x264 - 2.4GB", SizeGB: 2.4},
			},
			want: "Movie (2024) Tamil HQ HDRip - 1080p - x264 - 2.4GB",
		},
		{
			name: "falls back to wide 1080p window",
			torrents: []models.Torrent{
				{Title: "Movie (2024) Tamil HDRip - 1080p - x264 - 9.8GB", SizeGB: 9.8},
			},
			want: "Movie (2024) Tamil HDRip - 1080p - x264 - 9.8GB",
		},
		{
			name: "hq 720p as last resort",
			torrents: []models.Torrent{
				{Title: "Movie (2024) Tamil HQ HDRip - 720p - x264 - 1.4GB", SizeGB: 1.4},
			},
			want: "Movie (2024) Tamil HQ HDRip - 720p - x264 - 1.4GB",
		},
		{
			name: "plain 720p is not picked",
			torrents: []models.Torrent{
				{Title: "Movie (2024) Tamil HDRip - 720p - x264 - 1.4GB", SizeGB: 1.4},
			},
			want: "",
		},
		{
			name: "cam rip is never picked",
			torrents: []models.Torrent{
				{Title: "Movie (2024) Tamil CAM - 1080p - 2.0GB", SizeGB: 2.0},
			},
			want: "",
		},
		{
			name: "preferred source breaks the tie",
			torrents: []models.Torrent{
				{Title: "Movie (2024) Tamil HDRip - 1080p - x264 - 2.1GB", SizeGB: 2.1},
				{Title: "Movie (2024) Tamil WEB-DL - 1080p - x264 - 2.2GB", SizeGB: 2.2},
			},
			want: "Movie (2024) Tamil WEB-DL - 1080p - x264 - 2.2GB",
		},
		{
			name:     "empty list",
			torrents: nil,
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectBestTorrent(tt.torrents)
			if tt.want == "" {
				if got != nil {
					t.Errorf("SelectBestTorrent() = %q, want nil", got.Title)
				}
				return
			}
			if got == nil {
				t.Fatalf("SelectBestTorrent() = nil, want %q", tt.want)
			}
			if got.Title != tt.want {
				t.Errorf("SelectBestTorrent() = %q, want %q", got.Title, tt.want)
			}
		})
	}
}

func TestParseRelease(t *testing.T) {
	title, year, resolution := ParseRelease("Amaran (2024) Tamil HQ HDRip - 1080p - x264 - DD5.1 - 2.9GB")
	if title == "" {
		t.Fatal("ParseRelease() returned empty title")
	}
	if year == nil || *year != 2024 {
		t.Errorf("ParseRelease() year = %v, want 2024", year)
	}
	if resolution != "1080p" {
		t.Errorf("ParseRelease() resolution = %q, want %q", resolution, "1080p")
	}
}
