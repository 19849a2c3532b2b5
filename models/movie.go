package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Movie is a single catalog entry. Language holds the primary audio
// language; Languages carries every audio track for multi-dubbed releases.
type Movie struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Year          *int               `bson:"year,omitempty" json:"year,omitempty"`
	Language      string             `bson:"language" json:"language"`
	Languages     []string           `bson:"languages,omitempty" json:"languages,omitempty"`
	IsMultiDubbed bool               `bson:"is_multi_dubbed" json:"is_multi_dubbed"`
	Quality       string             `bson:"quality" json:"quality"`
	Category      string             `bson:"category" json:"category"`
	WatchURL      string             `bson:"watch_url" json:"watch_url"`
	DownloadURL   string             `bson:"download_url,omitempty" json:"download_url,omitempty"`
	Qualities     map[string]string  `bson:"qualities,omitempty" json:"qualities,omitempty"`
	Subtitles     string             `bson:"subtitles,omitempty" json:"subtitles,omitempty"`
	PosterPath    string             `bson:"poster_path,omitempty" json:"poster_path,omitempty"`
	PosterURL     string             `bson:"poster_url,omitempty" json:"poster_url,omitempty"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Rating        *float64           `bson:"rating,omitempty" json:"rating,omitempty"`
	AutoAdded     bool               `bson:"auto_added,omitempty" json:"auto_added,omitempty"`
	Trending      bool               `bson:"trending,omitempty" json:"trending,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}

// Audio is the audio-track line shown on detail pages.
func (m *Movie) Audio() string {
	if len(m.Languages) > 0 {
		return strings.Join(m.Languages, ", ")
	}
	if m.Language != "" {
		return m.Language
	}
	return "Tamil"
}

// MultiAudio reports whether the entry carries more than one audio track.
func (m *Movie) MultiAudio() bool {
	return m.IsMultiDubbed || len(m.Languages) > 1
}

// Poster returns a usable image src, preferring the uploaded file over a
// remote URL. Uploaded posters live under the static mount.
func (m *Movie) Poster() string {
	if m.PosterPath != "" {
		return "/static/" + m.PosterPath
	}
	return m.PosterURL
}
