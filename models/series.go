package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Series is a show-level catalog entry. Seasons and episodes live in their
// own collections keyed back to the series; old documents that still embed a
// seasons array are converted by the migration service.
type Series struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Year        *int               `bson:"year,omitempty" json:"year,omitempty"`
	Language    string             `bson:"language" json:"language"`
	Languages   []string           `bson:"languages,omitempty" json:"languages,omitempty"`
	Quality     string             `bson:"quality" json:"quality"`
	Category    string             `bson:"category" json:"category"`
	PosterPath  string             `bson:"poster_path,omitempty" json:"poster_path,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

type Season struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SeriesID  primitive.ObjectID `bson:"series_id" json:"series_id"`
	Number    int                `bson:"number" json:"number"`
	Title     string             `bson:"title" json:"title"`
	Year      *int               `bson:"year,omitempty" json:"year,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Episode keeps both parent ids so the episode page can resolve its season
// and series with two lookups.
type Episode struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SeriesID    primitive.ObjectID `bson:"series_id" json:"series_id"`
	SeasonID    primitive.ObjectID `bson:"season_id" json:"season_id"`
	Number      int                `bson:"number" json:"number"`
	Title       string             `bson:"title" json:"title"`
	WatchURL    string             `bson:"watch_url,omitempty" json:"watch_url,omitempty"`
	DownloadURL string             `bson:"download_url,omitempty" json:"download_url,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// SeasonLabel falls back to "Season N" when no title was entered.
func (s *Season) SeasonLabel() string {
	if s.Title != "" {
		return s.Title
	}
	return fmt.Sprintf("Season %d", s.Number)
}

// EpisodeLabel falls back to "Episode N" when no title was entered.
func (e *Episode) EpisodeLabel() string {
	if e.Title != "" {
		return e.Title
	}
	return fmt.Sprintf("Episode %d", e.Number)
}

// SeasonView bundles a season with its episodes for the detail page.
type SeasonView struct {
	Season   Season
	Episodes []Episode
}
