package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Pipeline job statuses, in the order a job moves through them.
const (
	JobStatusPending     = "pending"
	JobStatusDebridAdd   = "adding_to_debrid"
	JobStatusDownloading = "downloading"
	JobStatusUploading   = "uploading_to_ppd"
	JobStatusSaving      = "saving"
	JobStatusComplete    = "complete"
	JobStatusFailed      = "failed"
)

// Release is a movie topic scraped from the forum index.
type Release struct {
	Title    string `json:"title"`
	Year     *int   `json:"year,omitempty"`
	TopicURL string `json:"topic_url"`
}

// Torrent is one candidate found inside a topic page.
type Torrent struct {
	Title  string  `json:"title"`
	Magnet string  `json:"magnet"`
	SizeGB float64 `json:"size_gb"`
}

// AutomationJob is the persisted pipeline state for one release, so a
// restart does not reprocess finished work.
type AutomationJob struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Year        *int               `bson:"year,omitempty" json:"year,omitempty"`
	Magnet      string             `bson:"magnet,omitempty" json:"-"`
	Status      string             `bson:"status" json:"status"`
	Quality     string             `bson:"quality,omitempty" json:"quality,omitempty"`
	WatchURL    string             `bson:"watch_url,omitempty" json:"watch_url,omitempty"`
	DownloadURL string             `bson:"download_url,omitempty" json:"download_url,omitempty"`
	MovieID     string             `bson:"movie_id,omitempty" json:"movie_id,omitempty"`
	Error       string             `bson:"error,omitempty" json:"error,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// ScanSummary reports one automation cycle.
type ScanSummary struct {
	Scanned int      `json:"scanned"`
	Added   int      `json:"added"`
	Skipped int      `json:"skipped"`
	Failed  int      `json:"failed"`
	Movies  []string `json:"movies,omitempty"`
}

// JobEvent is pushed to admin websocket clients as a job changes state.
type JobEvent struct {
	Type    string    `json:"type"`
	Title   string    `json:"title"`
	Status  string    `json:"status"`
	Detail  string    `json:"detail,omitempty"`
	MovieID string    `json:"movie_id,omitempty"`
	Time    time.Time `json:"time"`
}
