package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Submission statuses.
const (
	SubmissionStatusPending  = "pending"
	SubmissionStatusApproved = "approved"
	SubmissionStatusRejected = "rejected"
)

// Submission is a community-submitted catalog entry waiting for review.
// Approving one copies its payload into the movies collection.
type Submission struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type          string             `bson:"type" json:"type"`
	Title         string             `bson:"title" json:"title"`
	Year          *int               `bson:"year,omitempty" json:"year,omitempty"`
	Language      string             `bson:"language,omitempty" json:"language,omitempty"`
	Languages     []string           `bson:"languages,omitempty" json:"languages,omitempty"`
	IsMultiDubbed bool               `bson:"is_multi_dubbed" json:"is_multi_dubbed"`
	Quality       string             `bson:"quality,omitempty" json:"quality,omitempty"`
	Category      string             `bson:"category,omitempty" json:"category,omitempty"`
	WatchURL      string             `bson:"watch_url,omitempty" json:"watch_url,omitempty"`
	DownloadURL   string             `bson:"download_url,omitempty" json:"download_url,omitempty"`
	Qualities     map[string]string  `bson:"qualities,omitempty" json:"qualities,omitempty"`
	PosterPath    string             `bson:"poster_path,omitempty" json:"poster_path,omitempty"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	SubmittedBy   string             `bson:"submitted_by,omitempty" json:"submitted_by,omitempty"`
	SubmittedAt   time.Time          `bson:"submitted_at" json:"submitted_at"`
	Status        string             `bson:"status" json:"status"`
	ReviewedAt    *time.Time         `bson:"reviewed_at,omitempty" json:"reviewed_at,omitempty"`
}

// AsMovie builds the catalog entry created when the submission is approved.
func (s *Submission) AsMovie() Movie {
	return Movie{
		Title:         s.Title,
		Year:          s.Year,
		Language:      s.Language,
		Languages:     s.Languages,
		IsMultiDubbed: s.IsMultiDubbed,
		Quality:       s.Quality,
		Category:      s.Category,
		WatchURL:      s.WatchURL,
		DownloadURL:   s.DownloadURL,
		Qualities:     s.Qualities,
		PosterPath:    s.PosterPath,
		Description:   s.Description,
		CreatedAt:     s.SubmittedAt,
	}
}
