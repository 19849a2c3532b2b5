package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VerificationSettings is the single admin-tunable document that controls
// the shortlink gate. Stored under a fixed _id in the settings collection.
type VerificationSettings struct {
	Enabled      bool      `bson:"enabled" json:"enabled"`
	FreeLimit    int       `bson:"free_limit" json:"free_limit"`
	ValidMinutes int       `bson:"valid_minutes" json:"valid_minutes"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// VerificationState tracks one visitor session for the current IST day.
// Day rollover resets FreeUsed and clears VerifiedUntil.
type VerificationState struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID     string             `bson:"session_id" json:"session_id"`
	Day           string             `bson:"day" json:"day"`
	FreeUsed      int                `bson:"free_used" json:"free_used"`
	VerifiedUntil *time.Time         `bson:"verified_until,omitempty" json:"verified_until,omitempty"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// VerifyToken is a one-time token minted for a verification round trip.
// Consuming it deletes the document.
type VerifyToken struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Token     string             `bson:"token" json:"token"`
	SessionID string             `bson:"session_id" json:"session_id"`
	Next      string             `bson:"next" json:"next"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
