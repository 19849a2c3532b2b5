package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Support message statuses.
const (
	SupportStatusPending = "pending"
	SupportStatusReplied = "replied"
	SupportStatusClosed  = "closed"
)

// SupportMessage is a visitor message from the public support form.
type SupportMessage struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	Email            string             `bson:"email,omitempty" json:"email,omitempty"`
	TelegramUsername string             `bson:"telegram_username,omitempty" json:"telegram_username,omitempty"`
	Message          string             `bson:"message" json:"message"`
	Status           string             `bson:"status" json:"status"`
	IPAddress        string             `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
	Timestamp        time.Time          `bson:"timestamp" json:"timestamp"`
}

// SiteNotice is the banner shown on the home page. Only one notice is
// active at a time; updating deactivates the rest.
type SiteNotice struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Message   string             `bson:"message" json:"message"`
	Type      string             `bson:"type" json:"type"` // "info", "warning", "maintenance"
	Icon      string             `bson:"icon" json:"icon"`
	Active    bool               `bson:"active" json:"active"`
	CreatedAt time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
