package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"movie-magic-club/models"
)

const (
	AdminSessionDuration = 24 * time.Hour
	AdminCookieName      = "admin_session"

	// VisitorCookieName identifies anonymous visitors for the verification
	// gate. The cookie only holds a random id; state lives in MongoDB.
	VisitorCookieName = "mm_session"
)

// GenerateSessionID generates a secure random session ID
func GenerateSessionID() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// GenerateVisitorID generates the shorter id used for visitor sessions.
func GenerateVisitorID() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// CreateAdminSession creates a new admin session in the database
func CreateAdminSession(ctx context.Context, ipAddress, userAgent string) (*models.AdminSession, error) {
	db := GetDatabase()
	if db == nil {
		return nil, ErrDatabaseUnavailable
	}

	sessionID, err := GenerateSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	now := time.Now()
	session := &models.AdminSession{
		ID:           primitive.NewObjectID(),
		SessionID:    sessionID,
		IPAddress:    ipAddress,
		UserAgent:    userAgent,
		CreatedAt:    now,
		LastAccessed: now,
		ExpiresAt:    now.Add(AdminSessionDuration),
		IsActive:     true,
	}

	collection := db.Collection("admin_sessions")
	if _, err := collection.InsertOne(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// GetAdminSession retrieves an active, unexpired session by session ID.
// Returns nil without error when no such session exists.
func GetAdminSession(ctx context.Context, sessionID string) (*models.AdminSession, error) {
	db := GetDatabase()
	if db == nil {
		return nil, ErrDatabaseUnavailable
	}

	collection := db.Collection("admin_sessions")

	var session models.AdminSession
	err := collection.FindOne(ctx, bson.M{
		"session_id": sessionID,
		"is_active":  true,
		"expires_at": bson.M{"$gt": time.Now()},
	}).Decode(&session)

	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	// Update last accessed time
	_, err = collection.UpdateOne(
		ctx,
		bson.M{"_id": session.ID},
		bson.M{"$set": bson.M{"last_accessed": time.Now()}},
	)
	if err != nil {
		// Log error but don't fail the request
		slog.Warn("Failed to update session last accessed time", "error", err)
	}

	return &session, nil
}

// ExtendAdminSession extends the expiration time of a session
func ExtendAdminSession(ctx context.Context, sessionID string) error {
	db := GetDatabase()
	if db == nil {
		return ErrDatabaseUnavailable
	}

	_, err := db.Collection("admin_sessions").UpdateOne(
		ctx,
		bson.M{
			"session_id": sessionID,
			"is_active":  true,
		},
		bson.M{
			"$set": bson.M{
				"last_accessed": time.Now(),
				"expires_at":    time.Now().Add(AdminSessionDuration),
			},
		},
	)

	if err != nil {
		return fmt.Errorf("failed to extend session: %w", err)
	}

	return nil
}

// DestroyAdminSession marks a session as inactive
func DestroyAdminSession(ctx context.Context, sessionID string) error {
	db := GetDatabase()
	if db == nil {
		return ErrDatabaseUnavailable
	}

	_, err := db.Collection("admin_sessions").UpdateOne(
		ctx,
		bson.M{"session_id": sessionID},
		bson.M{
			"$set": bson.M{
				"is_active":  false,
				"expires_at": time.Now(),
			},
		},
	)

	if err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}

	return nil
}

// CleanupExpiredAdminSessions removes sessions that expired over a week ago
func CleanupExpiredAdminSessions(ctx context.Context) (int64, error) {
	db := GetDatabase()
	if db == nil {
		return 0, ErrDatabaseUnavailable
	}

	cutoffTime := time.Now().Add(-7 * 24 * time.Hour)

	result, err := db.Collection("admin_sessions").DeleteMany(
		ctx,
		bson.M{
			"expires_at": bson.M{"$lt": cutoffTime},
		},
	)

	if err != nil {
		return 0, fmt.Errorf("failed to cleanup expired sessions: %w", err)
	}

	return result.DeletedCount, nil
}

// CountActiveAdminSessions counts sessions that are active and unexpired
func CountActiveAdminSessions(ctx context.Context) (int64, error) {
	db := GetDatabase()
	if db == nil {
		return 0, ErrDatabaseUnavailable
	}

	count, err := db.Collection("admin_sessions").CountDocuments(ctx, bson.M{
		"is_active":  true,
		"expires_at": bson.M{"$gt": time.Now()},
	})

	if err != nil {
		return 0, fmt.Errorf("failed to count active sessions: %w", err)
	}

	return count, nil
}

// CreateSessionIndexes creates necessary indexes for the admin sessions collection
func CreateSessionIndexes(ctx context.Context) error {
	db := GetDatabase()
	if db == nil {
		return ErrDatabaseUnavailable
	}

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.M{"session_id": 1},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.M{"expires_at": 1},
		},
		{
			Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "expires_at", Value: 1}},
		},
	}

	_, err := db.Collection("admin_sessions").Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create session indexes: %w", err)
	}

	return nil
}
