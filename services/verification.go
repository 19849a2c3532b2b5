package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"movie-magic-club/config"
	"movie-magic-club/models"
)

// Free-use quotas reset on India time, not server time.
var ist = loadIST()

func loadIST() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return time.FixedZone("IST", 5*3600+1800)
	}
	return loc
}

// DayKey returns the quota day the given instant belongs to.
func DayKey(now time.Time) string {
	return now.In(ist).Format("2006-01-02")
}

// GetVerificationSettings reads the admin-tunable gate settings, falling back
// to config defaults for any field the stored document does not carry.
func GetVerificationSettings(ctx context.Context) models.VerificationSettings {
	settings := models.VerificationSettings{
		Enabled:      config.VerificationDefaultEnabled,
		FreeLimit:    config.VerificationDefaultFreeLimit,
		ValidMinutes: config.VerificationDefaultValidMinutes,
	}

	db := GetDatabase()
	if db == nil {
		return settings
	}

	var doc struct {
		Enabled      *bool `bson:"enabled"`
		FreeLimit    *int  `bson:"free_limit"`
		ValidMinutes *int  `bson:"valid_minutes"`
	}
	err := db.Collection("settings").FindOne(ctx, bson.M{"_id": "verification"}).Decode(&doc)
	if err != nil {
		return settings
	}

	if doc.Enabled != nil {
		settings.Enabled = *doc.Enabled
	}
	if doc.FreeLimit != nil {
		settings.FreeLimit = *doc.FreeLimit
	}
	if doc.ValidMinutes != nil {
		settings.ValidMinutes = *doc.ValidMinutes
	}
	return settings
}

// UpdateVerificationSettings persists the gate settings from the admin panel.
func UpdateVerificationSettings(ctx context.Context, settings models.VerificationSettings) error {
	db := GetDatabase()
	if db == nil {
		return ErrDatabaseUnavailable
	}

	opts := options.Update().SetUpsert(true)
	_, err := db.Collection("settings").UpdateOne(ctx,
		bson.M{"_id": "verification"},
		bson.M{"$set": bson.M{
			"enabled":       settings.Enabled,
			"free_limit":    settings.FreeLimit,
			"valid_minutes": settings.ValidMinutes,
			"updated_at":    time.Now().UTC(),
		}},
		opts,
	)
	if err != nil {
		return fmt.Errorf("failed to update verification settings: %w", err)
	}
	return nil
}

// visitorState loads the current-day state for a visitor session, creating it
// on first sight and resetting it when the IST day has rolled over.
func visitorState(ctx context.Context, sessionID string) (models.VerificationState, error) {
	today := DayKey(time.Now())
	fresh := models.VerificationState{
		SessionID: sessionID,
		Day:       today,
		UpdatedAt: time.Now().UTC(),
	}

	db := GetDatabase()
	if db == nil {
		// No database means no quota tracking and no blocking.
		return fresh, nil
	}

	col := db.Collection("verifications")

	var doc models.VerificationState
	err := col.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		if _, err := col.InsertOne(ctx, fresh); err != nil {
			return fresh, fmt.Errorf("failed to init verification state: %w", err)
		}
		return fresh, nil
	}
	if err != nil {
		return fresh, fmt.Errorf("failed to load verification state: %w", err)
	}

	if doc.Day != today {
		_, err := col.UpdateOne(ctx,
			bson.M{"session_id": sessionID},
			bson.M{"$set": bson.M{
				"day":            today,
				"free_used":      0,
				"verified_until": nil,
				"updated_at":     time.Now().UTC(),
			}},
		)
		if err != nil {
			return fresh, fmt.Errorf("failed to reset verification state: %w", err)
		}
		return fresh, nil
	}

	return doc, nil
}

// VerificationDecision reports whether a click must go through verification.
// The caller has already counted the click via IncrementFreeUsed.
func VerificationDecision(settings models.VerificationSettings, state models.VerificationState, now time.Time) bool {
	if !settings.Enabled {
		return false
	}
	if state.VerifiedUntil != nil && now.Before(*state.VerifiedUntil) {
		return false
	}
	if state.FreeUsed < settings.FreeLimit {
		return false
	}
	return true
}

// RequiresVerification decides whether the current watch or download click
// should be redirected into the verification flow.
func RequiresVerification(ctx context.Context, sessionID string) (bool, error) {
	settings := GetVerificationSettings(ctx)
	state, err := visitorState(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return VerificationDecision(settings, state, time.Now().UTC()), nil
}

// IncrementFreeUsed counts one watch or download click against today's quota.
// Routes call it before RequiresVerification.
func IncrementFreeUsed(ctx context.Context, sessionID string) error {
	db := GetDatabase()
	if db == nil {
		return nil
	}

	// Roll the day over first so the increment lands on today's counter.
	if _, err := visitorState(ctx, sessionID); err != nil {
		return err
	}

	opts := options.Update().SetUpsert(true)
	_, err := db.Collection("verifications").UpdateOne(ctx,
		bson.M{"session_id": sessionID},
		bson.M{
			"$set": bson.M{
				"day":        DayKey(time.Now()),
				"updated_at": time.Now().UTC(),
			},
			"$inc": bson.M{"free_used": 1},
		},
		opts,
	)
	if err != nil {
		return fmt.Errorf("failed to increment free uses: %w", err)
	}
	return nil
}

// MarkVerified stamps the visitor as verified for the configured window.
// A non-positive window stores no expiry, which leaves the quota in charge.
func MarkVerified(ctx context.Context, sessionID string) error {
	db := GetDatabase()
	if db == nil {
		return nil
	}

	settings := GetVerificationSettings(ctx)
	if _, err := visitorState(ctx, sessionID); err != nil {
		return err
	}

	var verifiedUntil interface{}
	if settings.ValidMinutes > 0 {
		verifiedUntil = time.Now().UTC().Add(time.Duration(settings.ValidMinutes) * time.Minute)
	}

	opts := options.Update().SetUpsert(true)
	_, err := db.Collection("verifications").UpdateOne(ctx,
		bson.M{"session_id": sessionID},
		bson.M{"$set": bson.M{
			"day":            DayKey(time.Now()),
			"verified_until": verifiedUntil,
			"updated_at":     time.Now().UTC(),
		}},
		opts,
	)
	if err != nil {
		return fmt.Errorf("failed to mark session verified: %w", err)
	}
	return nil
}

// GenerateVerifyToken returns a URL-safe one-time token.
func GenerateVerifyToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate verify token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// CreateVerificationToken mints and stores a one-time token that carries the
// visitor's session and the URL to land on after verification. Without a
// database the token is still returned so the link can be built.
func CreateVerificationToken(ctx context.Context, sessionID, next string) (string, error) {
	token, err := GenerateVerifyToken()
	if err != nil {
		return "", err
	}
	if next == "" {
		next = "/"
	}

	db := GetDatabase()
	if db == nil {
		return token, nil
	}

	doc := models.VerifyToken{
		Token:     token,
		SessionID: sessionID,
		Next:      next,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := db.Collection("verify_tokens").InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("failed to store verify token: %w", err)
	}
	return token, nil
}

// UseVerificationToken consumes a one-time token. Unknown or already-used
// tokens return nil without error.
func UseVerificationToken(ctx context.Context, token string) (*models.VerifyToken, error) {
	if token == "" {
		return nil, nil
	}
	db := GetDatabase()
	if db == nil {
		return nil, nil
	}

	var doc models.VerifyToken
	err := db.Collection("verify_tokens").FindOneAndDelete(ctx, bson.M{"token": token}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to consume verify token: %w", err)
	}
	return &doc, nil
}

// CleanupStaleTokens removes verify tokens that were never redeemed.
func CleanupStaleTokens(ctx context.Context) (int64, error) {
	db := GetDatabase()
	if db == nil {
		return 0, ErrDatabaseUnavailable
	}

	cutoff := time.Now().UTC().Add(-24 * time.Hour)
	result, err := db.Collection("verify_tokens").DeleteMany(ctx, bson.M{
		"created_at": bson.M{"$lt": cutoff},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup stale verify tokens: %w", err)
	}
	return result.DeletedCount, nil
}
