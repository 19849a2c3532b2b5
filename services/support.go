package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"movie-magic-club/models"
)

// CreateSupportMessage stores a visitor message from the public support form.
func CreateSupportMessage(ctx context.Context, msg *models.SupportMessage) error {
	db := GetDatabase()
	if db == nil {
		return ErrDatabaseUnavailable
	}

	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.TelegramUsername = strings.TrimSpace(msg.TelegramUsername)
	msg.Message = strings.TrimSpace(msg.Message)
	msg.Status = models.SupportStatusPending
	msg.Timestamp = time.Now().UTC()

	result, err := db.Collection("support_messages").InsertOne(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to save support message: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		msg.ID = oid
	}
	return nil
}

// ListSupportMessages returns the latest support messages for the admin view.
func ListSupportMessages(ctx context.Context) ([]models.SupportMessage, error) {
	db := GetDatabase()
	if db == nil {
		return nil, ErrDatabaseUnavailable
	}

	opts := options.Find().SetSort(bson.M{"timestamp": -1}).SetLimit(100)
	cursor, err := db.Collection("support_messages").Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list support messages: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []models.SupportMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode support messages: %w", err)
	}
	return messages, nil
}

// UpdateSupportStatus moves a support message between pending, replied and
// closed.
func UpdateSupportStatus(ctx context.Context, id, status string) error {
	db := GetDatabase()
	if db == nil {
		return ErrDatabaseUnavailable
	}

	switch status {
	case models.SupportStatusPending, models.SupportStatusReplied, models.SupportStatusClosed:
	default:
		return fmt.Errorf("unknown support status %q", status)
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid support message id %q: %w", id, err)
	}

	_, err = db.Collection("support_messages").UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return fmt.Errorf("failed to update support message: %w", err)
	}
	return nil
}

// ActiveNotice returns the currently shown site banner, or nil when none is
// active.
func ActiveNotice(ctx context.Context) (*models.SiteNotice, error) {
	db := GetDatabase()
	if db == nil {
		return nil, nil
	}

	var notice models.SiteNotice
	err := db.Collection("site_notice").FindOne(ctx, bson.M{"active": true}).Decode(&notice)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load site notice: %w", err)
	}
	return &notice, nil
}

// UpdateNotice replaces the site banner. All other notices are deactivated
// first so only one can ever show.
func UpdateNotice(ctx context.Context, message, noticeType, icon string, active bool) error {
	db := GetDatabase()
	if db == nil {
		return ErrDatabaseUnavailable
	}

	col := db.Collection("site_notice")
	if _, err := col.UpdateMany(ctx, bson.M{}, bson.M{"$set": bson.M{"active": false}}); err != nil {
		return fmt.Errorf("failed to deactivate notices: %w", err)
	}

	if noticeType == "" {
		noticeType = "info"
	}
	if icon == "" {
		icon = "📢"
	}

	update := bson.M{
		"message":    message,
		"type":       noticeType,
		"icon":       icon,
		"active":     active,
		"updated_at": time.Now().UTC(),
	}

	var existing models.SiteNotice
	err := col.FindOne(ctx, bson.M{}).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		update["created_at"] = time.Now().UTC()
		if _, err := col.InsertOne(ctx, update); err != nil {
			return fmt.Errorf("failed to create site notice: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load site notice: %w", err)
	}

	if _, err := col.UpdateOne(ctx, bson.M{"_id": existing.ID}, bson.M{"$set": update}); err != nil {
		return fmt.Errorf("failed to update site notice: %w", err)
	}
	return nil
}

// DisableNotices hides the banner without deleting the stored notice.
func DisableNotices(ctx context.Context) error {
	db := GetDatabase()
	if db == nil {
		return ErrDatabaseUnavailable
	}

	_, err := db.Collection("site_notice").UpdateMany(ctx, bson.M{}, bson.M{"$set": bson.M{"active": false}})
	if err != nil {
		return fmt.Errorf("failed to disable notices: %w", err)
	}
	return nil
}
