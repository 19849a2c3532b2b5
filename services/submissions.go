package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"movie-magic-club/models"
)

// ErrSubmissionNotFound covers missing ids and submissions that were already
// reviewed by another admin.
var ErrSubmissionNotFound = errors.New("submission not found or already reviewed")

// CreateSubmission queues a community-submitted entry for admin review.
func CreateSubmission(ctx context.Context, sub *models.Submission) error {
	db := GetDatabase()
	if db == nil {
		return ErrDatabaseUnavailable
	}

	if sub.Type == "" {
		sub.Type = "movie"
	}
	if sub.SubmittedBy == "" {
		sub.SubmittedBy = "Anonymous"
	}
	sub.Status = models.SubmissionStatusPending
	sub.SubmittedAt = time.Now().UTC()
	sub.ReviewedAt = nil

	result, err := db.Collection("submissions").InsertOne(ctx, sub)
	if err != nil {
		return fmt.Errorf("failed to save submission: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		sub.ID = oid
	}
	return nil
}

// ListPendingSubmissions returns submissions awaiting review, newest first.
func ListPendingSubmissions(ctx context.Context) ([]models.Submission, error) {
	db := GetDatabase()
	if db == nil {
		return nil, ErrDatabaseUnavailable
	}

	opts := options.Find().SetSort(bson.M{"submitted_at": -1}).SetLimit(100)
	cursor, err := db.Collection("submissions").Find(ctx, bson.M{"status": models.SubmissionStatusPending}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer cursor.Close(ctx)

	var submissions []models.Submission
	if err := cursor.All(ctx, &submissions); err != nil {
		return nil, fmt.Errorf("failed to decode submissions: %w", err)
	}
	return submissions, nil
}

// ApproveSubmission copies a pending submission into the public catalog and
// marks it approved.
func ApproveSubmission(ctx context.Context, id string) error {
	db := GetDatabase()
	if db == nil {
		return ErrDatabaseUnavailable
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid submission id %q: %w", id, err)
	}

	var sub models.Submission
	err = db.Collection("submissions").FindOne(ctx, bson.M{
		"_id":    oid,
		"status": models.SubmissionStatusPending,
	}).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		return ErrSubmissionNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load submission: %w", err)
	}

	movie := sub.AsMovie()
	if _, err := db.Collection("movies").InsertOne(ctx, movie); err != nil {
		return fmt.Errorf("failed to publish submission: %w", err)
	}

	_, err = db.Collection("submissions").UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"status":      models.SubmissionStatusApproved,
			"reviewed_at": time.Now().UTC(),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark submission approved: %w", err)
	}
	return nil
}

// RejectSubmission marks a pending submission rejected without touching
// the catalog.
func RejectSubmission(ctx context.Context, id string) error {
	db := GetDatabase()
	if db == nil {
		return ErrDatabaseUnavailable
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid submission id %q: %w", id, err)
	}

	result, err := db.Collection("submissions").UpdateOne(ctx,
		bson.M{"_id": oid, "status": models.SubmissionStatusPending},
		bson.M{"$set": bson.M{
			"status":      models.SubmissionStatusRejected,
			"reviewed_at": time.Now().UTC(),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to reject submission: %w", err)
	}
	if result.ModifiedCount == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}
