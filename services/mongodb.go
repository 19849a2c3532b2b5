package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	mongoClient *mongo.Client
	database    *mongo.Database
)

// ErrDatabaseUnavailable is returned by services when MongoDB never came up.
// Public pages degrade to empty lists instead of failing.
var ErrDatabaseUnavailable = errors.New("mongodb not connected")

// GetDatabase returns the MongoDB database instance, nil when not connected.
func GetDatabase() *mongo.Database {
	return database
}

// PingDatabase reports whether MongoDB is reachable right now.
func PingDatabase(ctx context.Context) error {
	if mongoClient == nil {
		return ErrDatabaseUnavailable
	}
	return mongoClient.Ping(ctx, nil)
}

// InitMongoDB initializes MongoDB connection
func InitMongoDB(ctx context.Context, uri string) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(uri)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	// Ping to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	slog.Info("Connected to MongoDB")
	mongoClient = client

	return client, nil
}

// InitServices initializes all services
func InitServices(client *mongo.Client, databaseName string) {
	database = client.Database(databaseName)

	// Create indexes
	createIndexes()
}

// createIndexes creates necessary database indexes
func createIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	moviesCollection := database.Collection("movies")
	moviesCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.M{"created_at": -1}},
		{Keys: bson.M{"language": 1}},
		{Keys: bson.D{{Key: "title", Value: 1}, {Key: "year", Value: 1}}},
	})

	seriesCollection := database.Collection("series")
	seriesCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.M{"created_at": -1},
	})

	seasonsCollection := database.Collection("seasons")
	seasonsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "series_id", Value: 1}, {Key: "number", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	episodesCollection := database.Collection("episodes")
	episodesCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "season_id", Value: 1}, {Key: "number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.M{"series_id": 1}},
	})

	verificationsCollection := database.Collection("verifications")
	verificationsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"session_id": 1},
		Options: options.Index().SetUnique(true),
	})

	tokensCollection := database.Collection("verify_tokens")
	tokensCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.M{"token": 1}, Options: options.Index().SetUnique(true)},
		{Keys: bson.M{"created_at": 1}},
	})

	supportCollection := database.Collection("support_messages")
	supportCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.M{"timestamp": -1},
	})

	submissionsCollection := database.Collection("submissions")
	submissionsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}, {Key: "submitted_at", Value: -1}},
	})

	jobsCollection := database.Collection("automation_movies")
	jobsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "title", Value: 1}, {Key: "year", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	if err := CreateSessionIndexes(ctx); err != nil {
		slog.Error("Failed to create session indexes", "error", err)
	}
}
