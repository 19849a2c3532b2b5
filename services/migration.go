package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"movie-magic-club/models"
)

// MigrateEmbeddedSeasons moves the season/episode arrays embedded in old
// series documents into the normalized seasons and episodes collections.
// Safe to run repeatedly: already-migrated numbers are skipped.
func MigrateEmbeddedSeasons(ctx context.Context) error {
	db := GetDatabase()
	if db == nil {
		return ErrDatabaseUnavailable
	}

	collection := db.Collection("series")

	// Only old-format documents carry an embedded seasons array.
	filter := bson.M{
		"seasons": bson.M{
			"$type": "array",
		},
	}

	cursor, err := collection.Find(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to find series with embedded seasons: %w", err)
	}
	defer cursor.Close(ctx)

	var migratedCount int64
	var failedCount int64

	for cursor.Next(ctx) {
		var doc struct {
			ID      primitive.ObjectID `bson:"_id"`
			Seasons []struct {
				Number   int    `bson:"number"`
				Title    string `bson:"title"`
				Year     *int   `bson:"year"`
				Episodes []struct {
					Number      int    `bson:"number"`
					Title       string `bson:"title"`
					WatchURL    string `bson:"watch_url"`
					DownloadURL string `bson:"download_url"`
					Description string `bson:"description"`
				} `bson:"episodes"`
			} `bson:"seasons"`
		}

		if err := cursor.Decode(&doc); err != nil {
			slog.Error("Failed to decode series document", "error", err)
			failedCount++
			continue
		}

		docFailed := false

		for _, embedded := range doc.Seasons {
			season, err := AddSeason(ctx, doc.ID, embedded.Number, embedded.Title, embedded.Year)
			if errors.Is(err, ErrSeasonExists) {
				season, err = seasonByNumber(ctx, doc.ID, embedded.Number)
			}
			if err != nil {
				slog.Error("Failed to migrate season",
					"seriesID", doc.ID.Hex(),
					"season", embedded.Number,
					"error", err)
				docFailed = true
				continue
			}

			for _, ep := range embedded.Episodes {
				episode := &models.Episode{
					Number:      ep.Number,
					Title:       ep.Title,
					WatchURL:    ep.WatchURL,
					DownloadURL: ep.DownloadURL,
					Description: ep.Description,
					CreatedAt:   time.Now().UTC(),
				}

				err := AddEpisode(ctx, season, episode)
				if err != nil && !errors.Is(err, ErrEpisodeExists) {
					slog.Error("Failed to migrate episode",
						"seriesID", doc.ID.Hex(),
						"season", embedded.Number,
						"episode", ep.Number,
						"error", err)
					docFailed = true
				}
			}
		}

		if docFailed {
			failedCount++
			continue
		}

		// Drop the embedded array only once every child document landed.
		update := bson.M{"$unset": bson.M{"seasons": ""}}
		if _, err := collection.UpdateOne(ctx, bson.M{"_id": doc.ID}, update); err != nil {
			slog.Error("Failed to clear embedded seasons",
				"seriesID", doc.ID.Hex(),
				"error", err)
			failedCount++
			continue
		}

		migratedCount++
	}

	if err := cursor.Err(); err != nil {
		return fmt.Errorf("cursor error: %w", err)
	}

	slog.Info("Series migration completed",
		"migrated", migratedCount,
		"failed", failedCount)

	return nil
}

func seasonByNumber(ctx context.Context, seriesID primitive.ObjectID, number int) (*models.Season, error) {
	db := GetDatabase()
	if db == nil {
		return nil, ErrDatabaseUnavailable
	}

	var season models.Season
	err := db.Collection("seasons").FindOne(ctx, bson.M{
		"series_id": seriesID,
		"number":    number,
	}).Decode(&season)
	if err != nil {
		return nil, fmt.Errorf("failed to load season %d: %w", number, err)
	}
	return &season, nil
}
