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

// Duplicate-number errors surfaced to the admin pages.
var (
	ErrSeasonExists  = errors.New("season number already exists")
	ErrEpisodeExists = errors.New("episode number already exists")
)

// LatestSeries returns the newest shows, newest first.
func LatestSeries(ctx context.Context, limit int64) ([]models.Series, error) {
	db := GetDatabase()
	if db == nil {
		return nil, ErrDatabaseUnavailable
	}

	findOptions := options.Find().SetSort(bson.M{"_id": -1}).SetLimit(limit)
	cursor, err := db.Collection("series").Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list latest series: %w", err)
	}
	defer cursor.Close(ctx)

	var series []models.Series
	if err := cursor.All(ctx, &series); err != nil {
		return nil, fmt.Errorf("failed to decode series: %w", err)
	}

	return series, nil
}

// BrowseSeries lists every show, optionally filtered by category text.
func BrowseSeries(ctx context.Context, genre string) ([]models.Series, error) {
	db := GetDatabase()
	if db == nil {
		return nil, ErrDatabaseUnavailable
	}

	filter := bson.M{}
	if genre != "" {
		filter["category"] = bson.M{"$regex": genre, "$options": "i"}
	}

	findOptions := options.Find().SetSort(bson.M{"_id": -1})
	cursor, err := db.Collection("series").Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to browse series: %w", err)
	}
	defer cursor.Close(ctx)

	var series []models.Series
	if err := cursor.All(ctx, &series); err != nil {
		return nil, fmt.Errorf("failed to decode series: %w", err)
	}

	return series, nil
}

// SearchSeriesAdmin backs the admin dashboard list: title search when q is
// set, otherwise the latest entries.
func SearchSeriesAdmin(ctx context.Context, q string, limit int64) ([]models.Series, error) {
	db := GetDatabase()
	if db == nil {
		return nil, ErrDatabaseUnavailable
	}

	filter := bson.M{}
	if q != "" {
		filter["title"] = bson.M{"$regex": q, "$options": "i"}
	}

	findOptions := options.Find().SetSort(bson.M{"_id": -1}).SetLimit(limit)
	cursor, err := db.Collection("series").Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to search series: %w", err)
	}
	defer cursor.Close(ctx)

	var series []models.Series
	if err := cursor.All(ctx, &series); err != nil {
		return nil, fmt.Errorf("failed to decode series: %w", err)
	}

	return series, nil
}

// GetSeries returns one show by hex id, nil when malformed or missing.
func GetSeries(ctx context.Context, seriesID string) (*models.Series, error) {
	db := GetDatabase()
	if db == nil {
		return nil, ErrDatabaseUnavailable
	}

	oid, err := primitive.ObjectIDFromHex(seriesID)
	if err != nil {
		return nil, nil
	}

	var series models.Series
	err = db.Collection("series").FindOne(ctx, bson.M{"_id": oid}).Decode(&series)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get series: %w", err)
	}

	return &series, nil
}

// CreateSeries inserts a new show.
func CreateSeries(ctx context.Context, series *models.Series) (primitive.ObjectID, error) {
	db := GetDatabase()
	if db == nil {
		return primitive.NilObjectID, ErrDatabaseUnavailable
	}

	if series.CreatedAt.IsZero() {
		series.CreatedAt = time.Now().UTC()
	}

	result, err := db.Collection("series").InsertOne(ctx, series)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to create series: %w", err)
	}

	oid, _ := result.InsertedID.(primitive.ObjectID)
	return oid, nil
}

// UpdateSeries applies a $set update to one show.
func UpdateSeries(ctx context.Context, seriesID string, fields bson.M) error {
	db := GetDatabase()
	if db == nil {
		return ErrDatabaseUnavailable
	}

	oid, err := primitive.ObjectIDFromHex(seriesID)
	if err != nil {
		return fmt.Errorf("invalid series id %q: %w", seriesID, err)
	}

	_, err = db.Collection("series").UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update series: %w", err)
	}

	return nil
}

// DeleteSeries removes a show together with its seasons and episodes.
func DeleteSeries(ctx context.Context, seriesID string) error {
	db := GetDatabase()
	if db == nil {
		return ErrDatabaseUnavailable
	}

	oid, err := primitive.ObjectIDFromHex(seriesID)
	if err != nil {
		return fmt.Errorf("invalid series id %q: %w", seriesID, err)
	}

	if _, err := db.Collection("episodes").DeleteMany(ctx, bson.M{"series_id": oid}); err != nil {
		return fmt.Errorf("failed to delete episodes: %w", err)
	}
	if _, err := db.Collection("seasons").DeleteMany(ctx, bson.M{"series_id": oid}); err != nil {
		return fmt.Errorf("failed to delete seasons: %w", err)
	}
	if _, err := db.Collection("series").DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("failed to delete series: %w", err)
	}

	return nil
}

// ListSeasons returns a show's seasons ordered by number.
func ListSeasons(ctx context.Context, seriesID primitive.ObjectID) ([]models.Season, error) {
	db := GetDatabase()
	if db == nil {
		return nil, ErrDatabaseUnavailable
	}

	findOptions := options.Find().SetSort(bson.M{"number": 1})
	cursor, err := db.Collection("seasons").Find(ctx, bson.M{"series_id": seriesID}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list seasons: %w", err)
	}
	defer cursor.Close(ctx)

	var seasons []models.Season
	if err := cursor.All(ctx, &seasons); err != nil {
		return nil, fmt.Errorf("failed to decode seasons: %w", err)
	}

	return seasons, nil
}

// GetSeason returns one season by hex id, nil when malformed or missing.
func GetSeason(ctx context.Context, seasonID string) (*models.Season, error) {
	db := GetDatabase()
	if db == nil {
		return nil, ErrDatabaseUnavailable
	}

	oid, err := primitive.ObjectIDFromHex(seasonID)
	if err != nil {
		return nil, nil
	}

	var season models.Season
	err = db.Collection("seasons").FindOne(ctx, bson.M{"_id": oid}).Decode(&season)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get season: %w", err)
	}

	return &season, nil
}

// AddSeason creates a season under a show. The unique series/number index
// turns duplicates into ErrSeasonExists.
func AddSeason(ctx context.Context, seriesID primitive.ObjectID, number int, title string, year *int) (*models.Season, error) {
	db := GetDatabase()
	if db == nil {
		return nil, ErrDatabaseUnavailable
	}

	if title == "" {
		title = fmt.Sprintf("Season %d", number)
	}

	season := &models.Season{
		ID:        primitive.NewObjectID(),
		SeriesID:  seriesID,
		Number:    number,
		Title:     title,
		Year:      year,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := db.Collection("seasons").InsertOne(ctx, season); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrSeasonExists
		}
		return nil, fmt.Errorf("failed to add season: %w", err)
	}

	return season, nil
}

// DeleteSeason removes a season and its episodes.
func DeleteSeason(ctx context.Context, seasonID string) error {
	db := GetDatabase()
	if db == nil {
		return ErrDatabaseUnavailable
	}

	oid, err := primitive.ObjectIDFromHex(seasonID)
	if err != nil {
		return fmt.Errorf("invalid season id %q: %w", seasonID, err)
	}

	if _, err := db.Collection("episodes").DeleteMany(ctx, bson.M{"season_id": oid}); err != nil {
		return fmt.Errorf("failed to delete episodes: %w", err)
	}
	if _, err := db.Collection("seasons").DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("failed to delete season: %w", err)
	}

	return nil
}

// ListEpisodes returns a season's episodes ordered by number.
func ListEpisodes(ctx context.Context, seasonID primitive.ObjectID) ([]models.Episode, error) {
	db := GetDatabase()
	if db == nil {
		return nil, ErrDatabaseUnavailable
	}

	findOptions := options.Find().SetSort(bson.M{"number": 1})
	cursor, err := db.Collection("episodes").Find(ctx, bson.M{"season_id": seasonID}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list episodes: %w", err)
	}
	defer cursor.Close(ctx)

	var episodes []models.Episode
	if err := cursor.All(ctx, &episodes); err != nil {
		return nil, fmt.Errorf("failed to decode episodes: %w", err)
	}

	return episodes, nil
}

// AddEpisode creates an episode under a season, stamping both parent ids.
// The unique season/number index turns duplicates into ErrEpisodeExists.
func AddEpisode(ctx context.Context, season *models.Season, episode *models.Episode) error {
	db := GetDatabase()
	if db == nil {
		return ErrDatabaseUnavailable
	}

	episode.ID = primitive.NewObjectID()
	episode.SeriesID = season.SeriesID
	episode.SeasonID = season.ID
	if episode.Title == "" {
		episode.Title = fmt.Sprintf("Episode %d", episode.Number)
	}
	if episode.CreatedAt.IsZero() {
		episode.CreatedAt = time.Now().UTC()
	}

	if _, err := db.Collection("episodes").InsertOne(ctx, episode); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEpisodeExists
		}
		return fmt.Errorf("failed to add episode: %w", err)
	}

	return nil
}

// DeleteEpisode removes one episode.
func DeleteEpisode(ctx context.Context, episodeID string) error {
	db := GetDatabase()
	if db == nil {
		return ErrDatabaseUnavailable
	}

	oid, err := primitive.ObjectIDFromHex(episodeID)
	if err != nil {
		return fmt.Errorf("invalid episode id %q: %w", episodeID, err)
	}

	if _, err := db.Collection("episodes").DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("failed to delete episode: %w", err)
	}

	return nil
}

// GetEpisode resolves an episode together with its season and series.
func GetEpisode(ctx context.Context, episodeID string) (*models.Episode, *models.Season, *models.Series, error) {
	db := GetDatabase()
	if db == nil {
		return nil, nil, nil, ErrDatabaseUnavailable
	}

	oid, err := primitive.ObjectIDFromHex(episodeID)
	if err != nil {
		return nil, nil, nil, nil
	}

	var episode models.Episode
	err = db.Collection("episodes").FindOne(ctx, bson.M{"_id": oid}).Decode(&episode)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil, nil, nil
		}
		return nil, nil, nil, fmt.Errorf("failed to get episode: %w", err)
	}

	var season models.Season
	if err := db.Collection("seasons").FindOne(ctx, bson.M{"_id": episode.SeasonID}).Decode(&season); err != nil && err != mongo.ErrNoDocuments {
		return nil, nil, nil, fmt.Errorf("failed to get season: %w", err)
	}

	var series models.Series
	if err := db.Collection("series").FindOne(ctx, bson.M{"_id": episode.SeriesID}).Decode(&series); err != nil && err != mongo.ErrNoDocuments {
		return nil, nil, nil, fmt.Errorf("failed to get series: %w", err)
	}

	return &episode, &season, &series, nil
}

// SeriesDetail loads a show with every season and its episodes.
func SeriesDetail(ctx context.Context, seriesID string) (*models.Series, []models.SeasonView, int, error) {
	series, err := GetSeries(ctx, seriesID)
	if err != nil || series == nil {
		return series, nil, 0, err
	}

	seasons, err := ListSeasons(ctx, series.ID)
	if err != nil {
		return series, nil, 0, err
	}

	var views []models.SeasonView
	total := 0
	for _, season := range seasons {
		episodes, err := ListEpisodes(ctx, season.ID)
		if err != nil {
			return series, views, total, err
		}
		total += len(episodes)
		views = append(views, models.SeasonView{Season: season, Episodes: episodes})
	}

	return series, views, total, nil
}
