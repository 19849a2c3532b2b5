package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"movie-magic-club/models"
)

// HomeLanguages are the language rows rendered on the landing page, in order.
var HomeLanguages = []string{"Tamil", "Telugu", "Hindi", "Malayalam", "Kannada"}

// LatestMovies returns the newest catalog entries, newest first.
func LatestMovies(ctx context.Context, limit int64) ([]models.Movie, error) {
	db := GetDatabase()
	if db == nil {
		return nil, ErrDatabaseUnavailable
	}

	findOptions := options.Find().SetSort(bson.M{"_id": -1}).SetLimit(limit)
	cursor, err := db.Collection("movies").Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list latest movies: %w", err)
	}
	defer cursor.Close(ctx)

	var movies []models.Movie
	if err := cursor.All(ctx, &movies); err != nil {
		return nil, fmt.Errorf("failed to decode movies: %w", err)
	}

	return movies, nil
}

// MoviesByLanguage returns entries carrying the language on any audio track.
// Older documents only set the primary language field, so both are checked.
// A non-positive limit returns everything.
func MoviesByLanguage(ctx context.Context, language string, limit int64) ([]models.Movie, error) {
	db := GetDatabase()
	if db == nil {
		return nil, ErrDatabaseUnavailable
	}

	findOptions := options.Find().SetSort(bson.M{"_id": -1})
	if limit > 0 {
		findOptions.SetLimit(limit)
	}

	filter := bson.M{"$or": []bson.M{
		{"languages": language},
		{"language": language},
	}}
	cursor, err := db.Collection("movies").Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s movies: %w", language, err)
	}
	defer cursor.Close(ctx)

	var movies []models.Movie
	if err := cursor.All(ctx, &movies); err != nil {
		return nil, fmt.Errorf("failed to decode movies: %w", err)
	}

	return movies, nil
}

// SearchMovies matches the query against titles, case-insensitive.
func SearchMovies(ctx context.Context, query string, limit int64) ([]models.Movie, error) {
	db := GetDatabase()
	if db == nil {
		return nil, ErrDatabaseUnavailable
	}

	filter := bson.M{"title": bson.M{"$regex": query, "$options": "i"}}
	findOptions := options.Find().SetLimit(limit)

	cursor, err := db.Collection("movies").Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to search movies: %w", err)
	}
	defer cursor.Close(ctx)

	var movies []models.Movie
	if err := cursor.All(ctx, &movies); err != nil {
		return nil, fmt.Errorf("failed to decode movies: %w", err)
	}

	return movies, nil
}

// MoviesByCategory matches the category text, case-insensitive.
func MoviesByCategory(ctx context.Context, category string) ([]models.Movie, error) {
	db := GetDatabase()
	if db == nil {
		return nil, ErrDatabaseUnavailable
	}

	filter := bson.M{}
	if category != "" {
		filter = bson.M{"category": bson.M{"$regex": category, "$options": "i"}}
	}
	findOptions := options.Find().SetSort(bson.M{"_id": -1})

	cursor, err := db.Collection("movies").Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s movies: %w", category, err)
	}
	defer cursor.Close(ctx)

	var movies []models.Movie
	if err := cursor.All(ctx, &movies); err != nil {
		return nil, fmt.Errorf("failed to decode movies: %w", err)
	}

	return movies, nil
}

// GetMovie returns one entry by hex id. A malformed id or a missing document
// both return nil without error, matching how the pages treat them.
func GetMovie(ctx context.Context, movieID string) (*models.Movie, error) {
	db := GetDatabase()
	if db == nil {
		return nil, ErrDatabaseUnavailable
	}

	oid, err := primitive.ObjectIDFromHex(movieID)
	if err != nil {
		return nil, nil
	}

	var movie models.Movie
	err = db.Collection("movies").FindOne(ctx, bson.M{"_id": oid}).Decode(&movie)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}

	return &movie, nil
}

// FindMovieByTitleYear is the duplicate check used by the automation
// pipeline and the submission queue.
func FindMovieByTitleYear(ctx context.Context, title string, year *int) (*models.Movie, error) {
	db := GetDatabase()
	if db == nil {
		return nil, ErrDatabaseUnavailable
	}

	var movie models.Movie
	err := db.Collection("movies").FindOne(ctx, bson.M{"title": title, "year": year}).Decode(&movie)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find movie: %w", err)
	}

	return &movie, nil
}

// CreateMovie inserts a new catalog entry.
func CreateMovie(ctx context.Context, movie *models.Movie) (primitive.ObjectID, error) {
	db := GetDatabase()
	if db == nil {
		return primitive.NilObjectID, ErrDatabaseUnavailable
	}

	if movie.CreatedAt.IsZero() {
		movie.CreatedAt = time.Now().UTC()
	}

	result, err := db.Collection("movies").InsertOne(ctx, movie)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to create movie: %w", err)
	}

	oid, _ := result.InsertedID.(primitive.ObjectID)
	return oid, nil
}

// UpdateMovie applies a $set update to one entry.
func UpdateMovie(ctx context.Context, movieID string, fields bson.M) error {
	db := GetDatabase()
	if db == nil {
		return ErrDatabaseUnavailable
	}

	oid, err := primitive.ObjectIDFromHex(movieID)
	if err != nil {
		return fmt.Errorf("invalid movie id %q: %w", movieID, err)
	}

	_, err = db.Collection("movies").UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update movie: %w", err)
	}

	return nil
}

// DeleteMovie removes one entry.
func DeleteMovie(ctx context.Context, movieID string) error {
	db := GetDatabase()
	if db == nil {
		return ErrDatabaseUnavailable
	}

	oid, err := primitive.ObjectIDFromHex(movieID)
	if err != nil {
		return fmt.Errorf("invalid movie id %q: %w", movieID, err)
	}

	_, err = db.Collection("movies").DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	return nil
}

// UpsertAutoMovie stores a pipeline result keyed by title and year, so
// rescans never duplicate an entry. Returns the entry id.
func UpsertAutoMovie(ctx context.Context, movie *models.Movie) (string, error) {
	db := GetDatabase()
	if db == nil {
		return "", ErrDatabaseUnavailable
	}

	if movie.CreatedAt.IsZero() {
		movie.CreatedAt = time.Now().UTC()
	}
	movie.AutoAdded = true
	movie.Trending = true

	filter := bson.M{"title": movie.Title, "year": movie.Year}
	update := bson.M{"$set": movie}
	opts := options.Update().SetUpsert(true)

	result, err := db.Collection("movies").UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return "", fmt.Errorf("failed to upsert movie: %w", err)
	}

	if oid, ok := result.UpsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}

	existing, err := FindMovieByTitleYear(ctx, movie.Title, movie.Year)
	if err != nil || existing == nil {
		return "", err
	}
	return existing.ID.Hex(), nil
}

// CountMovies returns the total number of catalog entries.
func CountMovies(ctx context.Context) (int64, error) {
	db := GetDatabase()
	if db == nil {
		return 0, ErrDatabaseUnavailable
	}

	count, err := db.Collection("movies").CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}

	return count, nil
}

// CountMoviesByLanguage returns per-language totals for the admin dashboard.
func CountMoviesByLanguage(ctx context.Context) (map[string]int64, error) {
	db := GetDatabase()
	if db == nil {
		return nil, ErrDatabaseUnavailable
	}

	counts := make(map[string]int64, len(HomeLanguages))
	for _, language := range HomeLanguages {
		count, err := db.Collection("movies").CountDocuments(ctx, bson.M{"language": language})
		if err != nil {
			return nil, fmt.Errorf("failed to count %s movies: %w", language, err)
		}
		counts[language] = count
	}

	return counts, nil
}
