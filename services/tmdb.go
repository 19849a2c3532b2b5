package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const tmdbImageBase = "https://image.tmdb.org/t/p/w500"

var tmdbClient = &http.Client{Timeout: 15 * time.Second}

// TMDBMovie is the slice of a TMDB search hit the catalog cares about.
type TMDBMovie struct {
	Title     string
	Overview  string
	PosterURL string
	Rating    *float64
}

type tmdbSearchResponse struct {
	Results []struct {
		Title       string  `json:"title"`
		Overview    string  `json:"overview"`
		PosterPath  string  `json:"poster_path"`
		VoteAverage float64 `json:"vote_average"`
	} `json:"results"`
}

// SearchTMDB looks a title up on TMDB and returns the first hit, or nil when
// TMDB is not configured or finds nothing.
func SearchTMDB(ctx context.Context, apiURL, apiKey, title string, year *int) (*TMDBMovie, error) {
	if apiURL == "" || apiKey == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("api_key", apiKey)
	params.Set("query", title)
	if year != nil {
		params.Set("year", strconv.Itoa(*year))
	}

	endpoint := fmt.Sprintf("%s/search/movie?%s", strings.TrimRight(apiURL, "/"), params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build tmdb request: %w", err)
	}

	resp, err := tmdbClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tmdb search failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read tmdb response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tmdb search returned %s: %s", resp.Status, string(body))
	}

	var parsed tmdbSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode tmdb response: %w", err)
	}
	if len(parsed.Results) == 0 {
		return nil, nil
	}

	hit := parsed.Results[0]
	movie := &TMDBMovie{
		Title:    hit.Title,
		Overview: hit.Overview,
	}
	if hit.PosterPath != "" {
		movie.PosterURL = tmdbImageBase + hit.PosterPath
	}
	if hit.VoteAverage > 0 {
		rating := hit.VoteAverage
		movie.Rating = &rating
	}
	return movie, nil
}
