package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"movie-magic-club/models"
)

// Forum pages reject the default Go user agent.
const scraperUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// Scraper pulls new releases off the TamilMV forum listing.
type Scraper struct {
	baseURL   string
	latestURL string
	client    *http.Client
}

func NewScraper(baseURL, latestURL string) *Scraper {
	return &Scraper{
		baseURL:   strings.TrimRight(baseURL, "/"),
		latestURL: latestURL,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *Scraper) fetch(ctx context.Context, pageURL string) (*http.Response, error) {
	if err := scrapeRateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build scrape request: %w", err)
	}
	req.Header.Set("User-Agent", scraperUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s returned %s", pageURL, resp.Status)
	}
	return resp, nil
}

// LatestReleases scrapes the forum listing and returns up to limit releases,
// newest first as the forum orders them.
func (s *Scraper) LatestReleases(ctx context.Context, limit int) ([]models.Release, error) {
	resp, err := s.fetch(ctx, s.latestURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return parseTopicList(resp.Body, s.baseURL, limit)
}

// TopicTorrents scrapes one topic page for its magnet links.
func (s *Scraper) TopicTorrents(ctx context.Context, topicURL string) ([]models.Torrent, error) {
	resp, err := s.fetch(ctx, topicURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return parseMagnets(resp.Body)
}

func parseTopicList(r io.Reader, baseURL string, limit int) ([]models.Release, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse topic list: %w", err)
	}

	seen := make(map[string]bool)
	var releases []models.Release

	doc.Find(`a[href*="/forums/topic/"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if limit > 0 && len(releases) >= limit {
			return false
		}

		href, ok := sel.Attr("href")
		if !ok {
			return true
		}
		topicURL := absoluteURL(baseURL, href)
		if seen[topicURL] {
			return true
		}

		// Pager and icon anchors link to the same topics with short text.
		text := strings.TrimSpace(sel.Text())
		if len(text) < 10 {
			return true
		}

		title, year, _ := ParseRelease(text)
		if title == "" {
			return true
		}

		seen[topicURL] = true
		releases = append(releases, models.Release{
			Title:    title,
			Year:     year,
			TopicURL: topicURL,
		})
		return true
	})

	return releases, nil
}

func parseMagnets(r io.Reader) ([]models.Torrent, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse topic page: %w", err)
	}

	var torrents []models.Torrent

	doc.Find(`a[href^="magnet:"]`).Each(func(_ int, sel *goquery.Selection) {
		magnet, ok := sel.Attr("href")
		if !ok {
			return
		}

		name := magnetDisplayName(magnet)
		if name == "" {
			name = strings.TrimSpace(sel.Text())
		}
		if name == "" {
			return
		}

		torrents = append(torrents, models.Torrent{
			Title:  name,
			Magnet: magnet,
			SizeGB: ParseSizeGB(name),
		})
	})

	return torrents, nil
}

// magnetDisplayName pulls the release name out of a magnet link's dn field.
func magnetDisplayName(magnet string) string {
	parsed, err := url.Parse(magnet)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(parsed.Query().Get("dn"))
}

func absoluteURL(baseURL, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return baseURL + href
}
