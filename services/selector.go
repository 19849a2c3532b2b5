package services

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	ptn "github.com/razsteinmetz/go-ptn"

	"movie-magic-club/models"
)

// selectionRule is one size/quality window tried when picking a release.
type selectionRule struct {
	resolution string
	minSizeGB  float64
	maxSizeGB  float64
	keywords   []string
}

var (
	// Tried in order; the optimal window first, wider nets after.
	selectionRules = []selectionRule{
		{resolution: "1080p", minSizeGB: 1.0, maxSizeGB: 3.0},
		{resolution: "1080p", minSizeGB: 0.5, maxSizeGB: 15.0},
		{resolution: "720p", minSizeGB: 1.0, maxSizeGB: 5.0, keywords: []string{"HQ"}},
	}

	// Matched verbatim against release names, the way uploaders write them.
	blacklistKeywords = []string{"CAM", "TC", "Telesync", "480p", "4K", "2160p", "HDCAM"}
	preferredKeywords = []string{"WEB-DL", "BluRay", "HQ.HDRip", "WEBRip"}

	sizePattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(GB|MB)`)
)

// ParseRelease extracts a clean title, year and resolution from a release
// name like "Amaran (2024) Tamil HQ HDRip - 1080p - x264 - 2.9GB".
func ParseRelease(name string) (string, *int, string) {
	info, err := ptn.Parse(name)
	if err != nil || info.Title == "" {
		return strings.TrimSpace(name), nil, ""
	}

	title := strings.TrimSpace(info.Title)
	var year *int
	if info.Year > 0 {
		y := info.Year
		year = &y
	}
	return title, year, info.Resolution
}

// ParseSizeGB reads a release size like "2.9GB" or "700 MB" out of text.
// Returns 0 when no size is present.
func ParseSizeGB(text string) float64 {
	match := sizePattern.FindStringSubmatch(text)
	if match == nil {
		return 0
	}

	size, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0
	}
	if strings.EqualFold(match[2], "MB") {
		size /= 1024
	}
	return size
}

// Blacklisted reports whether a release name carries a banned marker such as
// a cam rip or an oversized 4K encode.
func Blacklisted(name string) bool {
	for _, word := range blacklistKeywords {
		if strings.Contains(name, word) {
			return true
		}
	}
	return false
}

func torrentResolution(title string) string {
	if _, _, resolution := ParseRelease(title); resolution != "" {
		return resolution
	}
	lower := strings.ToLower(title)
	for _, resolution := range []string{"2160p", "1080p", "720p", "480p"} {
		if strings.Contains(lower, resolution) {
			return resolution
		}
	}
	return ""
}

func matchesRule(torrent models.Torrent, rule selectionRule) bool {
	if torrentResolution(torrent.Title) != rule.resolution {
		return false
	}
	if torrent.SizeGB < rule.minSizeGB || torrent.SizeGB > rule.maxSizeGB {
		return false
	}
	for _, keyword := range rule.keywords {
		if !strings.Contains(torrent.Title, keyword) {
			return false
		}
	}
	return true
}

func preferenceRank(title string) int {
	for i, keyword := range preferredKeywords {
		if strings.Contains(title, keyword) {
			return i
		}
	}
	return len(preferredKeywords)
}

// SelectBestTorrent picks the release worth leeching, or nil when nothing
// clears the rules.
func SelectBestTorrent(torrents []models.Torrent) *models.Torrent {
	for _, rule := range selectionRules {
		var candidates []models.Torrent
		for _, torrent := range torrents {
			if Blacklisted(torrent.Title) {
				continue
			}
			if !matchesRule(torrent, rule) {
				continue
			}
			candidates = append(candidates, torrent)
		}
		if len(candidates) == 0 {
			continue
		}

		sort.SliceStable(candidates, func(i, j int) bool {
			return preferenceRank(candidates[i].Title) < preferenceRank(candidates[j].Title)
		})
		best := candidates[0]
		return &best
	}
	return nil
}
