package services

import (
	"strings"
	"testing"
)

const topicListHTML = `<!DOCTYPE html>
<html><body>
<ol class="ipsDataList">
  <li class="ipsDataItem">
    <a href="https://tamilmv.re/index.php?/forums/topic/12345-amaran/">
      Amaran (2024) Tamil HQ HDRip - 1080p - x264 - DD5.1 - 2.9GB - ESub
    </a>
    <a href="https://tamilmv.re/index.php?/forums/topic/12345-amaran/">2</a>
  </li>
  <li class="ipsDataItem">
    <a href="/index.php?/forums/topic/12399-vettaiyan/">
      Vettaiyan (2024) Tamil HQ HDRip - 720p - x264 - 1.4GB - ESub
    </a>
  </li>
  <li class="ipsDataItem">
    <a href="/index.php?/forums/forum/8-tamil-dubbed-movies/page/2/">Next</a>
  </li>
</ol>
</body></html>`

const topicPageHTML = `<!DOCTYPE html>
<html><body>
<div class="ipsType_richText">
  <a href="magnet:?xt=urn:btih:aaa111&dn=Amaran.2024.Tamil.HQ.HDRip.1080p.x264.DD5.1.2.9GB&tr=http%3A%2F%2Ftracker.example%2Fannounce">
    magnet
  </a>
  <a href="magnet:?xt=urn:btih:bbb222&dn=Amaran.2024.Tamil.HDRip.720p.x264.900MB">magnet</a>
  <a href="https://tamilmv.re/somewhere-else">not a magnet</a>
</div>
</body></html>`

func TestParseTopicList(t *testing.T) {
	releases, err := parseTopicList(strings.NewReader(topicListHTML), "https://tamilmv.re", 10)
	if err != nil {
		t.Fatalf("parseTopicList() error = %v", err)
	}

	if len(releases) != 2 {
		t.Fatalf("parseTopicList() returned %d releases, want 2", len(releases))
	}

	first := releases[0]
	if first.Title == "" {
		t.Error("first release has empty title")
	}
	if first.Year == nil || *first.Year != 2024 {
		t.Errorf("first release year = %v, want 2024", first.Year)
	}
	if first.TopicURL != "https://tamilmv.re/index.php?/forums/topic/12345-amaran/" {
		t.Errorf("first release topic url = %q", first.TopicURL)
	}

	second := releases[1]
	if !strings.HasPrefix(second.TopicURL, "https://tamilmv.re/") {
		t.Errorf("relative topic url was not absolutized: %q", second.TopicURL)
	}
}

func TestParseTopicListLimit(t *testing.T) {
	releases, err := parseTopicList(strings.NewReader(topicListHTML), "https://tamilmv.re", 1)
	if err != nil {
		t.Fatalf("parseTopicList() error = %v", err)
	}
	if len(releases) != 1 {
		t.Errorf("parseTopicList() with limit 1 returned %d releases", len(releases))
	}
}

func TestParseMagnets(t *testing.T) {
	torrents, err := parseMagnets(strings.NewReader(topicPageHTML))
	if err != nil {
		t.Fatalf("parseMagnets() error = %v", err)
	}

	if len(torrents) != 2 {
		t.Fatalf("parseMagnets() returned %d torrents, want 2", len(torrents))
	}

	first := torrents[0]
	if first.Title != "Amaran.2024.Tamil.HQ.HDRip.1080p.x264.DD5.1.2.9GB" {
		t.Errorf("first torrent title = %q", first.Title)
	}
	if !strings.HasPrefix(first.Magnet, "magnet:?xt=urn:btih:aaa111") {
		t.Errorf("first torrent magnet = %q", first.Magnet)
	}
	if first.SizeGB != 2.9 {
		t.Errorf("first torrent size = %v, want 2.9", first.SizeGB)
	}

	second := torrents[1]
	if second.SizeGB <= 0.87 || second.SizeGB >= 0.88 {
		t.Errorf("second torrent size = %v, want about 0.879 (900MB)", second.SizeGB)
	}
}

func TestMagnetDisplayName(t *testing.T) {
	tests := []struct {
		name   string
		magnet string
		want   string
	}{
		{
			name:   "plain dn",
			magnet: "magnet:?xt=urn:btih:abc&dn=Movie.2024.1080p",
			want:   "Movie.2024.1080p",
		},
		{
			name:   "url encoded dn",
			magnet: "magnet:?xt=urn:btih:abc&dn=Movie%20%282024%29%20Tamil",
			want:   "Movie (2024) Tamil",
		},
		{
			name:   "missing dn",
			magnet: "magnet:?xt=urn:btih:abc",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := magnetDisplayName(tt.magnet); got != tt.want {
				t.Errorf("magnetDisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}
