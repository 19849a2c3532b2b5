package models

import "testing"

func TestSeasonLabel(t *testing.T) {
	named := Season{Number: 2, Title: "The Reckoning"}
	if got := named.SeasonLabel(); got != "The Reckoning" {
		t.Errorf("SeasonLabel() = %q, want %q", got, "The Reckoning")
	}

	unnamed := Season{Number: 3}
	if got := unnamed.SeasonLabel(); got != "Season 3" {
		t.Errorf("SeasonLabel() = %q, want %q", got, "Season 3")
	}
}

func TestEpisodeLabel(t *testing.T) {
	named := Episode{Number: 1, Title: "Pilot"}
	if got := named.EpisodeLabel(); got != "Pilot" {
		t.Errorf("EpisodeLabel() = %q, want %q", got, "Pilot")
	}

	unnamed := Episode{Number: 7}
	if got := unnamed.EpisodeLabel(); got != "Episode 7" {
		t.Errorf("EpisodeLabel() = %q, want %q", got, "Episode 7")
	}
}
