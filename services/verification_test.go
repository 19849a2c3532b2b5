package services

import (
	"strings"
	"testing"
	"time"

	"movie-magic-club/models"
)

func TestVerificationDecision(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(30 * time.Minute)
	past := now.Add(-30 * time.Minute)

	tests := []struct {
		name     string
		settings models.VerificationSettings
		state    models.VerificationState
		want     bool
	}{
		{
			name:     "disabled gate never blocks",
			settings: models.VerificationSettings{Enabled: false, FreeLimit: 0},
			state:    models.VerificationState{FreeUsed: 99},
			want:     false,
		},
		{
			name:     "active verified window allows",
			settings: models.VerificationSettings{Enabled: true, FreeLimit: 3},
			state:    models.VerificationState{FreeUsed: 99, VerifiedUntil: &future},
			want:     false,
		},
		{
			name:     "expired window falls back to quota",
			settings: models.VerificationSettings{Enabled: true, FreeLimit: 3},
			state:    models.VerificationState{FreeUsed: 3, VerifiedUntil: &past},
			want:     true,
		},
		{
			name:     "quota not yet exhausted",
			settings: models.VerificationSettings{Enabled: true, FreeLimit: 3},
			state:    models.VerificationState{FreeUsed: 2},
			want:     false,
		},
		{
			name:     "quota exactly exhausted",
			settings: models.VerificationSettings{Enabled: true, FreeLimit: 3},
			state:    models.VerificationState{FreeUsed: 3},
			want:     true,
		},
		{
			name:     "quota far exceeded",
			settings: models.VerificationSettings{Enabled: true, FreeLimit: 3},
			state:    models.VerificationState{FreeUsed: 10},
			want:     true,
		},
		{
			name:     "zero limit blocks first click",
			settings: models.VerificationSettings{Enabled: true, FreeLimit: 0},
			state:    models.VerificationState{FreeUsed: 0},
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerificationDecision(tt.settings, tt.state, now); got != tt.want {
				t.Errorf("VerificationDecision() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDayKey(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{
			name: "utc evening is already next day in IST",
			at:   time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC),
			want: "2025-03-11",
		},
		{
			name: "utc morning stays on the same day",
			at:   time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
			want: "2025-03-10",
		},
		{
			name: "ist midnight boundary",
			at:   time.Date(2025, 3, 10, 18, 30, 0, 0, time.UTC),
			want: "2025-03-11",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayKey(tt.at); got != tt.want {
				t.Errorf("DayKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateVerifyToken(t *testing.T) {
	token, err := GenerateVerifyToken()
	if err != nil {
		t.Fatalf("GenerateVerifyToken() error = %v", err)
	}
	if len(token) != 22 {
		t.Errorf("token length = %d, want 22", len(token))
	}
	if strings.ContainsAny(token, "+/=") {
		t.Errorf("token %q contains non URL-safe characters", token)
	}

	other, err := GenerateVerifyToken()
	if err != nil {
		t.Fatalf("GenerateVerifyToken() error = %v", err)
	}
	if token == other {
		t.Errorf("consecutive tokens are identical: %q", token)
	}
}
