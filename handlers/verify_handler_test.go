package handlers

import "testing"

func TestSafeNext(t *testing.T) {
	tests := []struct {
		name string
		next string
		want string
	}{
		{"plain path", "/movie/abc123", "/movie/abc123"},
		{"path with query", "/watch/abc123?from=home", "/watch/abc123?from=home"},
		{"root", "/", "/"},
		{"empty falls back", "", "/"},
		{"absolute url rejected", "https://evil.example/phish", "/"},
		{"protocol relative rejected", "//evil.example/phish", "/"},
		{"relative path rejected", "movie/abc123", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := safeNext(tt.next); got != tt.want {
				t.Errorf("safeNext(%q) = %q, want %q", tt.next, got, tt.want)
			}
		})
	}
}
