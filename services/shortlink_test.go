package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestShorten(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    string
	}{
		{
			name: "successful response returns short url",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if got := r.URL.Query().Get("api"); got != "test-key" {
					t.Errorf("api query = %q, want %q", got, "test-key")
				}
				if got := r.URL.Query().Get("url"); got != "https://example.com/verify/auto?token=abc" {
					t.Errorf("url query = %q, want callback url", got)
				}
				w.Write([]byte(`{"status":"success","shortenedUrl":"https://short.example/xyz"}`))
			},
			want: "https://short.example/xyz",
		},
		{
			name: "error status falls back to destination",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"status":"error","message":"invalid key"}`))
			},
			want: "https://example.com/verify/auto?token=abc",
		},
		{
			name: "http failure falls back to destination",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			want: "https://example.com/verify/auto?token=abc",
		},
		{
			name: "garbage body falls back to destination",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("<html>not json</html>"))
			},
			want: "https://example.com/verify/auto?token=abc",
		},
	}

	destination := "https://example.com/verify/auto?token=abc"

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			got := Shorten(context.Background(), server.URL, "test-key", destination)
			if got != tt.want {
				t.Errorf("Shorten() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShortenWithoutConfig(t *testing.T) {
	destination := "https://example.com/page"

	if got := Shorten(context.Background(), "", "key", destination); got != destination {
		t.Errorf("Shorten() without base = %q, want destination back", got)
	}
	if got := Shorten(context.Background(), "https://short.example", "", destination); got != destination {
		t.Errorf("Shorten() without key = %q, want destination back", got)
	}
}
