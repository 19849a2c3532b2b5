package models

import "testing"

func TestMovieAudio(t *testing.T) {
	tests := []struct {
		name  string
		movie Movie
		want  string
	}{
		{"multiple tracks", Movie{Languages: []string{"Tamil", "Telugu"}}, "Tamil, Telugu"},
		{"single track list", Movie{Languages: []string{"Hindi"}}, "Hindi"},
		{"primary only", Movie{Language: "Malayalam"}, "Malayalam"},
		{"nothing set defaults", Movie{}, "Tamil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.movie.Audio(); got != tt.want {
				t.Errorf("Audio() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMovieMultiAudio(t *testing.T) {
	tests := []struct {
		name  string
		movie Movie
		want  bool
	}{
		{"flag set", Movie{IsMultiDubbed: true}, true},
		{"two tracks", Movie{Languages: []string{"Tamil", "Telugu"}}, true},
		{"one track", Movie{Languages: []string{"Tamil"}}, false},
		{"nothing", Movie{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.movie.MultiAudio(); got != tt.want {
				t.Errorf("MultiAudio() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMoviePoster(t *testing.T) {
	tests := []struct {
		name  string
		movie Movie
		want  string
	}{
		{"uploaded file wins", Movie{PosterPath: "posters/a.jpg", PosterURL: "https://img.example/a.jpg"}, "/static/posters/a.jpg"},
		{"remote url fallback", Movie{PosterURL: "https://img.example/a.jpg"}, "https://img.example/a.jpg"},
		{"no poster", Movie{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.movie.Poster(); got != tt.want {
				t.Errorf("Poster() = %q, want %q", got, tt.want)
			}
		})
	}
}
