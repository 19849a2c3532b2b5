package handlers

import "testing"

func TestTitleWord(t *testing.T) {
	tests := []struct {
		name string
		slug string
		want string
	}{
		{"lowercase slug", "tamil", "Tamil"},
		{"already titled", "Telugu", "Telugu"},
		{"all caps", "HINDI", "Hindi"},
		{"single letter", "x", "X"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := titleWord(tt.slug); got != tt.want {
				t.Errorf("titleWord(%q) = %q, want %q", tt.slug, got, tt.want)
			}
		})
	}
}

func TestLanguageNamesCoverHomeRows(t *testing.T) {
	for slug, name := range languageNames {
		if titleWord(slug) != name {
			t.Errorf("languageNames[%q] = %q, want %q", slug, name, titleWord(slug))
		}
	}
}
