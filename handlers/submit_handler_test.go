package handlers

import (
	"reflect"
	"testing"
)

func TestSplitLanguages(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"single", "Tamil", []string{"Tamil"}},
		{"comma list", "Tamil, Telugu, Hindi", []string{"Tamil", "Telugu", "Hindi"}},
		{"extra commas", ",Tamil,,Telugu,", []string{"Tamil", "Telugu"}},
		{"whitespace only", "  ,  ", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitLanguages(tt.raw); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitLanguages(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
