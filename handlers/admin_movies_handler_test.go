package handlers

import "testing"

func TestParseYear(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *int
	}{
		{"valid year", "2024", intPtr(2024)},
		{"spaced", " 1999 ", intPtr(1999)},
		{"empty", "", nil},
		{"blank", "   ", nil},
		{"not a number", "soon", nil},
		{"mixed", "2024ish", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseYear(tt.raw)
			switch {
			case got == nil && tt.want != nil:
				t.Errorf("parseYear(%q) = nil, want %d", tt.raw, *tt.want)
			case got != nil && tt.want == nil:
				t.Errorf("parseYear(%q) = %d, want nil", tt.raw, *got)
			case got != nil && tt.want != nil && *got != *tt.want:
				t.Errorf("parseYear(%q) = %d, want %d", tt.raw, *got, *tt.want)
			}
		})
	}
}

func intPtr(v int) *int { return &v }
