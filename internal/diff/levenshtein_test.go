package diff

import "testing"

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a    string
		b    string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"Overview", "Overviews", 1},
		{"Introduction", "Intro", 7},
		{"abc", "acb", 2},
	}

	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestLevenshtein_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"Getting Started", "Getting Starte"},
		{"Usage", "Usages"},
		{"FAQ", "Troubleshooting"},
	}
	for _, p := range pairs {
		if levenshtein(p[0], p[1]) != levenshtein(p[1], p[0]) {
			t.Errorf("levenshtein not symmetric for %q / %q", p[0], p[1])
		}
	}
}

func TestLevenshtein_CountsRunesNotBytes(t *testing.T) {
	// One rune substituted, three bytes changed.
	if got := levenshtein("café", "cafe"); got != 1 {
		t.Errorf("levenshtein = %d, want 1", got)
	}
}
