package license

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundedLevenshtein(t *testing.T) {
	tests := []struct {
		a, b   string
		cutoff int
		want   int
	}{
		{"", "", 10, 0},
		{"abc", "abc", 10, 0},
		{"abc", "abd", 10, 1},
		{"kitten", "sitting", 10, 3},
		{"abc", "", 10, 3},
		{"", "abc", 10, 3},
		{"flaw", "lawn", 10, 2},
		{"résumé", "resume", 10, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BoundedLevenshtein(tt.a, tt.b, tt.cutoff), "%q vs %q", tt.a, tt.b)
	}
}

func TestBoundedLevenshteinCutoff(t *testing.T) {
	// Distance is 3; any result at or above the cutoff means exceeded.
	got := BoundedLevenshtein("kitten", "sitting", 2)
	assert.GreaterOrEqual(t, got, 2)

	// Length gap alone exceeds the bound without any DP work.
	got = BoundedLevenshtein("a", strings.Repeat("b", 100), 5)
	assert.Equal(t, 5, got)

	// Equal strings short-circuit regardless of cutoff.
	assert.Zero(t, BoundedLevenshtein("same", "same", 0))
}

func TestBoundedLevenshteinExactBelowCutoff(t *testing.T) {
	// Values strictly below the cutoff must be exact even when the
	// cutoff is tight.
	assert.Equal(t, 3, BoundedLevenshtein("kitten", "sitting", 4))
	assert.Equal(t, 1, BoundedLevenshtein("abcdefgh", "abcdefgx", 2))
}
