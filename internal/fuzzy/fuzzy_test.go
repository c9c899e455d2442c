package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	cols := []string{"height", "weight", "age", "city"}
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"one edit", "heigth", "height"},
		{"transposition", "wieght", "weight"},
		{"short name one edit", "agee", "age"},
		{"no plausible match", "zzzzzzzz", ""},
		{"empty input", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Suggest(tt.in, cols))
		})
	}
}

func TestSuggestNoCandidates(t *testing.T) {
	assert.Equal(t, "", Suggest("x", nil))
}

func TestSuggestPicksClosest(t *testing.T) {
	assert.Equal(t, "value", Suggest("valu", []string{"volume", "value"}))
}

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"abc", "", 3},
		{"", "ab", 2},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, distance(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}
