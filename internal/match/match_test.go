package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio(t *testing.T) {
	assert.InDelta(t, 1.0, Ratio("devops", "devops"), 1e-9)
	assert.InDelta(t, 0.0, Ratio("abc", "xyz"), 1e-9)
	// "abcd" vs "bcde": matching block "bcd", 2*3/8.
	assert.InDelta(t, 0.75, Ratio("abcd", "bcde"), 1e-9)
}

func TestBest(t *testing.T) {
	catalog := []string{"org", "devops", "avia-parametry", "backend"}

	tests := []struct {
		name   string
		query  string
		want   string
		wantOK bool
	}{
		{name: "exact", query: "devops", want: "devops", wantOK: true},
		{name: "typo", query: "devps", want: "devops", wantOK: true},
		{name: "transliterated", query: "avia-parametry", want: "avia-parametry", wantOK: true},
		{name: "below cutoff", query: "marketing", wantOK: false},
		{name: "empty query", query: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Best(tt.query, catalog, DefaultCutoff)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBest_TieKeepsCatalogOrder(t *testing.T) {
	// Both candidates score 2*2/5 = 0.8 against "ab".
	got, ok := Best("ab", []string{"abx", "aby"}, 0.5)
	assert.True(t, ok)
	assert.Equal(t, "abx", got)

	got, ok = Best("ab", []string{"aby", "abx"}, 0.5)
	assert.True(t, ok)
	assert.Equal(t, "aby", got)
}

func TestBest_EmptyCatalog(t *testing.T) {
	_, ok := Best("org", nil, DefaultCutoff)
	assert.False(t, ok)
}
