package scrape_test

import (
	"testing"

	"github.com/mzawadzki/ordpipe/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscover_Deterministic(t *testing.T) {
	t.Parallel()

	first := scrape.Discover("SPAGEOR_CH18AN")
	second := scrape.Discover("SPAGEOR_CH18AN")

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestDiscover_SuffixShape(t *testing.T) {
	t.Parallel()

	got := scrape.Discover("SPAGEOR_CH18AN")

	require.Len(t, got, 15)
	assert.Equal(t, "SPAGEOR_CH18AN_S1", got[0])
	assert.Contains(t, got, "SPAGEOR_CH18AN_ART2")
	assert.Contains(t, got, "SPAGEOR_CH18AN_ARTIII")
	assert.Contains(t, got, "SPAGEOR_CH18AN_VI")
	for _, candidate := range got {
		assert.Contains(t, candidate, "SPAGEOR_CH18AN_")
	}
}

func TestChapterNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		label string
		want  string
	}{
		{
			name:  "chapter label",
			label: "Chapter 18 - ANIMALS",
			want:  "18",
		},
		{
			name:  "title label",
			label: "TITLE 1 - ADMINISTRATION",
			want:  "T1",
		},
		{
			name:  "part label has no number",
			label: "PART I - RELATED LAWS",
			want:  "",
		},
		{
			name:  "empty label",
			label: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, scrape.ChapterNumber(tt.label))
		})
	}
}

func TestKnownChapters_StableCatalog(t *testing.T) {
	t.Parallel()

	catalog := scrape.KnownChapters()

	require.Len(t, catalog, 7)
	assert.Equal(t, "SPAGEOR_CH18AN", catalog[0].NodeID)
	assert.Equal(t, "Chapter 18 - ANIMALS", catalog[0].Label)
}
