package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGenre(t *testing.T) {
	tests := []struct {
		in   string
		want Genre
	}{
		{"Comedy", Comedy},
		{"science fiction", ScienceFiction},
		{"  DOCUMENTARY ", Documentary},
		{"Horror", Horror},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseGenre(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseGenre("Western")
	assert.ErrorIs(t, err, ErrUnknownGenre)
}

func TestGenreLabels(t *testing.T) {
	assert.Len(t, Genres(), 8)
	for _, g := range Genres() {
		assert.True(t, g.Valid())
		parsed, err := ParseGenre(g.String())
		require.NoError(t, err)
		assert.Equal(t, g, parsed)
	}
	assert.False(t, Genre(0).Valid())
	assert.Equal(t, "Genre(42)", Genre(42).String())
}

func TestGenreJSON(t *testing.T) {
	raw, err := json.Marshal(MediaItem{ID: 1, Title: "Matrix", Genre: ScienceFiction, MinimumAge: 14})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"genre":"Science Fiction"`)

	var in MediaItemInput
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Matrix","genre":"science fiction"}`), &in))
	assert.Equal(t, ScienceFiction, in.Genre)

	err = json.Unmarshal([]byte(`{"genre":"Western"}`), &in)
	assert.ErrorIs(t, err, ErrUnknownGenre)
}

func TestGenreJSONOutsideEnumeration(t *testing.T) {
	raw, err := json.Marshal(MediaItem{ID: 1, Title: "Untitled"})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"genre":"Genre(0)"`)

	var item MediaItem
	assert.ErrorIs(t, json.Unmarshal(raw, &item), ErrUnknownGenre)
}
