package movies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelworthy/reelworthy-core/internal/tmdb"
)

func TestFromDetails(t *testing.T) {
	m := fromDetails(&tmdb.MovieDetails{
		ID:           603,
		Title:        "The Matrix: Reloaded",
		Overview:     "Neo returns.",
		PosterPath:   "/p.jpg",
		BackdropPath: "/b.jpg",
		ReleaseDate:  "2003-05-15",
		Runtime:      138,
		VoteAverage:  7.0,
		Genres:       []tmdb.Genre{{ID: 28, Name: "Action"}, {ID: 878, Name: "Science Fiction"}},
	})

	assert.Equal(t, 603, m.TMDBID)
	assert.Equal(t, "the-matrix-reloaded", m.Slug)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/p.jpg", m.PosterURL)
	require.NotNil(t, m.ReleaseDate)
	assert.Equal(t, 2003, m.ReleaseDate.Year())
	assert.Equal(t, []string{"Action", "Science Fiction"}, m.Genres)
}

func TestFromResult_BadReleaseDateIgnored(t *testing.T) {
	m := fromResult(&tmdb.MovieResult{ID: 1, Title: "Untitled", ReleaseDate: "not-a-date"})
	assert.Nil(t, m.ReleaseDate)
	assert.Equal(t, "untitled", m.Slug)
}
