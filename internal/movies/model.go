package movies

import (
	"time"

	"github.com/gosimple/slug"

	"github.com/reelworthy/reelworthy-core/internal/tmdb"
)

// CatalogMovie is the shape the API exposes for catalog entries. The
// catalog itself lives at TMDB; nothing here is persisted locally.
type CatalogMovie struct {
	TMDBID      int        `json:"tmdbId"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Overview    string     `json:"overview"`
	PosterURL   string     `json:"posterUrl"`
	BackdropURL string     `json:"backdropUrl"`
	ReleaseDate *time.Time `json:"releaseDate,omitempty"`
	Runtime     int        `json:"runtime,omitempty"`
	VoteAverage float64    `json:"voteAverage"`
	Genres      []string   `json:"genres,omitempty"`
}

func fromResult(r *tmdb.MovieResult) CatalogMovie {
	m := CatalogMovie{
		TMDBID:      r.ID,
		Title:       r.Title,
		Slug:        slug.Make(r.Title),
		Overview:    r.Overview,
		PosterURL:   tmdb.BuildPosterURL(r.PosterPath),
		BackdropURL: tmdb.BuildBackdropURL(r.BackdropPath),
		VoteAverage: r.VoteAverage,
	}
	if r.ReleaseDate != "" {
		if d, err := time.Parse("2006-01-02", r.ReleaseDate); err == nil {
			m.ReleaseDate = &d
		}
	}
	return m
}

func fromDetails(d *tmdb.MovieDetails) CatalogMovie {
	m := CatalogMovie{
		TMDBID:      d.ID,
		Title:       d.Title,
		Slug:        slug.Make(d.Title),
		Overview:    d.Overview,
		PosterURL:   tmdb.BuildPosterURL(d.PosterPath),
		BackdropURL: tmdb.BuildBackdropURL(d.BackdropPath),
		Runtime:     d.Runtime,
		VoteAverage: d.VoteAverage,
	}
	if d.ReleaseDate != "" {
		if t, err := time.Parse("2006-01-02", d.ReleaseDate); err == nil {
			m.ReleaseDate = &t
		}
	}
	for _, g := range d.Genres {
		m.Genres = append(m.Genres, g.Name)
	}
	return m
}
