package movies

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/reelworthy/reelworthy-core/internal/httputil"
	"github.com/reelworthy/reelworthy-core/internal/tmdb"
)

// Handler proxies read-only catalog lookups to TMDB. The browser talks
// to TMDB directly for most browsing; these routes exist for clients
// that cannot, and keep the API key off the client.
type Handler struct {
	client *tmdb.Client
}

func NewHandler(client *tmdb.Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) SearchHandler(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		httputil.Error(c, http.StatusBadRequest, "Search query is required")
		return
	}

	result, err := h.client.SearchMovies(query)
	if err != nil {
		log.Printf("catalog search failed: %v", err)
		httputil.Error(c, http.StatusBadGateway, "Failed to search the movie catalog")
		return
	}

	out := make([]CatalogMovie, 0, len(result.Results))
	for i := range result.Results {
		out = append(out, fromResult(&result.Results[i]))
	}

	httputil.OK(c, http.StatusOK, "", gin.H{
		"movies":       out,
		"totalResults": result.TotalResults,
	})
}

func (h *Handler) DetailsHandler(c *gin.Context) {
	tmdbID, err := strconv.Atoi(c.Param("tmdbId"))
	if err != nil {
		httputil.Error(c, http.StatusBadRequest, "Valid movie ID is required")
		return
	}

	details, err := h.client.GetMovieDetails(tmdbID)
	if err != nil {
		log.Printf("catalog details failed: %v", err)
		httputil.Error(c, http.StatusBadGateway, "Failed to fetch movie details")
		return
	}

	httputil.OK(c, http.StatusOK, "", gin.H{"movie": fromDetails(details)})
}

func (h *Handler) GenresHandler(c *gin.Context) {
	genres, err := h.client.GetGenres()
	if err != nil {
		log.Printf("catalog genres failed: %v", err)
		httputil.Error(c, http.StatusBadGateway, "Failed to fetch genres")
		return
	}

	httputil.OK(c, http.StatusOK, "", gin.H{"genres": genres})
}
