package ratings

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/reelworthy/reelworthy-core/internal/httputil"
	"github.com/reelworthy/reelworthy-core/internal/users"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

type upsertDTO struct {
	MovieID    string `json:"movieId"`
	Rating     int    `json:"rating" binding:"required"`
	MovieTitle string `json:"movieTitle"`
}

type movieRating struct {
	Rating
	User *users.PublicProfile `json:"user,omitempty"`
}

// UpsertHandler creates or replaces the caller's rating for a movie.
func (h *Handler) UpsertHandler(c *gin.Context) {
	uid, _ := httputil.CurrentUserID(c)

	var body upsertDTO
	if err := c.ShouldBindJSON(&body); err != nil || body.MovieID == "" {
		httputil.Error(c, http.StatusBadRequest, "Movie ID and rating are required")
		return
	}

	r, err := Upsert(h.db, uid, body.MovieID, body.Rating, body.MovieTitle)
	if err != nil {
		if errors.Is(err, ErrInvalidRating) {
			httputil.Error(c, http.StatusBadRequest, "Rating must be between 1 and 5")
			return
		}
		log.Printf("error saving rating: %v", err)
		httputil.Error(c, http.StatusInternalServerError, "Failed to save rating")
		return
	}

	httputil.OK(c, http.StatusOK, "Rating saved successfully", gin.H{"rating": r})
}

// ForUserHandler lists a user's ratings, newest-updated first.
func (h *Handler) ForUserHandler(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		httputil.Error(c, http.StatusBadRequest, "Valid user ID is required")
		return
	}
	page, limit := httputil.PageParams(c)

	list, total, err := ForUser(h.db, uint(userID), page, limit)
	if err != nil {
		log.Printf("error fetching user ratings: %v", err)
		httputil.Error(c, http.StatusInternalServerError, "Failed to fetch user ratings")
		return
	}

	httputil.OK(c, http.StatusOK, "", gin.H{
		"ratings":    list,
		"pagination": httputil.NewPage(page, limit, total),
	})
}

// ForMovieHandler lists all ratings for a movie with the aggregate stats.
func (h *Handler) ForMovieHandler(c *gin.Context) {
	list, avg, total, err := ForMovie(h.db, c.Param("movieId"))
	if err != nil {
		log.Printf("error fetching movie ratings: %v", err)
		httputil.Error(c, http.StatusInternalServerError, "Failed to fetch movie ratings")
		return
	}

	out := make([]movieRating, 0, len(list))
	for i := range list {
		mr := movieRating{Rating: list[i]}
		if list[i].User != nil {
			p := list[i].User.Public()
			mr.User = &p
		}
		out = append(out, mr)
	}

	httputil.OK(c, http.StatusOK, "", gin.H{
		"ratings":       out,
		"averageRating": avg,
		"totalRatings":  total,
	})
}

// MineForMovieHandler returns the caller's own rating for a movie, null
// if they have not rated it yet.
func (h *Handler) MineForMovieHandler(c *gin.Context) {
	uid, _ := httputil.CurrentUserID(c)

	r, err := ForUserAndMovie(h.db, uid, c.Param("movieId"))
	if err != nil {
		log.Printf("error fetching rating: %v", err)
		httputil.Error(c, http.StatusInternalServerError, "Failed to fetch rating")
		return
	}

	httputil.OK(c, http.StatusOK, "", gin.H{"rating": r})
}

// TopHandler returns the leaderboard of best-rated movies.
func (h *Handler) TopHandler(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 50 {
		limit = 10
	}

	top, err := TopRated(h.db, limit)
	if err != nil {
		log.Printf("error fetching top rated movies: %v", err)
		httputil.Error(c, http.StatusInternalServerError, "Failed to fetch top rated movies")
		return
	}

	httputil.OK(c, http.StatusOK, "", gin.H{"movies": top})
}

// DeleteHandler removes the caller's rating for a movie.
func (h *Handler) DeleteHandler(c *gin.Context) {
	uid, _ := httputil.CurrentUserID(c)

	if err := Delete(h.db, uid, c.Param("movieId")); err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.Error(c, http.StatusNotFound, "Rating not found")
			return
		}
		log.Printf("error deleting rating: %v", err)
		httputil.Error(c, http.StatusInternalServerError, "Failed to delete rating")
		return
	}

	httputil.OK(c, http.StatusOK, "Rating deleted successfully", nil)
}
