package ratings

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/reelworthy/reelworthy-core/internal/httputil"
	"github.com/reelworthy/reelworthy-core/internal/users"
)

func identityFor(uid uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		httputil.SetIdentity(c, uid, "", "")
		c.Next()
	}
}

func ratingRouter(db *gorm.DB, uid uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(db)
	r := gin.New()
	r.POST("/api/user/:userId/ratings", identityFor(uid), h.UpsertHandler)
	r.GET("/api/user/:userId/ratings", h.ForUserHandler)
	r.GET("/api/movie/:movieId/ratings", h.ForMovieHandler)
	r.GET("/api/movie/:movieId/ratings/me", identityFor(uid), h.MineForMovieHandler)
	r.GET("/api/ratings/top", h.TopHandler)
	r.DELETE("/api/user/:userId/ratings/:movieId", identityFor(uid), h.DeleteHandler)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpsertHandler_RateThenReRate(t *testing.T) {
	db := newDB(t)
	r := ratingRouter(db, 1)

	w := doJSON(r, http.MethodPost, "/api/user/1/ratings", `{"movieId":"42","rating":5}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(r, http.MethodPost, "/api/user/1/ratings", `{"movieId":"42","rating":3}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"rating":3`)

	assert.EqualValues(t, 1, countRows(t, db, 1, "42"))
}

func TestUpsertHandler_Validation(t *testing.T) {
	db := newDB(t)
	r := ratingRouter(db, 1)

	w := doJSON(r, http.MethodPost, "/api/user/1/ratings", `{"movieId":"42","rating":9}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/user/1/ratings", `{"rating":4}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestForMovieHandler_Aggregates(t *testing.T) {
	db := newDB(t)
	u := users.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x", FirstName: "A", LastName: "B"}
	require.NoError(t, db.Create(&u).Error)
	_, err := Upsert(db, u.ID, "42", 5, "")
	require.NoError(t, err)

	w := doJSON(ratingRouter(db, u.ID), http.MethodGet, "/api/movie/42/ratings", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success       bool    `json:"success"`
		AverageRating float64 `json:"averageRating"`
		TotalRatings  int64   `json:"totalRatings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 5.0, resp.AverageRating)
	assert.EqualValues(t, 1, resp.TotalRatings)
}

func TestForMovieHandler_EmptyMovie(t *testing.T) {
	db := newDB(t)

	w := doJSON(ratingRouter(db, 1), http.MethodGet, "/api/movie/none/ratings", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"averageRating":0`)
	assert.Contains(t, w.Body.String(), `"totalRatings":0`)
}

func TestMineForMovieHandler(t *testing.T) {
	db := newDB(t)
	r := ratingRouter(db, 1)

	w := doJSON(r, http.MethodGet, "/api/movie/42/ratings/me", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"rating":null`)

	_, err := Upsert(db, 1, "42", 4, "")
	require.NoError(t, err)

	w = doJSON(r, http.MethodGet, "/api/movie/42/ratings/me", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"rating":4`)
}

func TestDeleteHandler(t *testing.T) {
	db := newDB(t)
	r := ratingRouter(db, 1)

	_, err := Upsert(db, 1, "42", 4, "")
	require.NoError(t, err)

	w := doJSON(r, http.MethodDelete, "/api/user/1/ratings/42", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodDelete, "/api/user/1/ratings/42", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
