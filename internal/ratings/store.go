package ratings

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// A movie needs this many ratings before it can appear on the top-rated
// leaderboard, so a single 5-star vote cannot dominate it.
const minSampleSize = 5

var (
	ErrInvalidRating = errors.New("rating must be an integer between 1 and 5")
	ErrNotFound      = errors.New("rating not found")
)

// Upsert stores a user's rating for a movie as a single atomic
// create-or-update on the (user_id, movie_id) key. Two racing first-time
// submissions collapse into one row; a duplicate-key fault surfacing
// anyway is retried as an update rather than reported.
func Upsert(db *gorm.DB, userID uint, movieID string, value int, movieTitle string) (*Rating, error) {
	if value < 1 || value > 5 {
		return nil, ErrInvalidRating
	}

	r := Rating{UserID: userID, MovieID: movieID, Rating: value, MovieTitle: movieTitle}
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"rating":      value,
			"movie_title": movieTitle,
			"updated_at":  time.Now(),
		}),
	}).Create(&r).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = db.Model(&Rating{}).
			Where("user_id = ? AND movie_id = ?", userID, movieID).
			Updates(map[string]interface{}{"rating": value, "movie_title": movieTitle}).Error
	}
	if err != nil {
		return nil, err
	}

	var out Rating
	if err := db.Where("user_id = ? AND movie_id = ?", userID, movieID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// ForUser returns a page of a user's ratings, most recently updated first.
func ForUser(db *gorm.DB, userID uint, page, limit int) ([]Rating, int64, error) {
	var total int64
	if err := db.Model(&Rating{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []Rating
	err := db.Where("user_id = ?", userID).
		Order("updated_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ForMovie returns every rating for a movie with the mean rounded to one
// decimal place. No ratings is not an error: the average is simply 0.
func ForMovie(db *gorm.DB, movieID string) ([]Rating, float64, int64, error) {
	var list []Rating
	err := db.Preload("User").
		Where("movie_id = ?", movieID).
		Order("updated_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, 0, 0, err
	}

	total := int64(len(list))
	if total == 0 {
		return list, 0, 0, nil
	}

	sum := 0
	for _, r := range list {
		sum += r.Rating
	}
	avg := round1(float64(sum) / float64(total))
	return list, avg, total, nil
}

// ForUserAndMovie returns the caller's own rating for a movie, nil if
// they have not rated it.
func ForUserAndMovie(db *gorm.DB, userID uint, movieID string) (*Rating, error) {
	var r Rating
	err := db.Where("user_id = ? AND movie_id = ?", userID, movieID).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// TopRated aggregates ratings by movie and returns the best-rated movies
// among those with at least minSampleSize ratings.
func TopRated(db *gorm.DB, limit int) ([]TopMovie, error) {
	var top []TopMovie
	err := db.Model(&Rating{}).
		Select("movie_id, MAX(movie_title) AS movie_title, AVG(rating) AS average_rating, COUNT(*) AS total_ratings").
		Group("movie_id").
		Having("COUNT(*) >= ?", minSampleSize).
		Order("average_rating DESC").
		Limit(limit).
		Scan(&top).Error
	if err != nil {
		return nil, err
	}
	for i := range top {
		top[i].AverageRating = round1(top[i].AverageRating)
	}
	return top, nil
}

// Delete removes a user's own rating for a movie.
func Delete(db *gorm.DB, userID uint, movieID string) error {
	res := db.Where("user_id = ? AND movie_id = ?", userID, movieID).Delete(&Rating{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByUser clears a departing user's whole ledger.
func DeleteByUser(db *gorm.DB, userID uint) error {
	return db.Where("user_id = ?", userID).Delete(&Rating{}).Error
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
