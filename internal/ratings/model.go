package ratings

import (
	"time"

	"github.com/reelworthy/reelworthy-core/internal/users"
)

// Rating is one user's score for one movie. The unique index on
// (user_id, movie_id) is what keeps the ledger at one row per pair.
type Rating struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_user_movie" json:"userId"`
	MovieID    string    `gorm:"size:64;not null;uniqueIndex:idx_user_movie;index" json:"movieId"`
	Rating     int       `gorm:"not null" json:"rating"`
	MovieTitle string    `gorm:"size:255" json:"movieTitle,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	User *users.User `gorm:"foreignKey:UserID" json:"-"`
}

// TopMovie is one leaderboard row from the per-movie aggregation.
type TopMovie struct {
	MovieID       string  `json:"movieId"`
	MovieTitle    string  `json:"movieTitle,omitempty"`
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int64   `json:"totalRatings"`
}
