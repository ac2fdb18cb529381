package comments

import (
	"time"

	"github.com/reelworthy/reelworthy-core/internal/users"
)

// Comment is a user's review text on a movie. MovieID is the external
// catalog identifier, not a local foreign key.
type Comment struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	MovieID   string    `gorm:"size:64;not null;index"`
	Content   string    `gorm:"type:text;not null"`
	Likes     int       `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User *users.User `gorm:"foreignKey:UserID"`
}

// CommentLike records that a user liked a comment. The composite primary
// key is what makes likes idempotent per actor.
type CommentLike struct {
	CommentID uint `gorm:"primaryKey;autoIncrement:false"`
	UserID    uint `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time
}

type Response struct {
	ID        uint                `json:"id"`
	MovieID   string              `json:"movieId"`
	Content   string              `json:"content"`
	Likes     int                 `json:"likes"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
	User      users.PublicProfile `json:"user"`
}

func toResponse(c *Comment) Response {
	r := Response{
		ID:        c.ID,
		MovieID:   c.MovieID,
		Content:   c.Content,
		Likes:     c.Likes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.User != nil {
		r.User = c.User.Public()
	}
	return r
}

func toResponses(cs []Comment) []Response {
	out := make([]Response, 0, len(cs))
	for i := range cs {
		out = append(out, toResponse(&cs[i]))
	}
	return out
}
