package comments

import (
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxContentLength = 1000

var (
	// ErrNotFound covers both a missing comment and an ownership
	// mismatch. Mutations use one owner-scoped statement, so the two
	// cases are indistinguishable on purpose.
	ErrNotFound = errors.New("comment not found or unauthorized")

	ErrCommentMissing = errors.New("comment not found")
	ErrAlreadyLiked   = errors.New("already liked this comment")
	ErrContentEmpty   = errors.New("comment cannot be empty")
	ErrContentTooLong = errors.New("comment must be less than 1000 characters")
)

// ValidateContent trims the content and enforces the length bounds. The
// limit is in characters, not bytes, so multi-byte text is not penalized.
func ValidateContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", ErrContentEmpty
	}
	if utf8.RuneCountInString(trimmed) > maxContentLength {
		return "", ErrContentTooLong
	}
	return trimmed, nil
}

// Create persists a new comment and returns it with the owner identity
// resolved for display.
func Create(db *gorm.DB, userID uint, movieID, content string) (*Comment, error) {
	trimmed, err := ValidateContent(content)
	if err != nil {
		return nil, err
	}

	cm := Comment{UserID: userID, MovieID: movieID, Content: trimmed}
	if err := db.Create(&cm).Error; err != nil {
		return nil, err
	}

	var out Comment
	if err := db.Preload("User").First(&out, cm.ID).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns one page of a movie's comments plus the total count.
// sortBy is one of newest (default), oldest, likes.
func List(db *gorm.DB, movieID string, page, limit int, sortBy string) ([]Comment, int64, error) {
	var order string
	switch sortBy {
	case "oldest":
		order = "created_at ASC"
	case "likes":
		order = "likes DESC, created_at DESC"
	default:
		order = "created_at DESC"
	}

	var total int64
	if err := db.Model(&Comment{}).Where("movie_id = ?", movieID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []Comment
	err := db.Preload("User").
		Where("movie_id = ?", movieID).
		Order(order).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Update rewrites a comment's content. The statement is scoped by both id
// and owner, so a stranger's attempt and a missing comment both come back
// as ErrNotFound.
func Update(db *gorm.DB, commentID, actorID uint, content string) (*Comment, error) {
	trimmed, err := ValidateContent(content)
	if err != nil {
		return nil, err
	}

	res := db.Model(&Comment{}).
		Where("id = ? AND user_id = ?", commentID, actorID).
		Update("content", trimmed)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var out Comment
	if err := db.Preload("User").First(&out, commentID).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a comment and its like rows. Owner-scoped like Update.
func Delete(db *gorm.DB, commentID, actorID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", commentID, actorID).Delete(&Comment{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("comment_id = ?", commentID).Delete(&CommentLike{}).Error
	})
}

// Like records that actorID liked a comment, at most once per actor. The
// like row's composite key carries the invariant; the counter bump is a
// storage-side increment so concurrent likes by distinct users all count.
func Like(db *gorm.DB, commentID, actorID uint) (*Comment, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&Comment{}).Where("id = ?", commentID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrCommentMissing
		}

		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&CommentLike{CommentID: commentID, UserID: actorID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyLiked
		}

		bump := tx.Model(&Comment{}).
			Where("id = ?", commentID).
			UpdateColumn("likes", gorm.Expr("likes + 1"))
		if bump.Error != nil {
			return bump.Error
		}
		// The comment vanished between the existence check and here; roll
		// back so the like row does not outlive it.
		if bump.RowsAffected == 0 {
			return ErrCommentMissing
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var out Comment
	if err := db.Preload("User").First(&out, commentID).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// PurgeUser removes everything a departing user contributed to the
// comment tables: their like marks (with the counters walked back), the
// likes on their comments, and the comments themselves.
func PurgeUser(db *gorm.DB, userID uint) error {
	liked := db.Model(&CommentLike{}).Select("comment_id").Where("user_id = ?", userID)
	err := db.Model(&Comment{}).
		Where("id IN (?)", liked).
		UpdateColumn("likes", gorm.Expr("likes - 1")).Error
	if err != nil {
		return err
	}
	if err := db.Where("user_id = ?", userID).Delete(&CommentLike{}).Error; err != nil {
		return err
	}

	owned := db.Model(&Comment{}).Select("id").Where("user_id = ?", userID)
	if err := db.Where("comment_id IN (?)", owned).Delete(&CommentLike{}).Error; err != nil {
		return err
	}
	return db.Where("user_id = ?", userID).Delete(&Comment{}).Error
}
