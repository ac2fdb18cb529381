package comments

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/reelworthy/reelworthy-core/internal/httputil"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

type createDTO struct {
	Content string `json:"content" binding:"required"`
}

type updateDTO struct {
	Content string `json:"content" binding:"required"`
}

// ListHandler returns a page of a movie's comments.
func (h *Handler) ListHandler(c *gin.Context) {
	movieID := c.Param("movieId")
	page, limit := httputil.PageParams(c)
	sortBy := c.DefaultQuery("sortBy", "newest")

	list, total, err := List(h.db, movieID, page, limit, sortBy)
	if err != nil {
		log.Printf("error fetching comments: %v", err)
		httputil.Error(c, http.StatusInternalServerError, "Failed to fetch comments")
		return
	}

	httputil.OK(c, http.StatusOK, "", gin.H{
		"comments":   toResponses(list),
		"pagination": httputil.NewPage(page, limit, total),
	})
}

func (h *Handler) CreateHandler(c *gin.Context) {
	uid, ok := httputil.CurrentUserID(c)
	if !ok {
		httputil.Error(c, http.StatusUnauthorized, "Unauthenticated")
		return
	}

	var body createDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		httputil.Error(c, http.StatusBadRequest, "Comment content is required")
		return
	}

	cm, err := Create(h.db, uid, c.Param("movieId"), body.Content)
	if err != nil {
		switch {
		case errors.Is(err, ErrContentEmpty), errors.Is(err, ErrContentTooLong):
			httputil.Error(c, http.StatusBadRequest, err.Error())
		default:
			log.Printf("error creating comment: %v", err)
			httputil.Error(c, http.StatusInternalServerError, "Failed to create comment")
		}
		return
	}

	httputil.OK(c, http.StatusCreated, "Comment created successfully", gin.H{"comment": toResponse(cm)})
}

func (h *Handler) UpdateHandler(c *gin.Context) {
	uid, _ := httputil.CurrentUserID(c)
	commentID, err := strconv.ParseUint(c.Param("commentId"), 10, 64)
	if err != nil {
		httputil.Error(c, http.StatusBadRequest, "Invalid comment ID")
		return
	}

	var body updateDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		httputil.Error(c, http.StatusBadRequest, "Comment content is required")
		return
	}

	cm, err := Update(h.db, uint(commentID), uid, body.Content)
	if err != nil {
		switch {
		case errors.Is(err, ErrContentEmpty), errors.Is(err, ErrContentTooLong):
			httputil.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrNotFound):
			httputil.Error(c, http.StatusNotFound, "Comment not found or unauthorized")
		default:
			log.Printf("error updating comment: %v", err)
			httputil.Error(c, http.StatusInternalServerError, "Failed to update comment")
		}
		return
	}

	httputil.OK(c, http.StatusOK, "Comment updated successfully", gin.H{"comment": toResponse(cm)})
}

func (h *Handler) DeleteHandler(c *gin.Context) {
	uid, _ := httputil.CurrentUserID(c)
	commentID, err := strconv.ParseUint(c.Param("commentId"), 10, 64)
	if err != nil {
		httputil.Error(c, http.StatusBadRequest, "Invalid comment ID")
		return
	}

	if err := Delete(h.db, uint(commentID), uid); err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.Error(c, http.StatusNotFound, "Comment not found or unauthorized")
			return
		}
		log.Printf("error deleting comment: %v", err)
		httputil.Error(c, http.StatusInternalServerError, "Failed to delete comment")
		return
	}

	httputil.OK(c, http.StatusOK, "Comment deleted successfully", nil)
}

// LikeHandler marks the comment liked by the caller. Any authenticated
// user may like any comment, once.
func (h *Handler) LikeHandler(c *gin.Context) {
	uid, _ := httputil.CurrentUserID(c)
	commentID, err := strconv.ParseUint(c.Param("commentId"), 10, 64)
	if err != nil {
		httputil.Error(c, http.StatusBadRequest, "Invalid comment ID")
		return
	}

	cm, err := Like(h.db, uint(commentID), uid)
	if err != nil {
		switch {
		case errors.Is(err, ErrCommentMissing):
			httputil.Error(c, http.StatusNotFound, "Comment not found")
		case errors.Is(err, ErrAlreadyLiked):
			httputil.Error(c, http.StatusBadRequest, "You already liked this comment")
		default:
			log.Printf("error liking comment: %v", err)
			httputil.Error(c, http.StatusInternalServerError, "Failed to like comment")
		}
		return
	}

	httputil.OK(c, http.StatusOK, "Comment liked successfully", gin.H{"comment": toResponse(cm)})
}
