package httputil

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Page describes one page of a list response.
type Page struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int64 `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// NewPage computes pagination metadata for a total row count.
func NewPage(page, limit int, total int64) Page {
	totalPages := (total + int64(limit) - 1) / int64(limit)
	return Page{
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNextPage: int64(page)*int64(limit) < total,
		HasPrevPage: page > 1,
	}
}

// Offset is the row offset for this page.
func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageParams reads page/limit query parameters, clamping to sane bounds.
func PageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}
