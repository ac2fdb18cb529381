package httputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	p := NewPage(1, 10, 25)
	assert.EqualValues(t, 3, p.TotalPages)
	assert.True(t, p.HasNextPage)
	assert.False(t, p.HasPrevPage)
	assert.Equal(t, 0, p.Offset())

	p = NewPage(3, 10, 25)
	assert.False(t, p.HasNextPage)
	assert.True(t, p.HasPrevPage)
	assert.Equal(t, 20, p.Offset())

	// page*limit == total is the boundary: no next page.
	p = NewPage(2, 10, 20)
	assert.False(t, p.HasNextPage)

	p = NewPage(1, 10, 0)
	assert.EqualValues(t, 0, p.TotalPages)
	assert.False(t, p.HasNextPage)
}
