package httputil

import "github.com/gin-gonic/gin"

const (
	ctxUserID   = "user_id"
	ctxEmail    = "user_email"
	ctxUsername = "user_username"
)

// SetIdentity stores the authenticated caller in the request context.
func SetIdentity(c *gin.Context, id uint, email, username string) {
	c.Set(ctxUserID, id)
	c.Set(ctxEmail, email)
	c.Set(ctxUsername, username)
}

// CurrentUserID returns the authenticated user id, if any.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
