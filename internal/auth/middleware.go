package auth

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/reelworthy/reelworthy-core/internal/httputil"
)

// RequireAuth verifies the bearer token and stores the caller's identity
// in the request context. Missing or expired tokens answer 401, anything
// else wrong with the token answers 403.
func RequireAuth(tokens *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			httputil.AbortError(c, http.StatusUnauthorized, "No authentication token found. Please log in again.")
			return
		}

		claims, err := tokens.Parse(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				httputil.AbortError(c, http.StatusUnauthorized, "Token has expired. Please log in again.")
				return
			}
			httputil.AbortError(c, http.StatusForbidden, "Invalid token. Please log in again.")
			return
		}

		httputil.SetIdentity(c, claims.UserID, claims.Email, claims.Username)
		c.Next()
	}
}

// RequireSelf rejects requests whose :userId path parameter does not
// match the authenticated caller. Runs after RequireAuth.
func RequireSelf() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := httputil.CurrentUserID(c)
		if !ok {
			httputil.AbortError(c, http.StatusUnauthorized, "No authentication token found. Please log in again.")
			return
		}
		param, err := strconv.ParseUint(c.Param("userId"), 10, 64)
		if err != nil || uint(param) != uid {
			httputil.AbortError(c, http.StatusForbidden, "Unauthorized to act on behalf of this user")
			return
		}
		c.Next()
	}
}
