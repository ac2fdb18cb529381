package httputil

import "github.com/gin-gonic/gin"

// OK writes the standard success envelope. Extra fields from data are
// merged into the envelope rather than nested, matching the API contract.
func OK(c *gin.Context, status int, message string, data gin.H) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range data {
		body[k] = v
	}
	c.JSON(status, body)
}

// Error writes the standard failure envelope.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// ValidationError writes a 400 with per-field messages.
func ValidationError(c *gin.Context, errs []string) {
	c.JSON(400, gin.H{"success": false, "message": "Validation failed", "errors": errs})
}

// AbortError is Error followed by aborting the handler chain, for use in
// middleware.
func AbortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}
