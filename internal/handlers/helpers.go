package handlers

import "github.com/gin-gonic/gin"

// userEmail reads the address the session guard stored on the context.
func userEmail(c *gin.Context) string {
	v, ok := c.Get("user_email")
	if !ok {
		return ""
	}
	if email, ok := v.(string); ok {
		return email
	}
	return ""
}
