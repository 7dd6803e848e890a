package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRoles aborts with 403 unless the authenticated role is listed.
func RequireRoles(roles ...int) gin.HandlerFunc {
	allowed := make(map[int]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		v, ok := c.Get("role_id")
		roleID, isInt := v.(int)
		if !ok || !isInt || !allowed[roleID] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
