package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CorrectUserMiddleware ensures the authenticated user matches the
// :username route parameter. There is no role model; the only
// authorization question is "is this the named user".
func CorrectUserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authVal, exists := c.Get(AuthUserKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found in context, ensure JWT middleware runs first"})
			return
		}

		authUser, ok := authVal.(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid user type in context"})
			return
		}

		if authUser != c.Param("username") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
			return
		}

		c.Next()
	}
}
