package middleware

import (
	"net/http"
	"strings"

	"github.com/AbhishekS200607/quickaid/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdminClaimsKey holds the verified *utils.AdminClaims in the gin context
const AdminClaimsKey = "adminClaims"

// AdminAuthMiddleware rejects the request unless it carries a valid admin bearer token
func AdminAuthMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		claims, err := jwtUtil.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(AdminClaimsKey, claims)
		c.Next()
	}
}
