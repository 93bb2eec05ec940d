package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mathsolver/internal/service"
)

const (
	ContextKeyOperator = "operator"
	ContextKeyClaims   = "claims"
)

// AuthMiddleware returns Gin middleware that validates operator tokens on
// mutating endpoints.
func AuthMiddleware(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "missing or invalid authorization header"},
			})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := tokens.Validate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "invalid or expired token"},
			})
			return
		}

		c.Set(ContextKeyOperator, claims.Name)
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetOperator extracts the operator name from the Gin context.
func GetOperator(c *gin.Context) string {
	val, exists := c.Get(ContextKeyOperator)
	if !exists {
		return ""
	}
	return val.(string)
}
