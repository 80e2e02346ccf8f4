package security

import (
	"net/http"
	"strings"

	"assetconsole/internal/backend"
	"assetconsole/pkg/models"

	"github.com/gin-gonic/gin"
)

const operatorKey = "operator"

// JWTMiddleware validates the console token and exposes the operator. The
// backend token is attached to the request context for outgoing calls.
func JWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		operator, err := ParseJWT(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(operatorKey, operator)
		c.Request = c.Request.WithContext(backend.WithToken(c.Request.Context(), operator.BackendToken))
		c.Next()
	}
}

func OperatorFromContext(c *gin.Context) models.Operator {
	value, exists := c.Get(operatorKey)
	if !exists {
		return models.Operator{}
	}
	operator, _ := value.(models.Operator)
	return operator
}
