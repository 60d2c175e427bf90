package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/ahmetkoprulu/battlepass/common/utils"
	"github.com/ahmetkoprulu/battlepass/models"
	"github.com/gin-gonic/gin"
)

const UserIDKey = "userID"

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ApiResponse[any]{
		Success: false,
		Status:  models.StatusUnauthorized,
		Message: message,
	})
}

// AuthMiddleware verifies the bearer token issued by the auth provider and
// exposes its user id under UserIDKey
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "authorization header is required")
			return
		}

		token, ok := utils.GetBearerToken(authHeader)
		if !ok {
			unauthorized(c, "invalid authorization header format")
			return
		}

		claims, err := utils.ValidateJwTTokenWithClaims(token)
		if err != nil {
			unauthorized(c, err.Error())
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// ServerToServerAuthMiddleware guards admin routes with a shared token. An
// empty token disables every admin route.
func ServerToServerAuthMiddleware(adminToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "authorization header is required")
			return
		}

		token, ok := utils.GetBearerToken(authHeader)
		if !ok {
			unauthorized(c, "invalid authorization header format")
			return
		}

		if adminToken == "" || subtle.ConstantTimeCompare([]byte(token), []byte(adminToken)) != 1 {
			unauthorized(c, "invalid token")
			return
		}

		c.Next()
	}
}
