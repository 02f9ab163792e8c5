package middleware

import (
	"go-marketplace/models"
	"go-marketplace/utils"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const DeviceIDKey = "device_id"

// AuthMiddleware requires a bearer token signed with secret. An empty secret
// disables the check.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: "Authorization header required",
			})
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: "Invalid authorization header format",
			})
			return
		}

		claims, err := utils.ValidateToken(tokenParts[1], secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: "Invalid or expired token",
				Error:   err.Error(),
			})
			return
		}

		c.Set(DeviceIDKey, claims.DeviceID)
		c.Next()
	}
}
