package middleware

import (
	"strings"

	"fupa/errors"
	"fupa/response"
	"fupa/services"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// BearerToken reads the access token from the Authorization header, falling
// back to the token query parameter used by websocket clients.
func BearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return c.Query("token")
}

// AuthMiddleware authenticates the request and, when roles are given,
// requires one of them.
func AuthMiddleware(secret []byte, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := BearerToken(c)
		if tokenString == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		info, err := services.GetUserFromToken(secret, tokenString)
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		if len(roles) > 0 && !hasRole(info.Role, roles) {
			response.Forbidden(c)
			c.Abort()
			return
		}

		c.Set(ContextUserID, info.UserID)
		c.Set(ContextUserRole, info.Role)
		c.Next()
	}
}

// RoleMiddleware checks the role set by AuthMiddleware
func RoleMiddleware(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get(ContextUserRole)
		if !exists {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		role, _ := userRole.(string)
		if !hasRole(role, roles) {
			response.Forbidden(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

func hasRole(role string, roles []string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// ErrorHandler writes the last error attached with c.Error, if the handler
// has not already responded.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		if errors.IsAppError(err) {
			response.AppError(c, err)
			return
		}
		response.ServerError(c)
	}
}
