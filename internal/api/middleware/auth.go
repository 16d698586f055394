package middleware

import (
	"net/http"
	"strings"

	"github.com/ewaste-kiosk-backend/internal/auth"
	"github.com/ewaste-kiosk-backend/internal/domain/user"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// UserIDKey is the key used to store the authenticated user ID in the context
	UserIDKey = "uid"

	// RoleKey is the key used to store the authenticated role in the context
	RoleKey = "role"
)

// Authenticate validates the bearer token and stores the caller's identity
// in the gin context. Requests without a valid token are rejected with 401.
func Authenticate(tm *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			abortUnauthorized(c, "Missing bearer token")
			return
		}

		token := strings.TrimSpace(header[len("Bearer "):])
		claims, err := tm.Parse(token)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(RoleKey, claims.Role)

		c.Next()
	}
}

// RequireAdmin rejects requests whose authenticated role is not admin.
// It must run after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(RoleKey)
		if role != string(user.RoleAdmin) {
			correlationID := GetCorrelationID(c)
			response := gin.H{
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Admin privileges required",
				},
			}
			if correlationID != "" {
				response["correlation_id"] = correlationID
			}
			c.AbortWithStatusJSON(http.StatusForbidden, response)
			return
		}
		c.Next()
	}
}

// AuthenticatedUserID returns the caller's user ID from the gin context.
// The boolean is false when the request was not authenticated.
func AuthenticatedUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	raw, ok := v.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// AuthenticatedRole returns the caller's role from the gin context
func AuthenticatedRole(c *gin.Context) (string, bool) {
	v, exists := c.Get(RoleKey)
	if !exists {
		return "", false
	}
	role, ok := v.(string)
	return role, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	correlationID := GetCorrelationID(c)
	response := gin.H{
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	}
	if correlationID != "" {
		response["correlation_id"] = correlationID
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, response)
}
