package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/aerodesk/flightops_backend/internal/core/domain"
)

// userIDKey and roleKey carry the authenticated caller through the request
// context. Using a custom type prevents collisions.
const (
	userIDKey = contextKey("userID")
	roleKey   = contextKey("role")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// GetActorFromContext assembles the caller's identity and role from the
// request context. The second return is false when no authenticated caller is
// present.
func GetActorFromContext(c *gin.Context) (domain.Actor, bool) {
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		return domain.Actor{}, false
	}
	role, _ := c.Request.Context().Value(roleKey).(string)
	actor := domain.Actor{
		UserID: userID,
		Role:   domain.Role(role),
	}
	if !actor.Role.Valid() {
		actor.Role = domain.RoleMember
	}
	return actor, true
}
