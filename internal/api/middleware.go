package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drivelane/driving-school-backend/internal/auth"
	"github.com/drivelane/driving-school-backend/internal/user"
)

// RequireAdmin ensures the authenticated user is an admin.
// It MUST be used after auth.AuthRequired middleware.
func RequireAdmin(userService user.Service) gin.HandlerFunc {
	return requireRole(userService, user.RoleAdmin)
}

// RequireInstructor ensures the authenticated user is an instructor.
// Admins pass too. It MUST be used after auth.AuthRequired middleware.
func RequireInstructor(userService user.Service) gin.HandlerFunc {
	return requireRole(userService, user.RoleInstructor, user.RoleAdmin)
}

// requireRole re-reads the user from storage rather than trusting the role
// claim alone, so a revoked role takes effect before token expiry.
func requireRole(userService user.Service, roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := auth.GetUserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		u, err := userService.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		for _, role := range roles {
			if u.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: insufficient role"})
	}
}
