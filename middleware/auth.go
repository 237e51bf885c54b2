package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"clinicore/utils"
)

// StaffAuthMiddleware guards the staff-only surface: schedule and leave
// management, lifecycle transitions, and queue reads. It verifies the bearer
// token and exposes the staff and clinic identifiers in the request context.
func StaffAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		staffID, clinicID, err := utils.ExtractStaffClaims(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("staffID", staffID)
		c.Set("staffClinicID", clinicID)
		c.Next()
	}
}
