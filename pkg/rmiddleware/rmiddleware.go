package rmiddleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/philmer-vdm/gamesess/internal/middleware"
)

const ClubRoleKey = "club_role"

// ClubRoleMiddleware gates a club-scoped route on the acting gamer holding
// one of the required roles in the club named by the :club_id path param.
// The active membership row is probed directly, keeping this package free of
// the feature packages that stack it onto their routes.
func ClubRoleMiddleware(db *gorm.DB, requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		gamerID, err := middleware.GetGamerIDFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: " + err.Error()})
			return
		}

		clubID, err := strconv.ParseUint(c.Param("club_id"), 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid club id"})
			return
		}

		var role string
		err = db.Table("gamer_clubs").
			Select("role").
			Where("gamer_id = ? AND club_id = ? AND active = ?", gamerID, clubID, true).
			Scan(&role).Error
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve club role"})
			return
		}

		hasRequiredRole := false
		for _, required := range requiredRoles {
			if strings.EqualFold(role, required) {
				hasRequiredRole = true
				break
			}
		}

		if !hasRequiredRole {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "Forbidden",
				"message": "You don't have permission to access this club resource",
			})
			return
		}

		c.Set(ClubRoleKey, role)
		c.Next()
	}
}

// ManagerMiddleware is a convenience middleware for club-manager-only access.
func ManagerMiddleware(db *gorm.DB) gin.HandlerFunc {
	return ClubRoleMiddleware(db, "manager")
}

// MemberMiddleware allows any active club member, manager or user.
func MemberMiddleware(db *gorm.DB) gin.HandlerFunc {
	return ClubRoleMiddleware(db, "manager", "user")
}
