package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/philmer-vdm/gamesess/pkg/token"
)

const (
	AuthGamerIDKey = "auth_gamer_id"
)

// AuthMiddleware validates the bearer token and resolves the acting gamer.
// A deactivated account is rejected even with a still-valid token.
func AuthMiddleware(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header format. Expected: Bearer <token>"})
			return
		}

		claims, err := token.ValidateJWT(bearerToken[1], jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token: " + err.Error()})
			return
		}

		var exists bool
		if err := db.Table("gamers").Select("active").Where("id = ?", claims.GamerID).Scan(&exists).Error; err != nil || !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Gamer not found or inactive"})
			return
		}

		c.Set(AuthGamerIDKey, claims.GamerID)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the acting gamer when a valid bearer token
// is present and continues anonymously otherwise. Used on routes that are
// open to everyone but reveal more to members, like private club pages.
func OptionalAuthMiddleware(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
			c.Next()
			return
		}

		claims, err := token.ValidateJWT(bearerToken[1], jwtSecret)
		if err != nil {
			c.Next()
			return
		}

		var exists bool
		if err := db.Table("gamers").Select("active").Where("id = ?", claims.GamerID).Scan(&exists).Error; err != nil || !exists {
			c.Next()
			return
		}

		c.Set(AuthGamerIDKey, claims.GamerID)
		c.Next()
	}
}

// GetGamerIDFromContext extracts the acting gamer's ID from the context.
func GetGamerIDFromContext(c *gin.Context) (uint, error) {
	gamerID, exists := c.Get(AuthGamerIDKey)
	if !exists {
		return 0, errors.New("gamer ID not found in context")
	}

	gid, ok := gamerID.(uint)
	if !ok {
		return 0, fmt.Errorf("gamer ID has unexpected type: %T", gamerID)
	}

	return gid, nil
}
