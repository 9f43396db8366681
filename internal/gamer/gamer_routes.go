package gamer

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/philmer-vdm/gamesess/config"
	"github.com/philmer-vdm/gamesess/internal/middleware"
)

func RegisterGamerRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	gamerRepo := NewGamerRepository(db)
	gamerController := NewGamerController(gamerRepo, appConfig)

	authenticated := router.Group("/gamers")
	authenticated.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		authenticated.GET("", gamerController.ListGamers)
		authenticated.GET("/:gamer_id", gamerController.GetGamer)
		authenticated.PUT("/me", gamerController.UpdateProfile)
		authenticated.DELETE("/me", gamerController.DeactivateSelf)
	}
}
