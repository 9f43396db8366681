package catalog

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/philmer-vdm/gamesess/config"
	"github.com/philmer-vdm/gamesess/internal/middleware"
)

func RegisterGameRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	gameRepo := NewGameRepository(db)
	gameController := NewGameController(gameRepo, appConfig)

	publicGames := router.Group("/games")
	{
		publicGames.GET("", gameController.ListGames)
		publicGames.GET("/:game_id", gameController.GetGame)
		publicGames.GET("/:game_id/children", gameController.GetChildren)
	}

	authenticated := router.Group("/games")
	authenticated.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		authenticated.POST("", gameController.CreateGame)
		authenticated.PUT("/:game_id", gameController.UpdateGame)
		authenticated.PUT("/:game_id/parent", gameController.SetParent)
		authenticated.DELETE("/:game_id", gameController.DeactivateGame)
	}
}
