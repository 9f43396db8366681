package session

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/philmer-vdm/gamesess/config"
	"github.com/philmer-vdm/gamesess/internal/catalog"
	"github.com/philmer-vdm/gamesess/internal/club"
	"github.com/philmer-vdm/gamesess/internal/middleware"
	"github.com/philmer-vdm/gamesess/pkg/rmiddleware"
)

func RegisterSessionRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	sessionRepo := NewSessionRepository(db)
	gameRepo := catalog.NewGameRepository(db)
	clubRepo := club.NewClubRepository(db)
	sessionController := NewSessionController(sessionRepo, gameRepo, clubRepo, appConfig)

	// Session and table detail pages match the legacy URL scheme.
	publicSessions := router.Group("/sessions")
	{
		publicSessions.GET("/:session_id", sessionController.GetSession)
		publicSessions.GET("/:session_id/tables", sessionController.ListTables)
	}
	publicTables := router.Group("/tables")
	{
		publicTables.GET("/:table_id", sessionController.GetTable)
	}

	// Club-scoped scheduling: members see the calendar, managers change it.
	clubScoped := router.Group("/clubs/:club_id/sessions")
	clubScoped.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		memberOnly := clubScoped.Group("")
		memberOnly.Use(rmiddleware.MemberMiddleware(db))
		{
			memberOnly.GET("", sessionController.ListSessions)
		}

		managerOnly := clubScoped.Group("")
		managerOnly.Use(rmiddleware.ManagerMiddleware(db))
		{
			managerOnly.POST("", sessionController.CreateSession)
		}
	}

	authSessions := router.Group("/sessions")
	authSessions.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		authSessions.PUT("/:session_id", sessionController.UpdateSession)
		authSessions.DELETE("/:session_id", sessionController.DeactivateSession)
		authSessions.POST("/:session_id/tables", sessionController.CreateTable)
	}

	authTables := router.Group("/tables")
	authTables.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		authTables.PUT("/:table_id", sessionController.UpdateTable)
		authTables.DELETE("/:table_id", sessionController.DeactivateTable)
	}
}
