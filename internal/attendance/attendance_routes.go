package attendance

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/philmer-vdm/gamesess/config"
	"github.com/philmer-vdm/gamesess/internal/middleware"
	"github.com/philmer-vdm/gamesess/internal/session"
)

func RegisterAttendanceRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	attendanceRepo := NewAttendanceRepository(db)
	sessionRepo := session.NewSessionRepository(db)
	attendanceController := NewAttendanceController(attendanceRepo, sessionRepo, appConfig)

	publicAttendances := router.Group("/tables/:table_id/attendances")
	{
		publicAttendances.GET("", attendanceController.ListAttendees)
	}

	authTableAttendances := router.Group("/tables/:table_id/attendances")
	authTableAttendances.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		authTableAttendances.POST("", attendanceController.Register)
	}

	authAttendances := router.Group("/attendances")
	authAttendances.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		authAttendances.PUT("/:attendance_id", attendanceController.UpdateStatus)
		authAttendances.DELETE("/:attendance_id", attendanceController.Withdraw)
	}

	myAttendances := router.Group("/my")
	myAttendances.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		myAttendances.GET("/attendances", attendanceController.ListMyAttendances)
	}
}
