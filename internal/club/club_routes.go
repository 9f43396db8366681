package club

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/philmer-vdm/gamesess/config"
	"github.com/philmer-vdm/gamesess/internal/middleware"
	"github.com/philmer-vdm/gamesess/pkg/rmiddleware"
)

func RegisterClubRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	clubRepo := NewClubRepository(db)
	clubController := NewClubController(clubRepo, appConfig)

	publicClubs := router.Group("/clubs")
	{
		publicClubs.GET("", clubController.ListPublicClubs)
		// Club pages are open, but a member's token must reach the
		// controller so private clubs stay visible to their members.
		publicClubs.GET("/:club_id",
			middleware.OptionalAuthMiddleware(appConfig.JWT.AccessTokenSecret, db),
			clubController.GetClub)
	}

	// "/clubs/mine" would collide with the ":club_id" param route, so the
	// membership view lives under /my.
	myClubs := router.Group("/my")
	myClubs.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		myClubs.GET("/clubs", clubController.ListMyClubs)
	}

	authenticated := router.Group("/clubs")
	authenticated.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		authenticated.POST("", clubController.CreateClub)

		// Members can read the roster; only managers administer the club.
		memberOnly := authenticated.Group("/:club_id")
		memberOnly.Use(rmiddleware.MemberMiddleware(db))
		{
			memberOnly.GET("/members", clubController.ListMembers)
		}

		managerOnly := authenticated.Group("/:club_id")
		managerOnly.Use(rmiddleware.ManagerMiddleware(db))
		{
			managerOnly.PUT("", clubController.UpdateClub)
			managerOnly.DELETE("", clubController.DeactivateClub)
			managerOnly.POST("/members", clubController.AddMember)
			managerOnly.PUT("/members", clubController.ChangeMemberRole)
			managerOnly.DELETE("/members/:gamer_id", clubController.RemoveMember)
		}
	}
}
