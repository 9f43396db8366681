package main

import (
	"log"

	_ "github.com/philmer-vdm/gamesess/docs"

	"github.com/philmer-vdm/gamesess/config"
	"github.com/philmer-vdm/gamesess/internal/attendance"
	"github.com/philmer-vdm/gamesess/internal/auth"
	"github.com/philmer-vdm/gamesess/internal/catalog"
	"github.com/philmer-vdm/gamesess/internal/club"
	"github.com/philmer-vdm/gamesess/internal/gamer"
	"github.com/philmer-vdm/gamesess/internal/session"
	"github.com/philmer-vdm/gamesess/routes"
)

// @title Game Club Sessions REST API
// @version 1.0
// @description Scheduling of recurring social gaming events: clubs hold sessions, sessions host tables, gamers register at tables.
// @host localhost:8002
// @BasePath /api
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&gamer.Gamer{}, &auth.RefreshToken{},
		&club.Club{}, &club.GamerClub{},
		&catalog.Game{},
		&session.GameSession{}, &session.GameTable{},
		&attendance.Attendance{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	if err := seedBootstrapAdmin(db); err != nil {
		log.Fatalf("Bootstrap admin seed failed: %v", err)
	}

	r := routes.SetupRoutes(db, cfg)

	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
