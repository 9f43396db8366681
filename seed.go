package main

import (
	"log"
	"os"

	"gorm.io/gorm"

	"github.com/philmer-vdm/gamesess/internal/gamer"
)

// seedBootstrapAdmin creates the first gamer with no audit actor when the
// gamer table is empty. Every later account is created by an authenticated
// action; only this one is system-seeded.
func seedBootstrapAdmin(db *gorm.DB) error {
	repo := gamer.NewGamerRepository(db)

	total, err := repo.Count()
	if err != nil {
		return err
	}
	if total > 0 {
		return nil
	}

	admin := &gamer.Gamer{
		LastName: "Administrator",
		Surname:  "Admin",
		Login:    "admin",
		Email:    os.Getenv("ADMIN_EMAIL"),
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "change-me-now"
		log.Println("WARNING: ADMIN_PASSWORD not set, bootstrap admin uses the default password.")
	}
	if err := admin.SetPassword(password); err != nil {
		return err
	}

	if err := repo.Create(admin, nil); err != nil {
		return err
	}

	// The bootstrap admin is recorded as its own creator.
	admin.CreateID = &admin.ID
	return repo.Update(admin, &admin.ID)
}
