package auth

import (
	"time"

	"gorm.io/gorm"

	"github.com/philmer-vdm/gamesess/internal/gamer"
)

// RefreshToken is a persisted long-lived credential; revocation is a row
// update, so stolen tokens can be cut off server-side.
type RefreshToken struct {
	gorm.Model
	GamerID   uint      `gorm:"index;not null"`
	Token     string    `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Revoked   bool      `gorm:"default:false"`
}

type RegisterRequest struct {
	Login     string `json:"login" binding:"required,min=3,max=50" example:"philmer"`
	Email     string `json:"email" binding:"required,email" example:"philmer.vdm@gmail.com"`
	Password  string `json:"password" binding:"required,min=8,max=72" example:"password123"`
	FirstName string `json:"first_name,omitempty" example:"Philippe"`
	LastName  string `json:"last_name,omitempty" example:"VANDERMEER"`
	Surname   string `json:"surname,omitempty" example:"Philmer"`
	Birthdate string `json:"birthdate,omitempty" example:"1975-04-21"` // YYYY-MM-DD
}

type LoginRequest struct {
	LoginIdentifier string `json:"login_identifier" binding:"required" example:"philmer"` // Can be login or email
	Password        string `json:"password" binding:"required" example:"password123"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
	PasswordConfirm string `json:"password_confirm" binding:"required,eqfield=NewPassword"`
}

type LogoutRequest struct {
	RefreshToken          string `json:"refresh_token"`
	InvalidateAllSessions bool   `json:"invalidate_all_sessions"`
}

type AuthResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	Gamer        GamerResponse `json:"gamer"`
}

type GamerResponse struct {
	ID          uint       `json:"id"`
	DisplayName string     `json:"display_name"`
	Login       string     `json:"login"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Surname     string     `json:"surname"`
	Birthdate   *time.Time `json:"birthdate,omitempty"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
	Active      bool       `json:"active"`
	Created     time.Time  `json:"created"`
	Modified    time.Time  `json:"modified"`
}

func FilterGamerRecord(g *gamer.Gamer) GamerResponse {
	return GamerResponse{
		ID:          g.ID,
		DisplayName: g.DisplayName(),
		Login:       g.Login,
		Email:       g.Email,
		FirstName:   g.FirstName,
		LastName:    g.LastName,
		Surname:     g.Surname,
		Birthdate:   g.Birthdate,
		LastLogin:   g.LastLogin,
		Active:      g.Active,
		Created:     g.Created,
		Modified:    g.Modified,
	}
}
