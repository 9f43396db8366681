package auth

import (
	"time"

	"gorm.io/gorm"

	"github.com/philmer-vdm/gamesess/internal/apperr"
	"github.com/philmer-vdm/gamesess/internal/gamer"
)

type AuthRepository interface {
	CreateGamer(g *gamer.Gamer, actorID *uint) error
	GetGamerByID(id uint) (*gamer.Gamer, error)
	GetGamerByLogin(login string) (*gamer.Gamer, error)
	GetGamerByEmail(email string) (*gamer.Gamer, error)
	UpdateGamer(g *gamer.Gamer, actorID *uint) error

	SaveRefreshToken(token *RefreshToken) error
	GetRefreshToken(tokenString string) (*RefreshToken, error)
	InvalidateRefreshToken(tokenString string) error
	InvalidateAllRefreshTokensForGamer(gamerID uint) error
}

type authRepository struct {
	db     *gorm.DB
	gamers gamer.GamerRepository
}

func NewAuthRepository(db *gorm.DB) AuthRepository {
	return &authRepository{db: db, gamers: gamer.NewGamerRepository(db)}
}

func (r *authRepository) CreateGamer(g *gamer.Gamer, actorID *uint) error {
	return r.gamers.Create(g, actorID)
}

func (r *authRepository) GetGamerByID(id uint) (*gamer.Gamer, error) {
	return r.gamers.GetByID(id)
}

func (r *authRepository) GetGamerByLogin(login string) (*gamer.Gamer, error) {
	return r.gamers.GetByLogin(login)
}

func (r *authRepository) GetGamerByEmail(email string) (*gamer.Gamer, error) {
	return r.gamers.GetByEmail(email)
}

func (r *authRepository) UpdateGamer(g *gamer.Gamer, actorID *uint) error {
	return r.gamers.Update(g, actorID)
}

func (r *authRepository) SaveRefreshToken(token *RefreshToken) error {
	return apperr.Storage("save refresh token", r.db.Create(token).Error)
}

func (r *authRepository) GetRefreshToken(tokenString string) (*RefreshToken, error) {
	var rt RefreshToken
	err := r.db.Where("token = ? AND expires_at > ? AND revoked = ?", tokenString, time.Now(), false).First(&rt).Error
	if err != nil {
		return nil, apperr.Storage("get refresh token", err)
	}
	return &rt, nil
}

func (r *authRepository) InvalidateRefreshToken(tokenString string) error {
	err := r.db.Model(&RefreshToken{}).Where("token = ?", tokenString).Update("revoked", true).Error
	return apperr.Storage("invalidate refresh token", err)
}

func (r *authRepository) InvalidateAllRefreshTokensForGamer(gamerID uint) error {
	err := r.db.Model(&RefreshToken{}).
		Where("gamer_id = ? AND revoked = ?", gamerID, false).
		Update("revoked", true).Error
	return apperr.Storage("invalidate all refresh tokens", err)
}
