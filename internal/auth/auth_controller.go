package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/philmer-vdm/gamesess/config"
	"github.com/philmer-vdm/gamesess/internal/apperr"
	"github.com/philmer-vdm/gamesess/internal/gamer"
	"github.com/philmer-vdm/gamesess/internal/middleware"
	"github.com/philmer-vdm/gamesess/pkg/responses"
	"github.com/philmer-vdm/gamesess/pkg/token"
	"github.com/philmer-vdm/gamesess/pkg/validator"
)

type AuthController struct {
	repo   AuthRepository
	config *config.Config
}

func NewAuthController(repo AuthRepository, cfg *config.Config) *AuthController {
	return &AuthController{
		repo:   repo,
		config: cfg,
	}
}

func (ac *AuthController) generateAndSaveTokens(g *gamer.Gamer) (string, string, error) {
	accessToken, err := token.GenerateJWT(g.ID, g.DisplayID(), ac.config.JWT.AccessTokenSecret, ac.config.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		return "", "", fmt.Errorf("access token generation failed: %w", err)
	}

	refreshTokenString, err := token.GenerateRefreshToken(g.ID, g.DisplayID(), ac.config.JWT.RefreshTokenSecret, ac.config.JWT.RefreshTokenExpiryDays)
	if err != nil {
		return "", "", fmt.Errorf("refresh token generation failed: %w", err)
	}

	refreshToken := &RefreshToken{
		GamerID:   g.ID,
		Token:     refreshTokenString,
		ExpiresAt: time.Now().AddDate(0, 0, ac.config.JWT.RefreshTokenExpiryDays),
	}
	if err := ac.repo.SaveRefreshToken(refreshToken); err != nil {
		return "", "", fmt.Errorf("failed to save refresh token: %w", err)
	}
	return accessToken, refreshTokenString, nil
}

// @Summary      Register a new gamer
// @Description  Create a gamer account with login, email and password.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        gamer  body  RegisterRequest  true  "Registration details"
// @Success      201   {object} AuthResponse "Gamer registered, returns tokens and profile"
// @Failure      400   {object} responses.ErrorResponse "Validation error or invalid input"
// @Failure      409   {object} responses.ErrorResponse "Login or email already taken"
// @Failure      500   {object} responses.ErrorResponse "Internal server error"
// @Router       /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	if _, err := ac.repo.GetGamerByLogin(req.Login); !errors.Is(err, apperr.ErrNotFound) {
		if err == nil {
			responses.SendError(c, http.StatusConflict, "A gamer with this login already exists")
		} else {
			responses.SendDomainError(c, err)
		}
		return
	}
	if _, err := ac.repo.GetGamerByEmail(strings.ToLower(req.Email)); !errors.Is(err, apperr.ErrNotFound) {
		if err == nil {
			responses.SendError(c, http.StatusConflict, "A gamer with this email already exists")
		} else {
			responses.SendDomainError(c, err)
		}
		return
	}

	newGamer := &gamer.Gamer{
		Login:     req.Login,
		Email:     strings.ToLower(req.Email),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Surname:   req.Surname,
	}
	if req.Birthdate != "" {
		bd, err := time.Parse("2006-01-02", req.Birthdate)
		if err != nil {
			responses.BadRequest(c, "Invalid birthdate, expected YYYY-MM-DD")
			return
		}
		newGamer.Birthdate = &bd
	}
	if err := newGamer.SetPassword(req.Password); err != nil {
		responses.InternalServerError(c, "Error hashing password")
		return
	}

	// Self-registration: the new gamer is their own creator once the row
	// exists, but at insert time there is no actor yet.
	if err := ac.repo.CreateGamer(newGamer, nil); err != nil {
		responses.SendDomainError(c, err)
		return
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(newGamer)
	if err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Gamer:        FilterGamerRecord(newGamer),
	})
}

// @Summary      Login
// @Description  Authenticate with login or email plus password.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials  body  LoginRequest  true  "Login credentials"
// @Success      200   {object} AuthResponse "Login successful"
// @Failure      400   {object} responses.ErrorResponse "Invalid input"
// @Failure      401   {object} responses.ErrorResponse "Invalid credentials"
// @Failure      500   {object} responses.ErrorResponse "Internal server error"
// @Router       /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	principal, ok, err := Authenticate(ac.repo, req.LoginIdentifier, req.Password)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	if !ok {
		responses.SendDomainError(c, apperr.ErrCredentialMismatch)
		return
	}

	g, err := ac.repo.GetGamerByID(principal.GamerID)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(g)
	if err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Gamer:        FilterGamerRecord(g),
	})
}

// @Summary      Refresh Access Token
// @Description  Exchanges a valid refresh token for a new access token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RefreshTokenRequest true "Refresh token"
// @Success      200 {object} map[string]string "Returns a new access token"
// @Failure      400 {object} responses.ErrorResponse "Invalid input"
// @Failure      401 {object} responses.ErrorResponse "Invalid or expired refresh token"
// @Failure      500 {object} responses.ErrorResponse "Token generation failed"
// @Router       /auth/refresh-token [post]
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	rt, err := ac.repo.GetRefreshToken(req.RefreshToken)
	if err != nil {
		responses.Unauthorized(c, "Invalid or expired refresh token")
		return
	}

	g, err := ac.repo.GetGamerByID(rt.GamerID)
	if err != nil || !g.Active {
		responses.Unauthorized(c, "Invalid or expired refresh token")
		return
	}

	newAccessToken, err := token.GenerateJWT(g.ID, g.DisplayID(), ac.config.JWT.AccessTokenSecret, ac.config.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		responses.InternalServerError(c, "New access token generation failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": newAccessToken})
}

// @Summary      Get own profile
// @Description  Retrieves the profile of the currently authenticated gamer.
// @Tags         Auth
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} GamerResponse "Profile data"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      404 {object} responses.ErrorResponse "Gamer not found"
// @Router       /auth/me [get]
func (ac *AuthController) GetProfile(c *gin.Context) {
	gamerID, err := middleware.GetGamerIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	g, err := ac.repo.GetGamerByID(gamerID)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, FilterGamerRecord(g))
}

// @Summary      Change password
// @Description  Replaces the password after checking the old one.
// @Tags         Auth
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body ChangePasswordRequest true "Old and new password"
// @Success      200 {object} responses.SuccessResponse "Password changed"
// @Failure      400 {object} responses.ErrorResponse "Invalid input"
// @Failure      401 {object} responses.ErrorResponse "Wrong old password"
// @Router       /auth/change-password [post]
func (ac *AuthController) ChangePassword(c *gin.Context) {
	gamerID, err := middleware.GetGamerIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	g, err := ac.repo.GetGamerByID(gamerID)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}

	if !g.VerifyPassword(req.OldPassword) {
		responses.SendDomainError(c, apperr.ErrCredentialMismatch)
		return
	}
	if err := g.SetPassword(req.NewPassword); err != nil {
		responses.InternalServerError(c, "Error hashing password")
		return
	}
	if err := ac.repo.UpdateGamer(g, &g.ID); err != nil {
		responses.SendDomainError(c, err)
		return
	}

	// Other sessions keep working until their refresh tokens expire unless
	// the client asks for a full logout.
	responses.SendSuccess(c, http.StatusOK, "Password changed successfully", nil)
}

// @Summary      Logout
// @Description  Revokes the given refresh token, or all of the gamer's sessions.
// @Tags         Auth
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body LogoutRequest true "Logout options"
// @Success      200 {object} responses.SuccessResponse "Logged out"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Router       /auth/logout [post]
func (ac *AuthController) Logout(c *gin.Context) {
	gamerID, err := middleware.GetGamerIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	if req.InvalidateAllSessions {
		if err := ac.repo.InvalidateAllRefreshTokensForGamer(gamerID); err != nil {
			responses.SendDomainError(c, err)
			return
		}
	} else if req.RefreshToken != "" {
		if err := ac.repo.InvalidateRefreshToken(req.RefreshToken); err != nil {
			responses.SendDomainError(c, err)
			return
		}
	}

	responses.SendSuccess(c, http.StatusOK, "Logged out successfully", nil)
}
