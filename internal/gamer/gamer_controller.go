package gamer

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/philmer-vdm/gamesess/config"
	"github.com/philmer-vdm/gamesess/internal/middleware"
	"github.com/philmer-vdm/gamesess/internal/models"
	"github.com/philmer-vdm/gamesess/pkg/responses"
	"github.com/philmer-vdm/gamesess/pkg/validator"
)

type GamerController struct {
	repo   GamerRepository
	config *config.Config
}

func NewGamerController(repo GamerRepository, cfg *config.Config) *GamerController {
	return &GamerController{repo: repo, config: cfg}
}

type UpdateGamerRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Surname   *string `json:"surname,omitempty"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	Birthdate *string `json:"birthdate,omitempty"` // YYYY-MM-DD
}

type ProfileResponse struct {
	ID          uint   `json:"id"`
	DisplayName string `json:"display_name"`
	Login       string `json:"login"`
	Active      bool   `json:"active"`
}

func filterProfile(g *Gamer) ProfileResponse {
	return ProfileResponse{
		ID:          g.ID,
		DisplayName: g.DisplayName(),
		Login:       g.Login,
		Active:      g.Active,
	}
}

// @Summary      List gamers
// @Tags         Gamers
// @Security     BearerAuth
// @Produce      json
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} responses.PaginatedResponse "Active gamers"
// @Router       /gamers [get]
func (gc *GamerController) ListGamers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	gamers, total, err := gc.repo.List(page, pageSize)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}

	out := make([]ProfileResponse, 0, len(gamers))
	for i := range gamers {
		out = append(out, filterProfile(&gamers[i]))
	}
	responses.SendPaginated(c, http.StatusOK, "Gamers retrieved", out, total, page, pageSize)
}

// @Summary      Gamer details
// @Tags         Gamers
// @Security     BearerAuth
// @Produce      json
// @Param        gamer_id path int true "Gamer ID"
// @Success      200 {object} responses.SuccessResponse "Gamer profile"
// @Failure      404 {object} responses.ErrorResponse "Gamer not found"
// @Router       /gamers/{gamer_id} [get]
func (gc *GamerController) GetGamer(c *gin.Context) {
	gamerID, err := parseGamerID(c)
	if err != nil {
		responses.BadRequest(c, "Invalid gamer id")
		return
	}

	g, err := gc.repo.GetByID(gamerID)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Gamer retrieved", filterProfile(g))
}

// @Summary      Update own profile
// @Tags         Gamers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        profile body UpdateGamerRequest true "Fields to update"
// @Success      200 {object} responses.SuccessResponse "Profile updated"
// @Failure      400 {object} responses.ErrorResponse "Invalid input"
// @Router       /gamers/me [put]
func (gc *GamerController) UpdateProfile(c *gin.Context) {
	gamerID, err := middleware.GetGamerIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req UpdateGamerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	g, err := gc.repo.GetByID(gamerID)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}

	if req.FirstName != nil {
		g.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		g.LastName = *req.LastName
	}
	if req.Surname != nil {
		g.Surname = *req.Surname
	}
	if req.Email != nil {
		g.Email = *req.Email
	}
	if req.Birthdate != nil {
		bd, err := time.Parse("2006-01-02", *req.Birthdate)
		if err != nil {
			responses.BadRequest(c, "Invalid birthdate, expected YYYY-MM-DD")
			return
		}
		g.Birthdate = &bd
	}

	if err := gc.repo.Update(g, models.Actor(gamerID)); err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Profile updated", filterProfile(g))
}

// @Summary      Deactivate own account
// @Description  Soft-deletes the account. Entities the gamer created keep their audit references.
// @Tags         Gamers
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} responses.SuccessResponse "Account deactivated"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Router       /gamers/me [delete]
func (gc *GamerController) DeactivateSelf(c *gin.Context) {
	gamerID, err := middleware.GetGamerIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	if err := gc.repo.Deactivate(gamerID, models.Actor(gamerID)); err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Account deactivated", nil)
}

func parseGamerID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("gamer_id"), 10, 64)
	return uint(id), err
}
