package club

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/philmer-vdm/gamesess/config"
	"github.com/philmer-vdm/gamesess/internal/middleware"
	"github.com/philmer-vdm/gamesess/internal/models"
	"github.com/philmer-vdm/gamesess/pkg/responses"
	"github.com/philmer-vdm/gamesess/pkg/validator"
)

type ClubController struct {
	repo   ClubRepository
	config *config.Config
}

func NewClubController(repo ClubRepository, cfg *config.Config) *ClubController {
	return &ClubController{repo: repo, config: cfg}
}

type CreateClubRequest struct {
	Name        string `json:"name" binding:"required" example:"Bibliothèque de Mormont"`
	Description string `json:"description,omitempty"`
	Address     string `json:"address,omitempty"`
	Public      bool   `json:"public"`
}

type UpdateClubRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Address     *string `json:"address,omitempty"`
	Public      *bool   `json:"public,omitempty"`
}

type MemberRequest struct {
	GamerID uint   `json:"gamer_id" binding:"required"`
	Role    string `json:"role" binding:"required" example:"user"` // manager or user
}

type MemberResponse struct {
	GamerID     uint   `json:"gamer_id"`
	DisplayName string `json:"display_name"`
	Role        Role   `json:"role"`
}

// @Summary      Open club directory
// @Description  Lists active public clubs ordered by name.
// @Tags         Clubs
// @Produce      json
// @Success      200 {object} responses.SuccessResponse "Public clubs"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /clubs [get]
func (cc *ClubController) ListPublicClubs(c *gin.Context) {
	clubs, err := cc.repo.ListPublic()
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Public clubs retrieved", clubs)
}

// @Summary      My clubs
// @Description  Lists clubs the authenticated gamer belongs to, any role.
// @Tags         Clubs
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} responses.SuccessResponse "Clubs for the gamer"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Router       /my/clubs [get]
func (cc *ClubController) ListMyClubs(c *gin.Context) {
	gamerID, err := middleware.GetGamerIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	clubs, err := cc.repo.ListForGamer(gamerID)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Clubs retrieved", clubs)
}

// @Summary      Club details
// @Description  Fetches one club. Private clubs are only visible to members.
// @Tags         Clubs
// @Produce      json
// @Param        club_id path int true "Club ID"
// @Success      200 {object} responses.SuccessResponse "Club"
// @Failure      403 {object} responses.ErrorResponse "Private club, not a member"
// @Failure      404 {object} responses.ErrorResponse "Club not found"
// @Router       /clubs/{club_id} [get]
func (cc *ClubController) GetClub(c *gin.Context) {
	clubID, err := parseClubID(c)
	if err != nil {
		responses.BadRequest(c, "Invalid club id")
		return
	}

	found, err := cc.repo.GetByID(clubID)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}

	if !found.Public {
		gamerID, err := middleware.GetGamerIDFromContext(c)
		if err != nil {
			responses.Forbidden(c, "This club is private")
			return
		}
		role, err := cc.repo.RoleFor(gamerID, clubID)
		if err != nil {
			responses.SendDomainError(c, err)
			return
		}
		if !role.CanParticipate() {
			responses.Forbidden(c, "This club is private")
			return
		}
	}

	responses.SendSuccess(c, http.StatusOK, "Club retrieved", found)
}

// @Summary      Create a club
// @Description  Creates a club; the creator becomes its first manager.
// @Tags         Clubs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        club body CreateClubRequest true "Club details"
// @Success      201 {object} responses.SuccessResponse "Club created"
// @Failure      400 {object} responses.ErrorResponse "Invalid input"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Router       /clubs [post]
func (cc *ClubController) CreateClub(c *gin.Context) {
	gamerID, err := middleware.GetGamerIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req CreateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	newClub := &Club{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Public:      req.Public,
	}
	if err := cc.repo.Create(newClub, models.Actor(gamerID)); err != nil {
		responses.SendDomainError(c, err)
		return
	}

	if err := cc.repo.AddMember(newClub.ID, gamerID, RoleManager, models.Actor(gamerID)); err != nil {
		responses.SendDomainError(c, err)
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Club created", newClub)
}

// @Summary      Update a club
// @Tags         Clubs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        club_id path int true "Club ID"
// @Param        club body UpdateClubRequest true "Fields to update"
// @Success      200 {object} responses.SuccessResponse "Club updated"
// @Failure      403 {object} responses.ErrorResponse "Manager role required"
// @Failure      404 {object} responses.ErrorResponse "Club not found"
// @Router       /clubs/{club_id} [put]
func (cc *ClubController) UpdateClub(c *gin.Context) {
	gamerID, err := middleware.GetGamerIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	clubID, err := parseClubID(c)
	if err != nil {
		responses.BadRequest(c, "Invalid club id")
		return
	}

	var req UpdateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	found, err := cc.repo.GetByID(clubID)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}

	if req.Name != nil {
		found.Name = *req.Name
	}
	if req.Description != nil {
		found.Description = *req.Description
	}
	if req.Address != nil {
		found.Address = *req.Address
	}
	if req.Public != nil {
		found.Public = *req.Public
	}

	if err := cc.repo.Update(found, models.Actor(gamerID)); err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Club updated", found)
}

// @Summary      Deactivate a club
// @Description  Soft-deletes the club; history stays resolvable.
// @Tags         Clubs
// @Security     BearerAuth
// @Produce      json
// @Param        club_id path int true "Club ID"
// @Success      200 {object} responses.SuccessResponse "Club deactivated"
// @Failure      403 {object} responses.ErrorResponse "Manager role required"
// @Router       /clubs/{club_id} [delete]
func (cc *ClubController) DeactivateClub(c *gin.Context) {
	gamerID, err := middleware.GetGamerIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	clubID, err := parseClubID(c)
	if err != nil {
		responses.BadRequest(c, "Invalid club id")
		return
	}

	if err := cc.repo.Deactivate(clubID, models.Actor(gamerID)); err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Club deactivated", nil)
}

// @Summary      List club members
// @Tags         Clubs
// @Security     BearerAuth
// @Produce      json
// @Param        club_id path int true "Club ID"
// @Success      200 {object} responses.SuccessResponse "Members"
// @Failure      403 {object} responses.ErrorResponse "Membership required"
// @Router       /clubs/{club_id}/members [get]
func (cc *ClubController) ListMembers(c *gin.Context) {
	clubID, err := parseClubID(c)
	if err != nil {
		responses.BadRequest(c, "Invalid club id")
		return
	}

	members, err := cc.repo.ListMembers(clubID)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}

	out := make([]MemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, MemberResponse{
			GamerID:     m.GamerID,
			DisplayName: m.Gamer.DisplayName(),
			Role:        m.Role,
		})
	}
	responses.SendSuccess(c, http.StatusOK, "Members retrieved", out)
}

// @Summary      Add a club member
// @Tags         Clubs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        club_id path int true "Club ID"
// @Param        member body MemberRequest true "Gamer and role"
// @Success      201 {object} responses.SuccessResponse "Member added"
// @Failure      400 {object} responses.ErrorResponse "Invalid role or duplicate member"
// @Failure      403 {object} responses.ErrorResponse "Manager role required"
// @Router       /clubs/{club_id}/members [post]
func (cc *ClubController) AddMember(c *gin.Context) {
	gamerID, err := middleware.GetGamerIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	clubID, err := parseClubID(c)
	if err != nil {
		responses.BadRequest(c, "Invalid club id")
		return
	}

	var req MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	if err := cc.repo.AddMember(clubID, req.GamerID, ParseRole(req.Role), models.Actor(gamerID)); err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Member added", nil)
}

// @Summary      Change a member's role
// @Tags         Clubs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        club_id path int true "Club ID"
// @Param        member body MemberRequest true "Gamer and new role"
// @Success      200 {object} responses.SuccessResponse "Role changed"
// @Failure      403 {object} responses.ErrorResponse "Manager role required"
// @Router       /clubs/{club_id}/members [put]
func (cc *ClubController) ChangeMemberRole(c *gin.Context) {
	gamerID, err := middleware.GetGamerIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	clubID, err := parseClubID(c)
	if err != nil {
		responses.BadRequest(c, "Invalid club id")
		return
	}

	var req MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	if err := cc.repo.ChangeMemberRole(clubID, req.GamerID, ParseRole(req.Role), models.Actor(gamerID)); err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Member role changed", nil)
}

// @Summary      Remove a club member
// @Description  Deactivates the membership row; the row itself is kept.
// @Tags         Clubs
// @Security     BearerAuth
// @Produce      json
// @Param        club_id path int true "Club ID"
// @Param        gamer_id path int true "Gamer ID"
// @Success      200 {object} responses.SuccessResponse "Member removed"
// @Failure      403 {object} responses.ErrorResponse "Manager role required"
// @Failure      404 {object} responses.ErrorResponse "Membership not found"
// @Router       /clubs/{club_id}/members/{gamer_id} [delete]
func (cc *ClubController) RemoveMember(c *gin.Context) {
	gamerID, err := middleware.GetGamerIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	clubID, err := parseClubID(c)
	if err != nil {
		responses.BadRequest(c, "Invalid club id")
		return
	}
	memberID, err := strconv.ParseUint(c.Param("gamer_id"), 10, 64)
	if err != nil {
		responses.BadRequest(c, "Invalid gamer id")
		return
	}

	if err := cc.repo.RemoveMember(clubID, uint(memberID), models.Actor(gamerID)); err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Member removed", nil)
}

func parseClubID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("club_id"), 10, 64)
	return uint(id), err
}
