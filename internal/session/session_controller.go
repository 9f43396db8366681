package session

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/philmer-vdm/gamesess/config"
	"github.com/philmer-vdm/gamesess/internal/catalog"
	"github.com/philmer-vdm/gamesess/internal/club"
	"github.com/philmer-vdm/gamesess/internal/middleware"
	"github.com/philmer-vdm/gamesess/internal/models"
	"github.com/philmer-vdm/gamesess/pkg/responses"
	"github.com/philmer-vdm/gamesess/pkg/validator"
)

type SessionController struct {
	repo   SessionRepository
	games  catalog.GameRepository
	clubs  club.ClubRepository
	config *config.Config
}

func NewSessionController(repo SessionRepository, games catalog.GameRepository, clubs club.ClubRepository, cfg *config.Config) *SessionController {
	return &SessionController{repo: repo, games: games, clubs: clubs, config: cfg}
}

// requireClubRole checks the acting gamer's standing in the club owning the
// session being mutated. Managers administer the schedule itself; any member
// can work with tables. Sends the HTTP failure when the check does not pass.
func (sc *SessionController) requireClubRole(c *gin.Context, gamerID, clubID uint, admin bool) bool {
	role, err := sc.clubs.RoleFor(gamerID, clubID)
	if err != nil {
		responses.SendDomainError(c, err)
		return false
	}
	if admin && !role.CanAdminister() {
		responses.Forbidden(c, "Manager role required in this club")
		return false
	}
	if !admin && !role.CanParticipate() {
		responses.Forbidden(c, "Membership required in this club")
		return false
	}
	return true
}

type CreateSessionRequest struct {
	Name  string    `json:"name" binding:"required" example:"Soirée du 26/5/2017 à Mormont"`
	Begin time.Time `json:"begin" binding:"required" example:"2017-05-26T20:00:00Z"`
	End   time.Time `json:"end" binding:"required" example:"2017-05-26T23:59:59Z"`
	Type  string    `json:"type,omitempty" example:"evening"`
	State string    `json:"state,omitempty" example:"possible"`
}

type UpdateSessionRequest struct {
	Name  *string    `json:"name,omitempty"`
	Begin *time.Time `json:"begin,omitempty"`
	End   *time.Time `json:"end,omitempty"`
	Type  *string    `json:"type,omitempty"`
	State *string    `json:"state,omitempty"`
}

type CreateTableRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description,omitempty"`
	Begin       *time.Time `json:"begin,omitempty"`
	End         *time.Time `json:"end,omitempty"`
	MinPart     int        `json:"min_part,omitempty"`
	MaxPart     int        `json:"max_part,omitempty"`
	Type        string     `json:"type,omitempty" example:"proposal"`
	GameID      uint       `json:"game_id" binding:"required"`
}

type UpdateTableRequest struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Begin       *time.Time `json:"begin,omitempty"`
	End         *time.Time `json:"end,omitempty"`
	MinPart     *int       `json:"min_part,omitempty"`
	MaxPart     *int       `json:"max_part,omitempty"`
	Type        *string    `json:"type,omitempty"`
}

// SessionResponse adds the decomposed duration to a session.
type SessionResponse struct {
	GameSession
	DurationSeconds int64         `json:"duration_seconds"`
	Duration        DurationParts `json:"duration"`
}

type DurationParts struct {
	Days    int64 `json:"days"`
	Hours   int64 `json:"hours"`
	Minutes int64 `json:"minutes"`
	Seconds int64 `json:"seconds"`
}

func filterSession(s *GameSession) SessionResponse {
	days, hours, minutes, seconds := s.Duration()
	return SessionResponse{
		GameSession:     *s,
		DurationSeconds: s.DurationInSeconds(),
		Duration:        DurationParts{Days: days, Hours: hours, Minutes: minutes, Seconds: seconds},
	}
}

// @Summary      Sessions of a club
// @Tags         Sessions
// @Security     BearerAuth
// @Produce      json
// @Param        club_id path int true "Club ID"
// @Success      200 {object} responses.SuccessResponse "Sessions ordered by begin"
// @Failure      403 {object} responses.ErrorResponse "Membership required"
// @Router       /clubs/{club_id}/sessions [get]
func (sc *SessionController) ListSessions(c *gin.Context) {
	clubID, err := strconv.ParseUint(c.Param("club_id"), 10, 64)
	if err != nil {
		responses.BadRequest(c, "Invalid club id")
		return
	}

	sessions, err := sc.repo.ListForClub(uint(clubID))
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}

	out := make([]SessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, filterSession(&sessions[i]))
	}
	responses.SendSuccess(c, http.StatusOK, "Sessions retrieved", out)
}

// @Summary      Session details
// @Tags         Sessions
// @Produce      json
// @Param        session_id path int true "Session ID"
// @Success      200 {object} responses.SuccessResponse "Session with duration"
// @Failure      404 {object} responses.ErrorResponse "Session not found"
// @Router       /sessions/{session_id} [get]
func (sc *SessionController) GetSession(c *gin.Context) {
	sessionID, err := parseSessionID(c)
	if err != nil {
		responses.BadRequest(c, "Invalid session id")
		return
	}

	s, err := sc.repo.GetByID(sessionID)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Session retrieved", filterSession(s))
}

// @Summary      Schedule a session
// @Tags         Sessions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        club_id path int true "Club ID"
// @Param        session body CreateSessionRequest true "Session details"
// @Success      201 {object} responses.SuccessResponse "Session created"
// @Failure      400 {object} responses.ErrorResponse "Reversed or missing span"
// @Failure      403 {object} responses.ErrorResponse "Manager role required"
// @Router       /clubs/{club_id}/sessions [post]
func (sc *SessionController) CreateSession(c *gin.Context) {
	gamerID, err := middleware.GetGamerIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	clubID, err := strconv.ParseUint(c.Param("club_id"), 10, 64)
	if err != nil {
		responses.BadRequest(c, "Invalid club id")
		return
	}

	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	newSession := &GameSession{
		Name:   req.Name,
		Begin:  req.Begin,
		End:    req.End,
		Type:   ParseSessionType(req.Type),
		State:  ParseSessionState(req.State),
		ClubID: uint(clubID),
	}
	if req.State == "" {
		newSession.State = StatePossible
	}
	if err := sc.repo.Create(newSession, models.Actor(gamerID)); err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Session created", filterSession(newSession))
}

// @Summary      Update a session
// @Tags         Sessions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        session_id path int true "Session ID"
// @Param        session body UpdateSessionRequest true "Fields to update"
// @Success      200 {object} responses.SuccessResponse "Session updated"
// @Failure      400 {object} responses.ErrorResponse "Reversed span"
// @Failure      403 {object} responses.ErrorResponse "Manager role required"
// @Failure      404 {object} responses.ErrorResponse "Session not found"
// @Router       /sessions/{session_id} [put]
func (sc *SessionController) UpdateSession(c *gin.Context) {
	gamerID, err := middleware.GetGamerIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	sessionID, err := parseSessionID(c)
	if err != nil {
		responses.BadRequest(c, "Invalid session id")
		return
	}

	var req UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	s, err := sc.repo.GetByID(sessionID)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	if !sc.requireClubRole(c, gamerID, s.ClubID, true) {
		return
	}

	if req.Name != nil {
		s.Name = *req.Name
	}
	if req.Begin != nil {
		s.Begin = *req.Begin
	}
	if req.End != nil {
		s.End = *req.End
	}
	if req.Type != nil {
		s.Type = ParseSessionType(*req.Type)
	}
	if req.State != nil {
		s.State = ParseSessionState(*req.State)
	}

	if err := sc.repo.Update(s, models.Actor(gamerID)); err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Session updated", filterSession(s))
}

// @Summary      Deactivate a session
// @Tags         Sessions
// @Security     BearerAuth
// @Produce      json
// @Param        session_id path int true "Session ID"
// @Success      200 {object} responses.SuccessResponse "Session deactivated"
// @Failure      403 {object} responses.ErrorResponse "Manager role required"
// @Failure      404 {object} responses.ErrorResponse "Session not found"
// @Router       /sessions/{session_id} [delete]
func (sc *SessionController) DeactivateSession(c *gin.Context) {
	gamerID, err := middleware.GetGamerIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	sessionID, err := parseSessionID(c)
	if err != nil {
		responses.BadRequest(c, "Invalid session id")
		return
	}

	s, err := sc.repo.GetByID(sessionID)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	if !sc.requireClubRole(c, gamerID, s.ClubID, true) {
		return
	}

	if err := sc.repo.Deactivate(sessionID, models.Actor(gamerID)); err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Session deactivated", nil)
}

// @Summary      Tables of a session
// @Tags         Tables
// @Produce      json
// @Param        session_id path int true "Session ID"
// @Success      200 {object} responses.SuccessResponse "Tables with their games"
// @Failure      404 {object} responses.ErrorResponse "Session not found"
// @Router       /sessions/{session_id}/tables [get]
func (sc *SessionController) ListTables(c *gin.Context) {
	sessionID, err := parseSessionID(c)
	if err != nil {
		responses.BadRequest(c, "Invalid session id")
		return
	}

	if _, err := sc.repo.GetByID(sessionID); err != nil {
		responses.SendDomainError(c, err)
		return
	}

	tables, err := sc.repo.ListTables(sessionID)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Tables retrieved", tables)
}

// @Summary      Table details
// @Tags         Tables
// @Produce      json
// @Param        table_id path int true "Table ID"
// @Success      200 {object} responses.SuccessResponse "Table"
// @Failure      404 {object} responses.ErrorResponse "Table not found"
// @Router       /tables/{table_id} [get]
func (sc *SessionController) GetTable(c *gin.Context) {
	tableID, err := parseTableID(c)
	if err != nil {
		responses.BadRequest(c, "Invalid table id")
		return
	}

	t, err := sc.repo.GetTableByID(tableID)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Table retrieved", t)
}

// @Summary      Open a table at a session
// @Description  The table is built around one catalog game, which must exist.
// @Tags         Tables
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        session_id path int true "Session ID"
// @Param        table body CreateTableRequest true "Table details"
// @Success      201 {object} responses.SuccessResponse "Table created"
// @Failure      400 {object} responses.ErrorResponse "Invalid input"
// @Failure      403 {object} responses.ErrorResponse "Membership required"
// @Failure      404 {object} responses.ErrorResponse "Session or game not found"
// @Router       /sessions/{session_id}/tables [post]
func (sc *SessionController) CreateTable(c *gin.Context) {
	gamerID, err := middleware.GetGamerIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	sessionID, err := parseSessionID(c)
	if err != nil {
		responses.BadRequest(c, "Invalid session id")
		return
	}

	var req CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	s, err := sc.repo.GetByID(sessionID)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	if !sc.requireClubRole(c, gamerID, s.ClubID, false) {
		return
	}
	if _, err := sc.games.GetByID(req.GameID); err != nil {
		responses.SendDomainError(c, err)
		return
	}

	newTable := &GameTable{
		Name:        req.Name,
		Description: req.Description,
		Begin:       req.Begin,
		End:         req.End,
		MinPart:     req.MinPart,
		MaxPart:     req.MaxPart,
		Type:        ParseTableType(req.Type),
		GameID:      req.GameID,
		SessionID:   sessionID,
	}
	if req.Type == "" {
		newTable.Type = TableProposal
	}
	if err := sc.repo.CreateTable(newTable, models.Actor(gamerID)); err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Table created", newTable)
}

// @Summary      Update a table
// @Tags         Tables
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        table_id path int true "Table ID"
// @Param        table body UpdateTableRequest true "Fields to update"
// @Success      200 {object} responses.SuccessResponse "Table updated"
// @Failure      403 {object} responses.ErrorResponse "Membership required"
// @Failure      404 {object} responses.ErrorResponse "Table not found"
// @Router       /tables/{table_id} [put]
func (sc *SessionController) UpdateTable(c *gin.Context) {
	gamerID, err := middleware.GetGamerIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	tableID, err := parseTableID(c)
	if err != nil {
		responses.BadRequest(c, "Invalid table id")
		return
	}

	var req UpdateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	t, err := sc.repo.GetTableByID(tableID)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	owner, err := sc.repo.GetByID(t.SessionID)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	if !sc.requireClubRole(c, gamerID, owner.ClubID, false) {
		return
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Begin != nil {
		t.Begin = req.Begin
	}
	if req.End != nil {
		t.End = req.End
	}
	if req.MinPart != nil {
		t.MinPart = *req.MinPart
	}
	if req.MaxPart != nil {
		t.MaxPart = *req.MaxPart
	}
	if req.Type != nil {
		t.Type = ParseTableType(*req.Type)
	}

	if err := sc.repo.UpdateTable(t, models.Actor(gamerID)); err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Table updated", t)
}

// @Summary      Deactivate a table
// @Tags         Tables
// @Security     BearerAuth
// @Produce      json
// @Param        table_id path int true "Table ID"
// @Success      200 {object} responses.SuccessResponse "Table deactivated"
// @Failure      403 {object} responses.ErrorResponse "Membership required"
// @Failure      404 {object} responses.ErrorResponse "Table not found"
// @Router       /tables/{table_id} [delete]
func (sc *SessionController) DeactivateTable(c *gin.Context) {
	gamerID, err := middleware.GetGamerIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	tableID, err := parseTableID(c)
	if err != nil {
		responses.BadRequest(c, "Invalid table id")
		return
	}

	t, err := sc.repo.GetTableByID(tableID)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	owner, err := sc.repo.GetByID(t.SessionID)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	if !sc.requireClubRole(c, gamerID, owner.ClubID, false) {
		return
	}

	if err := sc.repo.DeactivateTable(tableID, models.Actor(gamerID)); err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Table deactivated", nil)
}

func parseSessionID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("session_id"), 10, 64)
	return uint(id), err
}

func parseTableID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("table_id"), 10, 64)
	return uint(id), err
}
