package attendance

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/philmer-vdm/gamesess/config"
	"github.com/philmer-vdm/gamesess/internal/middleware"
	"github.com/philmer-vdm/gamesess/internal/models"
	"github.com/philmer-vdm/gamesess/internal/session"
	"github.com/philmer-vdm/gamesess/pkg/responses"
	"github.com/philmer-vdm/gamesess/pkg/validator"
)

type AttendanceController struct {
	repo   AttendanceRepository
	tables session.SessionRepository
	config *config.Config
}

func NewAttendanceController(repo AttendanceRepository, tables session.SessionRepository, cfg *config.Config) *AttendanceController {
	return &AttendanceController{repo: repo, tables: tables, config: cfg}
}

type RegisterAttendanceRequest struct {
	Status string `json:"status,omitempty" example:"possible"` // initiator, confirmed or possible
}

type UpdateAttendanceRequest struct {
	Status string `json:"status" binding:"required" example:"confirmed"`
}

type AttendeeResponse struct {
	AttendanceID uint   `json:"attendance_id"`
	GamerID      uint   `json:"gamer_id"`
	DisplayName  string `json:"display_name"`
	Status       Status `json:"status"`
}

// @Summary      Attendees of a table
// @Tags         Attendance
// @Produce      json
// @Param        table_id path int true "Table ID"
// @Success      200 {object} responses.SuccessResponse "Attendees"
// @Failure      404 {object} responses.ErrorResponse "Table not found"
// @Router       /tables/{table_id}/attendances [get]
func (ac *AttendanceController) ListAttendees(c *gin.Context) {
	tableID, err := parseTableID(c)
	if err != nil {
		responses.BadRequest(c, "Invalid table id")
		return
	}

	if _, err := ac.tables.GetTableByID(tableID); err != nil {
		responses.SendDomainError(c, err)
		return
	}

	attendances, err := ac.repo.ListForTable(tableID)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}

	out := make([]AttendeeResponse, 0, len(attendances))
	for _, a := range attendances {
		out = append(out, AttendeeResponse{
			AttendanceID: a.ID,
			GamerID:      a.GamerID,
			DisplayName:  a.Gamer.DisplayName(),
			Status:       a.Status,
		})
	}
	responses.SendSuccess(c, http.StatusOK, "Attendees retrieved", out)
}

// @Summary      My table registrations
// @Tags         Attendance
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} responses.SuccessResponse "Registrations"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Router       /my/attendances [get]
func (ac *AttendanceController) ListMyAttendances(c *gin.Context) {
	gamerID, err := middleware.GetGamerIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	attendances, err := ac.repo.ListForGamer(gamerID)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Registrations retrieved", attendances)
}

// @Summary      Register at a table
// @Description  Registers the authenticated gamer; a withdrawn registration is reactivated.
// @Tags         Attendance
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        table_id path int true "Table ID"
// @Param        attendance body RegisterAttendanceRequest true "Initial status"
// @Success      201 {object} responses.SuccessResponse "Registered"
// @Failure      400 {object} responses.ErrorResponse "Already registered"
// @Failure      404 {object} responses.ErrorResponse "Table not found"
// @Router       /tables/{table_id}/attendances [post]
func (ac *AttendanceController) Register(c *gin.Context) {
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

	var req RegisterAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	if _, err := ac.tables.GetTableByID(tableID); err != nil {
		responses.SendDomainError(c, err)
		return
	}

	newAttendance := &Attendance{
		GameTableID: tableID,
		GamerID:     gamerID,
		Status:      ParseStatus(req.Status),
	}
	if req.Status == "" {
		newAttendance.Status = StatusPossible
	}
	if err := ac.repo.Register(newAttendance, models.Actor(gamerID)); err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Registered at table", newAttendance)
}

// @Summary      Change a registration status
// @Tags         Attendance
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        attendance_id path int true "Attendance ID"
// @Param        attendance body UpdateAttendanceRequest true "New status"
// @Success      200 {object} responses.SuccessResponse "Status changed"
// @Failure      403 {object} responses.ErrorResponse "Not your registration"
// @Failure      404 {object} responses.ErrorResponse "Registration not found"
// @Router       /attendances/{attendance_id} [put]
func (ac *AttendanceController) UpdateStatus(c *gin.Context) {
	gamerID, err := middleware.GetGamerIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	attendanceID, err := parseAttendanceID(c)
	if err != nil {
		responses.BadRequest(c, "Invalid attendance id")
		return
	}

	var req UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	a, err := ac.repo.GetByID(attendanceID)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	if a.GamerID != gamerID {
		responses.Forbidden(c, "You can only change your own registration")
		return
	}

	if err := ac.repo.UpdateStatus(attendanceID, ParseStatus(req.Status), models.Actor(gamerID)); err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Status changed", nil)
}

// @Summary      Withdraw from a table
// @Description  Deactivates the registration; the row is kept for history.
// @Tags         Attendance
// @Security     BearerAuth
// @Produce      json
// @Param        attendance_id path int true "Attendance ID"
// @Success      200 {object} responses.SuccessResponse "Withdrawn"
// @Failure      403 {object} responses.ErrorResponse "Not your registration"
// @Failure      404 {object} responses.ErrorResponse "Registration not found"
// @Router       /attendances/{attendance_id} [delete]
func (ac *AttendanceController) Withdraw(c *gin.Context) {
	gamerID, err := middleware.GetGamerIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	attendanceID, err := parseAttendanceID(c)
	if err != nil {
		responses.BadRequest(c, "Invalid attendance id")
		return
	}

	a, err := ac.repo.GetByID(attendanceID)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	if a.GamerID != gamerID {
		responses.Forbidden(c, "You can only withdraw your own registration")
		return
	}

	if err := ac.repo.Withdraw(attendanceID, models.Actor(gamerID)); err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Withdrawn from table", nil)
}

func parseTableID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("table_id"), 10, 64)
	return uint(id), err
}

func parseAttendanceID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("attendance_id"), 10, 64)
	return uint(id), err
}
