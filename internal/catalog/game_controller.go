package catalog

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

type GameController struct {
	repo   GameRepository
	config *config.Config
}

func NewGameController(repo GameRepository, cfg *config.Config) *GameController {
	return &GameController{repo: repo, config: cfg}
}

type CreateGameRequest struct {
	Name            string `json:"name" binding:"required" example:"Pandemic"`
	Parts           string `json:"parts,omitempty" example:"2-4"`
	AverageDuration int    `json:"average_duration,omitempty" example:"60"`
	ParentID        *uint  `json:"parent_id,omitempty"`
}

type UpdateGameRequest struct {
	Name            *string `json:"name,omitempty"`
	Parts           *string `json:"parts,omitempty"`
	AverageDuration *int    `json:"average_duration,omitempty"`
}

type SetParentRequest struct {
	ParentID *uint `json:"parent_id"` // null detaches the game from its parent
}

type GameResponse struct {
	Game
	PartySizes []int `json:"party_sizes"`
}

func filterGame(g *Game) GameResponse {
	return GameResponse{Game: *g, PartySizes: g.PartsAsList()}
}

// @Summary      List catalog games
// @Tags         Catalog
// @Produce      json
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        search query string false "Name filter"
// @Success      200 {object} responses.PaginatedResponse "Games"
// @Router       /games [get]
func (gc *GameController) ListGames(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	games, total, err := gc.repo.List(page, pageSize, c.Query("search"))
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}

	out := make([]GameResponse, 0, len(games))
	for i := range games {
		out = append(out, filterGame(&games[i]))
	}
	responses.SendPaginated(c, http.StatusOK, "Games retrieved", out, total, page, pageSize)
}

// @Summary      Game or scenario details
// @Tags         Catalog
// @Produce      json
// @Param        game_id path int true "Game ID"
// @Success      200 {object} responses.SuccessResponse "Game with expanded party sizes"
// @Failure      404 {object} responses.ErrorResponse "Game not found"
// @Router       /games/{game_id} [get]
func (gc *GameController) GetGame(c *gin.Context) {
	gameID, err := parseGameID(c)
	if err != nil {
		responses.BadRequest(c, "Invalid game id")
		return
	}

	g, err := gc.repo.GetByID(gameID)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Game retrieved", filterGame(g))
}

// @Summary      Scenarios and expansions of a game
// @Description  Children are derived from parent references, so a freshly added scenario appears immediately.
// @Tags         Catalog
// @Produce      json
// @Param        game_id path int true "Game ID"
// @Success      200 {object} responses.SuccessResponse "Child games"
// @Failure      404 {object} responses.ErrorResponse "Game not found"
// @Router       /games/{game_id}/children [get]
func (gc *GameController) GetChildren(c *gin.Context) {
	gameID, err := parseGameID(c)
	if err != nil {
		responses.BadRequest(c, "Invalid game id")
		return
	}

	if _, err := gc.repo.GetByID(gameID); err != nil {
		responses.SendDomainError(c, err)
		return
	}

	children, err := gc.repo.Children(gameID)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Children retrieved", children)
}

// @Summary      Add a game to the catalog
// @Tags         Catalog
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        game body CreateGameRequest true "Game details"
// @Success      201 {object} responses.SuccessResponse "Game created"
// @Failure      400 {object} responses.ErrorResponse "Invalid input"
// @Failure      404 {object} responses.ErrorResponse "Parent game not found"
// @Router       /games [post]
func (gc *GameController) CreateGame(c *gin.Context) {
	gamerID, err := middleware.GetGamerIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	newGame := &Game{
		Name:            req.Name,
		Parts:           req.Parts,
		AverageDuration: req.AverageDuration,
		ParentID:        req.ParentID,
	}
	if err := gc.repo.Create(newGame, models.Actor(gamerID)); err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Game created", filterGame(newGame))
}

// @Summary      Update a catalog game
// @Tags         Catalog
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        game_id path int true "Game ID"
// @Param        game body UpdateGameRequest true "Fields to update"
// @Success      200 {object} responses.SuccessResponse "Game updated"
// @Failure      404 {object} responses.ErrorResponse "Game not found"
// @Router       /games/{game_id} [put]
func (gc *GameController) UpdateGame(c *gin.Context) {
	gamerID, err := middleware.GetGamerIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	gameID, err := parseGameID(c)
	if err != nil {
		responses.BadRequest(c, "Invalid game id")
		return
	}

	var req UpdateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	g, err := gc.repo.GetByID(gameID)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}

	if req.Name != nil {
		g.Name = *req.Name
	}
	if req.Parts != nil {
		g.Parts = *req.Parts
	}
	if req.AverageDuration != nil {
		g.AverageDuration = *req.AverageDuration
	}

	if err := gc.repo.Update(g, models.Actor(gamerID)); err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Game updated", filterGame(g))
}

// @Summary      Move a game under another parent
// @Description  Rejects assignments that would create a cycle in the catalog.
// @Tags         Catalog
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        game_id path int true "Game ID"
// @Param        parent body SetParentRequest true "New parent, or null"
// @Success      200 {object} responses.SuccessResponse "Parent changed"
// @Failure      400 {object} responses.ErrorResponse "Cycle or self-parent"
// @Failure      404 {object} responses.ErrorResponse "Game not found"
// @Router       /games/{game_id}/parent [put]
func (gc *GameController) SetParent(c *gin.Context) {
	gamerID, err := middleware.GetGamerIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	gameID, err := parseGameID(c)
	if err != nil {
		responses.BadRequest(c, "Invalid game id")
		return
	}

	var req SetParentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	if err := gc.repo.SetParent(gameID, req.ParentID, models.Actor(gamerID)); err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Parent changed", nil)
}

// @Summary      Deactivate a catalog game
// @Description  Soft-deletes; tables referencing the game stay resolvable.
// @Tags         Catalog
// @Security     BearerAuth
// @Produce      json
// @Param        game_id path int true "Game ID"
// @Success      200 {object} responses.SuccessResponse "Game deactivated"
// @Failure      404 {object} responses.ErrorResponse "Game not found"
// @Router       /games/{game_id} [delete]
func (gc *GameController) DeactivateGame(c *gin.Context) {
	gamerID, err := middleware.GetGamerIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	gameID, err := parseGameID(c)
	if err != nil {
		responses.BadRequest(c, "Invalid game id")
		return
	}

	if err := gc.repo.Deactivate(gameID, models.Actor(gamerID)); err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Game deactivated", nil)
}

func parseGameID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("game_id"), 10, 64)
	return uint(id), err
}
