package session

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/philmer-vdm/gamesess/config"
	"github.com/philmer-vdm/gamesess/internal/catalog"
	"github.com/philmer-vdm/gamesess/internal/club"
	"github.com/philmer-vdm/gamesess/internal/gamer"
	"github.com/philmer-vdm/gamesess/internal/models"
	"github.com/philmer-vdm/gamesess/pkg/token"
)

type scheduleFixture struct {
	router   *gin.Engine
	cfg      *config.Config
	manager  *gamer.Gamer
	member   *gamer.Gamer
	stranger *gamer.Gamer
	session  *GameSession
	game     *catalog.Game
}

func newScheduleFixture(t *testing.T, db *gorm.DB) *scheduleFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.JWT.AccessTokenSecret = "test-access-secret"
	cfg.JWT.AccessTokenExpiryMinutes = 15

	gamers := gamer.NewGamerRepository(db)
	seed := func(login string) *gamer.Gamer {
		g := &gamer.Gamer{Login: login}
		require.NoError(t, gamers.Create(g, nil))
		return g
	}
	manager := seed("manager")
	member := seed("member")
	stranger := seed("stranger")

	clubs := club.NewClubRepository(db)
	owner := &club.Club{Name: "Le Cercle", Public: true}
	require.NoError(t, clubs.Create(owner, models.Actor(manager.ID)))
	require.NoError(t, clubs.AddMember(owner.ID, manager.ID, club.RoleManager, models.Actor(manager.ID)))
	require.NoError(t, clubs.AddMember(owner.ID, member.ID, club.RoleUser, models.Actor(manager.ID)))

	begin := time.Date(2017, 5, 26, 20, 0, 0, 0, time.UTC)
	s := &GameSession{Name: "Soirée du 26/5/2017", Begin: begin, End: begin.Add(4 * time.Hour), ClubID: owner.ID}
	require.NoError(t, NewSessionRepository(db).Create(s, models.Actor(manager.ID)))

	g := &catalog.Game{Name: "Pandemic", Parts: "2-4", AverageDuration: 45}
	require.NoError(t, catalog.NewGameRepository(db).Create(g, models.Actor(manager.ID)))

	r := gin.New()
	RegisterSessionRoutes(r.Group("/api"), db, cfg)

	return &scheduleFixture{router: r, cfg: cfg, manager: manager, member: member, stranger: stranger, session: s, game: g}
}

func (f *scheduleFixture) do(t *testing.T, method, path, body string, as *gamer.Gamer) int {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if as != nil {
		tok, err := token.GenerateJWT(as.ID, as.DisplayID(), f.cfg.JWT.AccessTokenSecret, f.cfg.JWT.AccessTokenExpiryMinutes)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w.Code
}

func TestSessionMutationRequiresManager(t *testing.T) {
	db := newTestDB(t)
	f := newScheduleFixture(t, db)

	path := fmt.Sprintf("/api/sessions/%d", f.session.ID)
	rename := `{"name":"Soirée reportée"}`

	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodPut, path, rename, f.stranger))
	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodPut, path, rename, f.member))
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodPut, path, rename, f.manager))

	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodDelete, path, "", f.member))
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodDelete, path, "", f.manager))
}

func TestTableMutationRequiresMembership(t *testing.T) {
	db := newTestDB(t)
	f := newScheduleFixture(t, db)

	createPath := fmt.Sprintf("/api/sessions/%d/tables", f.session.ID)
	create := fmt.Sprintf(`{"name":"Table Pandemic","min_part":2,"max_part":4,"game_id":%d}`, f.game.ID)

	// Only club members can open a table at the session.
	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodPost, createPath, create, f.stranger))
	assert.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, createPath, create, f.member))

	tables, err := NewSessionRepository(db).ListTables(f.session.ID)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	tablePath := fmt.Sprintf("/api/tables/%d", tables[0].ID)

	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodPut, tablePath, `{"name":"Renommée"}`, f.stranger))
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodPut, tablePath, `{"name":"Renommée"}`, f.member))

	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodDelete, tablePath, "", f.stranger))
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodDelete, tablePath, "", f.manager))
}
