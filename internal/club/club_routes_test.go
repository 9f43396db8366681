package club

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/philmer-vdm/gamesess/config"
	"github.com/philmer-vdm/gamesess/internal/gamer"
	"github.com/philmer-vdm/gamesess/internal/models"
	"github.com/philmer-vdm/gamesess/pkg/token"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.AccessTokenSecret = "test-access-secret"
	cfg.JWT.AccessTokenExpiryMinutes = 15
	return cfg
}

func seedActiveGamer(t *testing.T, db *gorm.DB, login string) *gamer.Gamer {
	t.Helper()
	g := &gamer.Gamer{Login: login}
	require.NoError(t, gamer.NewGamerRepository(db).Create(g, nil))
	return g
}

func bearerFor(t *testing.T, g *gamer.Gamer, cfg *config.Config) string {
	t.Helper()
	tok, err := token.GenerateJWT(g.ID, g.DisplayID(), cfg.JWT.AccessTokenSecret, cfg.JWT.AccessTokenExpiryMinutes)
	require.NoError(t, err)
	return "Bearer " + tok
}

func getClub(r *gin.Engine, clubID uint, authorization string) int {
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/clubs/%d", clubID), nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestGetClubPrivateVisibility(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	cfg := newTestConfig()

	member := seedActiveGamer(t, db, "member")
	stranger := seedActiveGamer(t, db, "stranger")

	repo := NewClubRepository(db)
	private := &Club{Name: "Cachette", Public: false}
	require.NoError(t, repo.Create(private, models.Actor(member.ID)))
	require.NoError(t, repo.AddMember(private.ID, member.ID, RoleUser, models.Actor(member.ID)))

	open := &Club{Name: "Ouvert", Public: true}
	require.NoError(t, repo.Create(open, models.Actor(member.ID)))

	r := gin.New()
	RegisterClubRoutes(r.Group("/api"), db, cfg)

	// A member's token carries through the public route.
	assert.Equal(t, http.StatusOK, getClub(r, private.ID, bearerFor(t, member, cfg)))

	// Anonymous and non-member reads of a private club stay forbidden.
	assert.Equal(t, http.StatusForbidden, getClub(r, private.ID, ""))
	assert.Equal(t, http.StatusForbidden, getClub(r, private.ID, bearerFor(t, stranger, cfg)))

	// A garbage token reads as anonymous, not as an error.
	assert.Equal(t, http.StatusForbidden, getClub(r, private.ID, "Bearer not-a-token"))

	// Public clubs need no token at all.
	assert.Equal(t, http.StatusOK, getClub(r, open.ID, ""))
}
