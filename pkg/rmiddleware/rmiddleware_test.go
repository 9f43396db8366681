package rmiddleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/philmer-vdm/gamesess/internal/club"
	"github.com/philmer-vdm/gamesess/internal/gamer"
	"github.com/philmer-vdm/gamesess/internal/middleware"
	"github.com/philmer-vdm/gamesess/internal/models"
	"github.com/philmer-vdm/gamesess/pkg/rmiddleware"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&gamer.Gamer{}, &club.Club{}, &club.GamerClub{}))
	return db
}

// asGamer stands in for the auth middleware, pinning the acting gamer.
func asGamer(id uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.AuthGamerIDKey, id)
		c.Next()
	}
}

func get(r *gin.Engine, path string) int {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w.Code
}

func TestClubRoleGating(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)

	repo := club.NewClubRepository(db)
	actor := models.Actor(1)
	c := &club.Club{Name: "Le Cercle", Public: true}
	require.NoError(t, repo.Create(c, actor))
	require.NoError(t, repo.AddMember(c.ID, 1, club.RoleManager, actor))
	require.NoError(t, repo.AddMember(c.ID, 2, club.RoleUser, actor))

	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	path := fmt.Sprintf("/clubs/%d", c.ID)

	cases := []struct {
		name    string
		gamerID uint
		guard   gin.HandlerFunc
		want    int
	}{
		{"manager can administer", 1, rmiddleware.ManagerMiddleware(db), http.StatusOK},
		{"user cannot administer", 2, rmiddleware.ManagerMiddleware(db), http.StatusForbidden},
		{"manager can participate", 1, rmiddleware.MemberMiddleware(db), http.StatusOK},
		{"user can participate", 2, rmiddleware.MemberMiddleware(db), http.StatusOK},
		{"non-member is rejected", 3, rmiddleware.MemberMiddleware(db), http.StatusForbidden},
	}
	for _, tc := range cases {
		r := gin.New()
		r.GET("/clubs/:club_id", asGamer(tc.gamerID), tc.guard, ok)
		assert.Equal(t, tc.want, get(r, path), tc.name)
	}

	// Without an authenticated gamer in context the guard never consults
	// the membership table.
	r := gin.New()
	r.GET("/clubs/:club_id", rmiddleware.MemberMiddleware(db), ok)
	assert.Equal(t, http.StatusUnauthorized, get(r, path))
}

func TestClubRoleGatingIgnoresRemovedMembership(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)

	repo := club.NewClubRepository(db)
	actor := models.Actor(1)
	c := &club.Club{Name: "Le Cercle", Public: true}
	require.NoError(t, repo.Create(c, actor))
	require.NoError(t, repo.AddMember(c.ID, 2, club.RoleUser, actor))
	require.NoError(t, repo.RemoveMember(c.ID, 2, actor))

	r := gin.New()
	r.GET("/clubs/:club_id", asGamer(2), rmiddleware.MemberMiddleware(db), func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, http.StatusForbidden, get(r, fmt.Sprintf("/clubs/%d", c.ID)))
}
