package auth

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/philmer-vdm/gamesess/internal/gamer"
	"github.com/philmer-vdm/gamesess/internal/models"
)

func newTestRepo(t *testing.T) AuthRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&gamer.Gamer{}, &RefreshToken{}))
	return NewAuthRepository(db)
}

func seedGamer(t *testing.T, repo AuthRepository, login, email, password string) *gamer.Gamer {
	t.Helper()
	g := &gamer.Gamer{Login: login, Email: email}
	require.NoError(t, g.SetPassword(password))
	require.NoError(t, repo.CreateGamer(g, nil))
	return g
}

func TestAuthenticateUnknownIdentifier(t *testing.T) {
	repo := newTestRepo(t)

	p, ok, err := Authenticate(repo, "nobody", "whatever")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, p.IsAuthenticated())
}

func TestAuthenticateWrongPassword(t *testing.T) {
	repo := newTestRepo(t)
	seedGamer(t, repo, "alice", "alice@example.com", "correct horse")

	_, ok, err := Authenticate(repo, "alice", "wrong pony")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthenticateInactiveAccount(t *testing.T) {
	repo := newTestRepo(t)
	g := seedGamer(t, repo, "alice", "alice@example.com", "correct horse")

	g.AuditModel.Deactivate(models.Actor(g.ID))
	require.NoError(t, repo.UpdateGamer(g, models.Actor(g.ID)))

	_, ok, err := Authenticate(repo, "alice", "correct horse")
	require.NoError(t, err)
	assert.False(t, ok, "a deactivated account must not authenticate")
}

func TestAuthenticateByLoginAndEmail(t *testing.T) {
	repo := newTestRepo(t)
	g := seedGamer(t, repo, "alice", "alice@example.com", "correct horse")

	before := time.Now()

	p, ok, err := Authenticate(repo, "alice", "correct horse")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, p.IsAuthenticated())
	assert.Equal(t, g.ID, p.GamerID)
	assert.Equal(t, "alice", p.Login)

	// Email works as an identifier too.
	_, ok, err = Authenticate(repo, "alice@example.com", "correct horse")
	require.NoError(t, err)
	assert.True(t, ok)

	stored, err := repo.GetGamerByID(g.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastLogin, "a successful login records the timestamp")
	assert.False(t, stored.LastLogin.Before(before.Truncate(time.Second)))
	// The bookkeeping update is stamped by the gamer themself.
	require.NotNil(t, stored.ModifyID)
	assert.Equal(t, g.ID, *stored.ModifyID)
}

func TestRefreshTokenLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	g := seedGamer(t, repo, "alice", "alice@example.com", "correct horse")

	rt := &RefreshToken{GamerID: g.ID, Token: "tok-1", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.SaveRefreshToken(rt))

	got, err := repo.GetRefreshToken("tok-1")
	require.NoError(t, err)
	assert.Equal(t, g.ID, got.GamerID)

	require.NoError(t, repo.InvalidateRefreshToken("tok-1"))
	_, err = repo.GetRefreshToken("tok-1")
	assert.Error(t, err, "a revoked token no longer resolves")

	// Expired tokens never resolve either.
	expired := &RefreshToken{GamerID: g.ID, Token: "tok-2", ExpiresAt: time.Now().Add(-time.Minute)}
	require.NoError(t, repo.SaveRefreshToken(expired))
	_, err = repo.GetRefreshToken("tok-2")
	assert.Error(t, err)
}
