package gamer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philmer-vdm/gamesess/internal/apperr"
)

func TestPasswordLifecycle(t *testing.T) {
	g := &Gamer{Login: "alice"}

	assert.False(t, g.VerifyPassword("anything"), "no password set yet")

	require.NoError(t, g.SetPassword("first secret"))
	assert.True(t, g.VerifyPassword("first secret"))
	assert.False(t, g.VerifyPassword("wrong"))
	assert.False(t, g.VerifyPassword(""))
	assert.False(t, g.VerifyPassword(g.PasswordHashed), "the stored hash is not the password")

	// Only the most recent password verifies.
	require.NoError(t, g.SetPassword("second secret"))
	assert.True(t, g.VerifyPassword("second secret"))
	assert.False(t, g.VerifyPassword("first secret"))
}

func TestPasswordIsWriteOnly(t *testing.T) {
	g := &Gamer{Login: "alice"}
	require.NoError(t, g.SetPassword("secret"))

	for _, name := range []string{"password", "password_hashed"} {
		_, err := g.Attribute(name)
		assert.True(t, errors.Is(err, apperr.ErrAccessDenied), "attribute %s should be write-only", name)
	}

	// The hash itself must never equal the plaintext.
	assert.NotEqual(t, "secret", g.PasswordHashed)

	login, err := g.Attribute("login")
	require.NoError(t, err)
	assert.Equal(t, "alice", login)

	_, err = g.Attribute("shoe_size")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestDisplayNamePrecedence(t *testing.T) {
	g := &Gamer{FirstName: "Phil", LastName: "Merle", Surname: "philmer", Login: "pmerle"}
	g.ID = 42

	assert.Equal(t, "philmer", g.DisplayName())

	g.Surname = ""
	assert.Equal(t, "Merle Phil", g.DisplayName())

	g.LastName = ""
	assert.Equal(t, "pmerle", g.DisplayName())

	g.Login = ""
	assert.Equal(t, "Gamer [42]", g.DisplayName())
}

func TestPrincipal(t *testing.T) {
	g := &Gamer{Login: "alice"}
	g.ID = 7
	g.Active = true

	p := NewPrincipal(g)
	assert.True(t, p.IsAuthenticated())
	assert.True(t, p.IsActive())
	assert.Equal(t, "7", p.DisplayID())
	require.NotNil(t, p.ActorID())
	assert.Equal(t, uint(7), *p.ActorID())

	var anonymous Principal
	assert.False(t, anonymous.IsAuthenticated())
	assert.False(t, anonymous.IsActive())
}
