package auth

import (
	"errors"
	"time"

	"github.com/philmer-vdm/gamesess/internal/apperr"
	"github.com/philmer-vdm/gamesess/internal/gamer"
)

// Authenticate resolves a gamer by login or email and checks the credential.
// An unknown identifier and a wrong password are indistinguishable to the
// caller; both come back as (zero principal, false). Lookup failures other
// than not-found still surface so storage outages are not mistaken for bad
// credentials.
func Authenticate(repo AuthRepository, identifier, password string) (gamer.Principal, bool, error) {
	g, err := repo.GetGamerByLogin(identifier)
	if errors.Is(err, apperr.ErrNotFound) {
		g, err = repo.GetGamerByEmail(identifier)
	}
	if errors.Is(err, apperr.ErrNotFound) {
		return gamer.Principal{}, false, nil
	}
	if err != nil {
		return gamer.Principal{}, false, err
	}

	if !g.Active {
		return gamer.Principal{}, false, nil
	}
	if !g.VerifyPassword(password) {
		return gamer.Principal{}, false, nil
	}

	now := time.Now()
	g.LastLogin = &now
	// Last-login bookkeeping is stamped by the gamer themself.
	if err := repo.UpdateGamer(g, &g.ID); err != nil {
		return gamer.Principal{}, false, err
	}

	return gamer.NewPrincipal(g), true, nil
}
