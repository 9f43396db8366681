// gamer/model.go
package gamer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/philmer-vdm/gamesess/internal/apperr"
	"github.com/philmer-vdm/gamesess/internal/models"
	"github.com/philmer-vdm/gamesess/utils"
)

// Gamer is a person: a player at tables and/or a user in a club. A gamer is
// also the audit actor for every entity, including other gamers (the
// bootstrap admin is self-created with no actor).
type Gamer struct {
	models.AuditModel
	FirstName      string     `json:"first_name" gorm:"size:50"`
	LastName       string     `json:"last_name" gorm:"size:50"`
	Surname        string     `json:"surname" gorm:"size:50"`
	Login          string     `json:"login" gorm:"size:50;uniqueIndex"`
	Email          string     `json:"email" gorm:"index"`
	Birthdate      *time.Time `json:"birthdate" gorm:"type:date"`
	LastLogin      *time.Time `json:"last_login"`
	PasswordHashed string     `json:"-"`
}

// DisplayName resolves the display form of a gamer: surname first, then
// "LastName FirstName", then the login, then a synthetic id label.
func (g *Gamer) DisplayName() string {
	switch {
	case g.Surname != "":
		return g.Surname
	case g.LastName != "":
		return strings.TrimSpace(fmt.Sprintf("%s %s", g.LastName, g.FirstName))
	case g.Login != "":
		return g.Login
	default:
		return fmt.Sprintf("Gamer [%d]", g.ID)
	}
}

// DisplayID is the stable string form of the surrogate key, used for
// session-token embedding.
func (g *Gamer) DisplayID() string {
	return strconv.FormatUint(uint64(g.ID), 10)
}

// SetPassword stores the one-way salted hash of plaintext. The plaintext is
// never retained.
func (g *Gamer) SetPassword(plaintext string) error {
	hashed, err := utils.HashPassword(plaintext)
	if err != nil {
		return err
	}
	g.PasswordHashed = hashed
	return nil
}

// VerifyPassword reports whether plaintext matches the stored hash. It is
// false for any mismatch or absent hash and never errors.
func (g *Gamer) VerifyPassword(plaintext string) bool {
	if g.PasswordHashed == "" {
		return false
	}
	return utils.CheckPassword(g.PasswordHashed, plaintext)
}

// Attribute reads a named attribute as a string. The password is write-only:
// reading it is always an access violation, whether or not a hash is set.
func (g *Gamer) Attribute(name string) (string, error) {
	switch name {
	case "password", "password_hashed":
		return "", fmt.Errorf("attribute %s is write-only: %w", name, apperr.ErrAccessDenied)
	case "first_name":
		return g.FirstName, nil
	case "last_name":
		return g.LastName, nil
	case "surname":
		return g.Surname, nil
	case "login":
		return g.Login, nil
	case "email":
		return g.Email, nil
	default:
		return "", fmt.Errorf("attribute %s: %w", name, apperr.ErrNotFound)
	}
}

// Principal is the authenticated identity attached to a request, used for
// authorization checks and audit stamping.
type Principal struct {
	GamerID       uint
	Login         string
	active        bool
	authenticated bool
}

// NewPrincipal builds the principal for a gamer who just passed
// authentication.
func NewPrincipal(g *Gamer) Principal {
	return Principal{
		GamerID:       g.ID,
		Login:         g.Login,
		active:        g.Active,
		authenticated: true,
	}
}

// IsActive mirrors the gamer's active flag; an inactive account cannot
// maintain a session.
func (p Principal) IsActive() bool { return p.active }

// IsAuthenticated is true once the principal exists post-login.
func (p Principal) IsAuthenticated() bool { return p.authenticated }

// DisplayID is the stable string form of the gamer's surrogate key.
func (p Principal) DisplayID() string {
	return strconv.FormatUint(uint64(p.GamerID), 10)
}

// ActorID returns the principal's id as an audit actor reference.
func (p Principal) ActorID() *uint {
	return models.Actor(p.GamerID)
}
