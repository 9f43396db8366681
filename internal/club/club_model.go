// club/model.go
package club

import (
	"fmt"

	"github.com/philmer-vdm/gamesess/internal/gamer"
	"github.com/philmer-vdm/gamesess/internal/models"
)

// Role is a gamer's role inside a club. The legacy data kept this as free
// text; unrecognized values parse to RoleUnknown instead of failing.
type Role string

const (
	RoleManager Role = "manager"
	RoleUser    Role = "user"
	RoleUnknown Role = "unknown"
)

func ParseRole(s string) Role {
	switch Role(s) {
	case RoleManager, RoleUser:
		return Role(s)
	default:
		return RoleUnknown
	}
}

// CanAdminister reports whether the role may administer the club.
func (r Role) CanAdminister() bool { return r == RoleManager }

// CanParticipate reports whether the role may read and participate.
func (r Role) CanParticipate() bool { return r == RoleManager || r == RoleUser }

// Club is a community of gamers organizing sessions of games around
// numerous tables. Public clubs appear in the open directory; private ones
// require membership to be visible.
type Club struct {
	models.AuditModel
	Name        string `json:"name" gorm:"size:255;not null"`
	Description string `json:"description" gorm:"type:text"`
	Address     string `json:"address" gorm:"type:text"`
	Public      bool   `json:"public" gorm:"default:false;index"`
}

// DisplayName falls back to a synthetic id label for unnamed clubs.
func (c *Club) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("Club [%d]", c.ID)
}

// GamerClub joins a gamer to a club under a role. At most one active row per
// (gamer, club) pair is meaningful for authorization; duplicates are a
// data-quality concern, not structurally prevented.
type GamerClub struct {
	models.AuditModel
	GamerID uint        `json:"gamer_id" gorm:"index;not null"`
	ClubID  uint        `json:"club_id" gorm:"index;not null"`
	Role    Role        `json:"role" gorm:"size:20;default:'user'"`
	Gamer   gamer.Gamer `json:"-" gorm:"foreignKey:GamerID"`
	Club    Club        `json:"-" gorm:"foreignKey:ClubID"`
}
