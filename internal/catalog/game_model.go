// catalog/model.go
package catalog

import (
	"github.com/philmer-vdm/gamesess/internal/models"
)

// Game is a catalog entry: a base game, or a scenario/expansion of another
// game. Children reference their parent; the parent never depends on its
// children. The catalog is a forest of unbounded depth.
type Game struct {
	models.AuditModel
	Name            string `json:"name" gorm:"size:255;not null"`
	Parts           string `json:"parts" gorm:"size:100"` // party-size notation, e.g. "2-4;6"
	AverageDuration int    `json:"average_duration"`      // minutes
	ParentID        *uint  `json:"parent_id" gorm:"index"`
}

// PartsAsList expands the game's party-size notation.
func (g *Game) PartsAsList() []int {
	return PartsAsList(g.Parts)
}

// AcceptsParty reports whether the game plays at the given party size.
func (g *Game) AcceptsParty(size int) bool {
	for _, n := range g.PartsAsList() {
		if n == size {
			return true
		}
	}
	return false
}
