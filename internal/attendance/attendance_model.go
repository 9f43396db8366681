// attendance/model.go
package attendance

import (
	"github.com/philmer-vdm/gamesess/internal/gamer"
	"github.com/philmer-vdm/gamesess/internal/models"
	"github.com/philmer-vdm/gamesess/internal/session"
)

// Status is a gamer's participation state at a table. The legacy schema
// stored it as free text; unrecognized values parse to StatusOther.
type Status string

const (
	StatusInitiator Status = "initiator"
	StatusConfirmed Status = "confirmed"
	StatusPossible  Status = "possible"
	StatusOther     Status = "other"
)

func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusInitiator, StatusConfirmed, StatusPossible:
		return Status(s)
	default:
		return StatusOther
	}
}

// Attendance registers a gamer at a game table under a status.
type Attendance struct {
	models.AuditModel
	Status      Status            `json:"status" gorm:"size:20;default:'possible'"`
	GameTableID uint              `json:"game_table_id" gorm:"index;not null"`
	GamerID     uint              `json:"gamer_id" gorm:"index;not null"`
	GameTable   session.GameTable `json:"-" gorm:"foreignKey:GameTableID"`
	Gamer       gamer.Gamer       `json:"-" gorm:"foreignKey:GamerID"`
}
