// session/model.go
package session

import (
	"time"

	"github.com/philmer-vdm/gamesess/internal/catalog"
	"github.com/philmer-vdm/gamesess/internal/club"
	"github.com/philmer-vdm/gamesess/internal/models"
)

// SessionType distinguishes an evening session from a full weekend. Legacy
// rows carried free text; anything unrecognized parses to TypeOther.
type SessionType string

const (
	TypeEvening SessionType = "evening"
	TypeWeekend SessionType = "weekend"
	TypeOther   SessionType = "other"
)

func ParseSessionType(s string) SessionType {
	switch SessionType(s) {
	case TypeEvening, TypeWeekend:
		return SessionType(s)
	default:
		return TypeOther
	}
}

// SessionState tracks the planning state of a session. There is no enforced
// transition graph; the state is informational.
type SessionState string

const (
	StatePossible  SessionState = "possible"
	StateConfirmed SessionState = "confirmed"
	StateDone      SessionState = "done"
	StateCancel    SessionState = "cancel"
	StateUnknown   SessionState = "unknown"
)

func ParseSessionState(s string) SessionState {
	switch SessionState(s) {
	case StatePossible, StateConfirmed, StateDone, StateCancel:
		return SessionState(s)
	default:
		return StateUnknown
	}
}

// TableType marks a table as a proposal or a confirmed seating.
type TableType string

const (
	TableProposal  TableType = "proposal"
	TableConfirmed TableType = "confirmed"
	TableUnknown   TableType = "unknown"
)

func ParseTableType(s string) TableType {
	switch TableType(s) {
	case TableProposal, TableConfirmed:
		return TableType(s)
	default:
		return TableUnknown
	}
}

// GameSession is a scheduled event owned by a club, where gamers can play
// many games at many tables.
type GameSession struct {
	models.AuditModel
	Name   string       `json:"name" gorm:"not null"`
	Begin  time.Time    `json:"begin" gorm:"not null"`
	End    time.Time    `json:"end" gorm:"not null"`
	Type   SessionType  `json:"type" gorm:"size:20"`
	State  SessionState `json:"state" gorm:"size:20"`
	ClubID uint         `json:"club_id" gorm:"index;not null"`
	Club   club.Club    `json:"-" gorm:"foreignKey:ClubID"`
}

// DurationInSeconds is the exact elapsed whole seconds of the session, 0
// when either side of the span is unset. Legacy rows may have a reversed
// span; the result is then negative.
func (s *GameSession) DurationInSeconds() int64 {
	return spanSeconds(s.Begin, s.End)
}

// Duration decomposes the session span into days, hours, minutes, seconds.
func (s *GameSession) Duration() (days, hours, minutes, seconds int64) {
	return decompose(spanSeconds(s.Begin, s.End))
}

// GameTable is a seating at a session around one catalog game. Its span is
// independent of the session's; nothing ties the table inside the session
// window.
type GameTable struct {
	models.AuditModel
	Name        string       `json:"name" gorm:"not null"`
	Description string       `json:"description" gorm:"type:text"`
	Begin       *time.Time   `json:"begin"`
	End         *time.Time   `json:"end"`
	MinPart     int          `json:"min_part"`
	MaxPart     int          `json:"max_part"`
	Type        TableType    `json:"type" gorm:"size:20;default:'proposal'"`
	GameID      uint         `json:"game_id" gorm:"index;not null"`
	SessionID   uint         `json:"session_id" gorm:"index;not null"`
	Game        catalog.Game `json:"-" gorm:"foreignKey:GameID"`
	Session     GameSession  `json:"-" gorm:"foreignKey:SessionID"`
}

// DurationInSeconds mirrors the session arithmetic; a table without both
// timestamps has no duration.
func (t *GameTable) DurationInSeconds() int64 {
	if t.Begin == nil || t.End == nil {
		return 0
	}
	return spanSeconds(*t.Begin, *t.End)
}

// Duration decomposes the table span into days, hours, minutes, seconds.
func (t *GameTable) Duration() (days, hours, minutes, seconds int64) {
	if t.Begin == nil || t.End == nil {
		return 0, 0, 0, 0
	}
	return decompose(spanSeconds(*t.Begin, *t.End))
}

func spanSeconds(begin, end time.Time) int64 {
	if begin.IsZero() || end.IsZero() {
		return 0
	}
	return int64(end.Sub(begin) / time.Second)
}

// decompose reduces a span to calendar components, each bounded by its
// unit. Recombining days*86400 + hours*3600 + minutes*60 + seconds yields
// the original value.
func decompose(total int64) (days, hours, minutes, seconds int64) {
	days = total / 86400
	rem := total % 86400
	hours = rem / 3600
	rem %= 3600
	minutes = rem / 60
	seconds = rem % 60
	return days, hours, minutes, seconds
}
