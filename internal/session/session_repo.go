package session

import (
	"time"

	"gorm.io/gorm"

	"github.com/philmer-vdm/gamesess/internal/apperr"
)

type SessionRepository interface {
	Create(s *GameSession, actorID *uint) error
	GetByID(id uint) (*GameSession, error)
	ListForClub(clubID uint) ([]GameSession, error)
	Update(s *GameSession, actorID *uint) error
	Deactivate(id uint, actorID *uint) error

	CreateTable(t *GameTable, actorID *uint) error
	GetTableByID(id uint) (*GameTable, error)
	ListTables(sessionID uint) ([]GameTable, error)
	UpdateTable(t *GameTable, actorID *uint) error
	DeactivateTable(id uint, actorID *uint) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// validateSpan rejects reversed spans on write. Legacy rows with end before
// begin still read fine; the duration arithmetic handles them.
func validateSpan(begin, end time.Time) error {
	if begin.IsZero() {
		return apperr.Validation("begin", "is required")
	}
	if end.IsZero() {
		return apperr.Validation("end", "is required")
	}
	if end.Before(begin) {
		return apperr.Validation("end", "must not be before begin")
	}
	return nil
}

func (r *sessionRepository) Create(s *GameSession, actorID *uint) error {
	if err := validateSpan(s.Begin, s.End); err != nil {
		return err
	}
	s.Stamp(actorID)
	return apperr.Storage("create session", r.db.Create(s).Error)
}

func (r *sessionRepository) GetByID(id uint) (*GameSession, error) {
	var s GameSession
	if err := r.db.First(&s, id).Error; err != nil {
		return nil, apperr.Storage("get session", err)
	}
	return &s, nil
}

func (r *sessionRepository) ListForClub(clubID uint) ([]GameSession, error) {
	var sessions []GameSession
	err := r.db.Where("club_id = ? AND active = ?", clubID, true).
		Order("begin ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, apperr.Storage("list sessions", err)
	}
	return sessions, nil
}

func (r *sessionRepository) Update(s *GameSession, actorID *uint) error {
	if err := validateSpan(s.Begin, s.End); err != nil {
		return err
	}
	s.Touch(actorID)
	return apperr.Storage("update session", r.db.Save(s).Error)
}

func (r *sessionRepository) Deactivate(id uint, actorID *uint) error {
	s, err := r.GetByID(id)
	if err != nil {
		return err
	}
	s.AuditModel.Deactivate(actorID)
	return apperr.Storage("deactivate session", r.db.Save(s).Error)
}

func (r *sessionRepository) CreateTable(t *GameTable, actorID *uint) error {
	if t.Begin != nil && t.End != nil && t.End.Before(*t.Begin) {
		return apperr.Validation("end", "must not be before begin")
	}
	if t.MinPart > 0 && t.MaxPart > 0 && t.MinPart > t.MaxPart {
		return apperr.Validation("min_part", "must not exceed max_part")
	}
	t.Stamp(actorID)
	return apperr.Storage("create table", r.db.Create(t).Error)
}

func (r *sessionRepository) GetTableByID(id uint) (*GameTable, error) {
	var t GameTable
	if err := r.db.First(&t, id).Error; err != nil {
		return nil, apperr.Storage("get table", err)
	}
	return &t, nil
}

func (r *sessionRepository) ListTables(sessionID uint) ([]GameTable, error) {
	var tables []GameTable
	err := r.db.Preload("Game").
		Where("session_id = ? AND active = ?", sessionID, true).
		Order("name ASC").
		Find(&tables).Error
	if err != nil {
		return nil, apperr.Storage("list tables", err)
	}
	return tables, nil
}

func (r *sessionRepository) UpdateTable(t *GameTable, actorID *uint) error {
	if t.Begin != nil && t.End != nil && t.End.Before(*t.Begin) {
		return apperr.Validation("end", "must not be before begin")
	}
	t.Touch(actorID)
	return apperr.Storage("update table", r.db.Save(t).Error)
}

func (r *sessionRepository) DeactivateTable(id uint, actorID *uint) error {
	t, err := r.GetTableByID(id)
	if err != nil {
		return err
	}
	t.AuditModel.Deactivate(actorID)
	return apperr.Storage("deactivate table", r.db.Save(t).Error)
}
