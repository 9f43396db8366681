package attendance

import (
	"errors"

	"gorm.io/gorm"

	"github.com/philmer-vdm/gamesess/internal/apperr"
)

type AttendanceRepository interface {
	Register(a *Attendance, actorID *uint) error
	GetByID(id uint) (*Attendance, error)
	GetForTableAndGamer(tableID, gamerID uint) (*Attendance, error)
	ListForTable(tableID uint) ([]Attendance, error)
	ListForGamer(gamerID uint) ([]Attendance, error)
	UpdateStatus(id uint, status Status, actorID *uint) error
	Withdraw(id uint, actorID *uint) error
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Register(a *Attendance, actorID *uint) error {
	// A withdrawn attendance comes back as a reactivation, keeping one row
	// per (table, gamer) pair meaningful.
	existing, err := r.GetForTableAndGamer(a.GameTableID, a.GamerID)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return err
	}
	if existing != nil {
		if existing.Active {
			return apperr.Validation("attendance", "gamer is already registered at this table")
		}
		existing.Status = a.Status
		existing.Touch(actorID)
		existing.Active = true
		if err := r.db.Save(existing).Error; err != nil {
			return apperr.Storage("reactivate attendance", err)
		}
		*a = *existing
		return nil
	}

	a.Stamp(actorID)
	return apperr.Storage("register attendance", r.db.Create(a).Error)
}

func (r *attendanceRepository) GetByID(id uint) (*Attendance, error) {
	var a Attendance
	if err := r.db.First(&a, id).Error; err != nil {
		return nil, apperr.Storage("get attendance", err)
	}
	return &a, nil
}

func (r *attendanceRepository) GetForTableAndGamer(tableID, gamerID uint) (*Attendance, error) {
	var a Attendance
	err := r.db.Where("game_table_id = ? AND gamer_id = ?", tableID, gamerID).First(&a).Error
	if err != nil {
		return nil, apperr.Storage("get attendance", err)
	}
	return &a, nil
}

func (r *attendanceRepository) ListForTable(tableID uint) ([]Attendance, error) {
	var attendances []Attendance
	err := r.db.Preload("Gamer").
		Where("game_table_id = ? AND active = ?", tableID, true).
		Find(&attendances).Error
	if err != nil {
		return nil, apperr.Storage("list attendances for table", err)
	}
	return attendances, nil
}

func (r *attendanceRepository) ListForGamer(gamerID uint) ([]Attendance, error) {
	var attendances []Attendance
	err := r.db.Preload("GameTable").
		Where("gamer_id = ? AND active = ?", gamerID, true).
		Find(&attendances).Error
	if err != nil {
		return nil, apperr.Storage("list attendances for gamer", err)
	}
	return attendances, nil
}

func (r *attendanceRepository) UpdateStatus(id uint, status Status, actorID *uint) error {
	a, err := r.GetByID(id)
	if err != nil {
		return err
	}
	a.Status = status
	a.Touch(actorID)
	return apperr.Storage("update attendance", r.db.Save(a).Error)
}

func (r *attendanceRepository) Withdraw(id uint, actorID *uint) error {
	a, err := r.GetByID(id)
	if err != nil {
		return err
	}
	a.AuditModel.Deactivate(actorID)
	return apperr.Storage("withdraw attendance", r.db.Save(a).Error)
}
