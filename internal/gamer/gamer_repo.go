package gamer

import (
	"gorm.io/gorm"

	"github.com/philmer-vdm/gamesess/internal/apperr"
)

type GamerRepository interface {
	Create(g *Gamer, actorID *uint) error
	GetByID(id uint) (*Gamer, error)
	GetByLogin(login string) (*Gamer, error)
	GetByEmail(email string) (*Gamer, error)
	List(page, pageSize int) ([]Gamer, int64, error)
	Update(g *Gamer, actorID *uint) error
	Deactivate(id uint, actorID *uint) error
	Count() (int64, error)
}

type gamerRepository struct {
	db *gorm.DB
}

func NewGamerRepository(db *gorm.DB) GamerRepository {
	return &gamerRepository{db: db}
}

func (r *gamerRepository) Create(g *Gamer, actorID *uint) error {
	g.Stamp(actorID)
	return apperr.Storage("create gamer", r.db.Create(g).Error)
}

func (r *gamerRepository) GetByID(id uint) (*Gamer, error) {
	var g Gamer
	if err := r.db.First(&g, id).Error; err != nil {
		return nil, apperr.Storage("get gamer", err)
	}
	return &g, nil
}

func (r *gamerRepository) GetByLogin(login string) (*Gamer, error) {
	var g Gamer
	if err := r.db.Where("login = ?", login).First(&g).Error; err != nil {
		return nil, apperr.Storage("get gamer by login", err)
	}
	return &g, nil
}

func (r *gamerRepository) GetByEmail(email string) (*Gamer, error) {
	var g Gamer
	if err := r.db.Where("email = ?", email).First(&g).Error; err != nil {
		return nil, apperr.Storage("get gamer by email", err)
	}
	return &g, nil
}

// List returns active gamers only; deactivated accounts stay in the table
// for audit resolution but drop out of default listings.
func (r *gamerRepository) List(page, pageSize int) ([]Gamer, int64, error) {
	var gamers []Gamer
	var total int64

	query := r.db.Model(&Gamer{}).Where("active = ?", true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperr.Storage("count gamers", err)
	}

	offset := (page - 1) * pageSize
	if err := query.Order("login ASC").Offset(offset).Limit(pageSize).Find(&gamers).Error; err != nil {
		return nil, 0, apperr.Storage("list gamers", err)
	}
	return gamers, total, nil
}

func (r *gamerRepository) Update(g *Gamer, actorID *uint) error {
	g.Touch(actorID)
	return apperr.Storage("update gamer", r.db.Save(g).Error)
}

func (r *gamerRepository) Deactivate(id uint, actorID *uint) error {
	g, err := r.GetByID(id)
	if err != nil {
		return err
	}
	g.AuditModel.Deactivate(actorID)
	return apperr.Storage("deactivate gamer", r.db.Save(g).Error)
}

func (r *gamerRepository) Count() (int64, error) {
	var total int64
	if err := r.db.Model(&Gamer{}).Count(&total).Error; err != nil {
		return 0, apperr.Storage("count gamers", err)
	}
	return total, nil
}
