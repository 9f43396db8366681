package club

import (
	"errors"

	"gorm.io/gorm"

	"github.com/philmer-vdm/gamesess/internal/apperr"
)

type ClubRepository interface {
	Create(c *Club, actorID *uint) error
	GetByID(id uint) (*Club, error)
	ListPublic() ([]Club, error)
	ListForGamer(gamerID uint) ([]Club, error)
	Update(c *Club, actorID *uint) error
	Deactivate(id uint, actorID *uint) error

	AddMember(clubID, gamerID uint, role Role, actorID *uint) error
	RemoveMember(clubID, gamerID uint, actorID *uint) error
	ChangeMemberRole(clubID, gamerID uint, role Role, actorID *uint) error
	ListMembers(clubID uint) ([]GamerClub, error)
	RoleFor(gamerID, clubID uint) (Role, error)
}

type clubRepository struct {
	db *gorm.DB
}

func NewClubRepository(db *gorm.DB) ClubRepository {
	return &clubRepository{db: db}
}

func (r *clubRepository) Create(c *Club, actorID *uint) error {
	c.Stamp(actorID)
	return apperr.Storage("create club", r.db.Create(c).Error)
}

func (r *clubRepository) GetByID(id uint) (*Club, error) {
	var c Club
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, apperr.Storage("get club", err)
	}
	return &c, nil
}

// ListPublic returns the open directory: active public clubs, by name.
func (r *clubRepository) ListPublic() ([]Club, error) {
	var clubs []Club
	err := r.db.Where("public = ? AND active = ?", true, true).
		Order("name ASC").
		Find(&clubs).Error
	if err != nil {
		return nil, apperr.Storage("list public clubs", err)
	}
	return clubs, nil
}

// ListForGamer returns clubs reachable through an active membership row,
// any role, private clubs included.
func (r *clubRepository) ListForGamer(gamerID uint) ([]Club, error) {
	var clubs []Club
	err := r.db.Model(&Club{}).
		Joins("JOIN gamer_clubs ON gamer_clubs.club_id = clubs.id").
		Where("gamer_clubs.gamer_id = ? AND gamer_clubs.active = ? AND clubs.active = ?", gamerID, true, true).
		Order("clubs.name ASC").
		Find(&clubs).Error
	if err != nil {
		return nil, apperr.Storage("list clubs for gamer", err)
	}
	return clubs, nil
}

func (r *clubRepository) Update(c *Club, actorID *uint) error {
	c.Touch(actorID)
	return apperr.Storage("update club", r.db.Save(c).Error)
}

func (r *clubRepository) Deactivate(id uint, actorID *uint) error {
	c, err := r.GetByID(id)
	if err != nil {
		return err
	}
	c.AuditModel.Deactivate(actorID)
	return apperr.Storage("deactivate club", r.db.Save(c).Error)
}

func (r *clubRepository) AddMember(clubID, gamerID uint, role Role, actorID *uint) error {
	if role == RoleUnknown {
		return apperr.Validation("role", "must be manager or user")
	}

	// Reactivate a previously removed membership rather than stacking rows.
	var existing GamerClub
	err := r.db.Where("club_id = ? AND gamer_id = ?", clubID, gamerID).First(&existing).Error
	if err == nil {
		if existing.Active {
			return apperr.Validation("membership", "gamer is already a member of this club")
		}
		existing.Role = role
		existing.Touch(actorID)
		existing.Active = true
		return apperr.Storage("reactivate membership", r.db.Save(&existing).Error)
	}
	if classified := apperr.Storage("check membership", err); !errors.Is(classified, apperr.ErrNotFound) {
		return classified
	}

	membership := GamerClub{ClubID: clubID, GamerID: gamerID, Role: role}
	membership.Stamp(actorID)
	return apperr.Storage("add member", r.db.Create(&membership).Error)
}

func (r *clubRepository) RemoveMember(clubID, gamerID uint, actorID *uint) error {
	var membership GamerClub
	err := r.db.Where("club_id = ? AND gamer_id = ? AND active = ?", clubID, gamerID, true).First(&membership).Error
	if err != nil {
		return apperr.Storage("get membership", err)
	}
	membership.AuditModel.Deactivate(actorID)
	return apperr.Storage("remove member", r.db.Save(&membership).Error)
}

func (r *clubRepository) ChangeMemberRole(clubID, gamerID uint, role Role, actorID *uint) error {
	if role == RoleUnknown {
		return apperr.Validation("role", "must be manager or user")
	}
	var membership GamerClub
	err := r.db.Where("club_id = ? AND gamer_id = ? AND active = ?", clubID, gamerID, true).First(&membership).Error
	if err != nil {
		return apperr.Storage("get membership", err)
	}
	membership.Role = role
	membership.Touch(actorID)
	return apperr.Storage("change member role", r.db.Save(&membership).Error)
}

func (r *clubRepository) ListMembers(clubID uint) ([]GamerClub, error) {
	var members []GamerClub
	err := r.db.Preload("Gamer").
		Where("club_id = ? AND active = ?", clubID, true).
		Find(&members).Error
	if err != nil {
		return nil, apperr.Storage("list members", err)
	}
	return members, nil
}

// RoleFor resolves the gamer's role in the club from the active membership
// row. No membership resolves to RoleUnknown, not an error.
func (r *clubRepository) RoleFor(gamerID, clubID uint) (Role, error) {
	var membership GamerClub
	err := r.db.Where("gamer_id = ? AND club_id = ? AND active = ?", gamerID, clubID, true).First(&membership).Error
	if err != nil {
		if classified := apperr.Storage("get membership", err); !errors.Is(classified, apperr.ErrNotFound) {
			return RoleUnknown, classified
		}
		return RoleUnknown, nil
	}
	return ParseRole(string(membership.Role)), nil
}
