package catalog

import (
	"gorm.io/gorm"

	"github.com/philmer-vdm/gamesess/internal/apperr"
)

type GameRepository interface {
	Create(g *Game, actorID *uint) error
	GetByID(id uint) (*Game, error)
	List(page, pageSize int, searchTerm string) ([]Game, int64, error)
	ListRoots() ([]Game, error)
	Children(parentID uint) ([]Game, error)
	Update(g *Game, actorID *uint) error
	SetParent(id uint, parentID *uint, actorID *uint) error
	Deactivate(id uint, actorID *uint) error
}

type gameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) Create(g *Game, actorID *uint) error {
	if g.ParentID != nil {
		if _, err := r.GetByID(*g.ParentID); err != nil {
			return err
		}
	}
	g.Stamp(actorID)
	return apperr.Storage("create game", r.db.Create(g).Error)
}

func (r *gameRepository) GetByID(id uint) (*Game, error) {
	var g Game
	if err := r.db.First(&g, id).Error; err != nil {
		return nil, apperr.Storage("get game", err)
	}
	return &g, nil
}

func (r *gameRepository) List(page, pageSize int, searchTerm string) ([]Game, int64, error) {
	var games []Game
	var total int64

	query := r.db.Model(&Game{}).Where("active = ?", true)
	if searchTerm != "" {
		query = query.Where("name LIKE ?", "%"+searchTerm+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperr.Storage("count games", err)
	}

	offset := (page - 1) * pageSize
	if err := query.Order("name ASC").Offset(offset).Limit(pageSize).Find(&games).Error; err != nil {
		return nil, 0, apperr.Storage("list games", err)
	}
	return games, total, nil
}

// ListRoots returns active base games, the ones with no parent.
func (r *gameRepository) ListRoots() ([]Game, error) {
	var games []Game
	err := r.db.Where("parent_id IS NULL AND active = ?", true).Order("name ASC").Find(&games).Error
	if err != nil {
		return nil, apperr.Storage("list root games", err)
	}
	return games, nil
}

// Children is the derived back-reference: every game whose parent_id points
// at the given game, computed by query, never stored on the parent. A game
// created with this parent shows up here without any update to the parent.
func (r *gameRepository) Children(parentID uint) ([]Game, error) {
	var games []Game
	err := r.db.Where("parent_id = ?", parentID).Order("name ASC").Find(&games).Error
	if err != nil {
		return nil, apperr.Storage("list children", err)
	}
	return games, nil
}

func (r *gameRepository) Update(g *Game, actorID *uint) error {
	g.Touch(actorID)
	return apperr.Storage("update game", r.db.Save(g).Error)
}

// SetParent re-roots a game under a new parent (or detaches it with nil).
// An assignment that would close a cycle in the catalog is rejected as a
// validation failure.
func (r *gameRepository) SetParent(id uint, parentID *uint, actorID *uint) error {
	g, err := r.GetByID(id)
	if err != nil {
		return err
	}

	if parentID != nil {
		if *parentID == id {
			return apperr.Validation("parent_id", "a game cannot be its own parent")
		}
		ancestor, err := r.GetByID(*parentID)
		if err != nil {
			return err
		}
		// Walk up from the proposed parent; hitting the game itself means
		// the assignment would close a cycle.
		for ancestor.ParentID != nil {
			if *ancestor.ParentID == id {
				return apperr.Validation("parent_id", "assignment would create a cycle in the catalog")
			}
			ancestor, err = r.GetByID(*ancestor.ParentID)
			if err != nil {
				return err
			}
		}
	}

	g.ParentID = parentID
	return r.Update(g, actorID)
}

// Deactivate soft-deletes the game. Tables referencing it stay resolvable,
// and children keep their parent reference.
func (r *gameRepository) Deactivate(id uint, actorID *uint) error {
	g, err := r.GetByID(id)
	if err != nil {
		return err
	}
	g.AuditModel.Deactivate(actorID)
	return apperr.Storage("deactivate game", r.db.Save(g).Error)
}
