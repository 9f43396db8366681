// internal/models/base.go
package models

import (
	"time"
)

// AuditModel is the audit envelope embedded by every entity: surrogate key,
// creation/modification provenance and the soft-delete flag. The actor
// references point at the gamer who performed the action; they are nullable
// so the bootstrap admin can be seeded with no actor.
type AuditModel struct {
	ID       uint      `json:"id" gorm:"primarykey"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
	CreateID *uint     `json:"create_id" gorm:"index"`
	ModifyID *uint     `json:"modify_id"`
	Active   bool      `json:"active" gorm:"default:true"`
}

// Stamp initializes the envelope for a freshly created entity.
func (m *AuditModel) Stamp(actorID *uint) {
	now := time.Now()
	m.Created = now
	m.Modified = now
	m.CreateID = actorID
	m.ModifyID = actorID
	m.Active = true
}

// Touch re-stamps the modification provenance. Active is never changed here;
// only an explicit deactivate flips it.
func (m *AuditModel) Touch(actorID *uint) {
	m.Modified = time.Now()
	m.ModifyID = actorID
}

// Deactivate soft-deletes the entity. Rows are never physically removed so
// that audit trails and foreign keys stay resolvable.
func (m *AuditModel) Deactivate(actorID *uint) {
	m.Touch(actorID)
	m.Active = false
}

// Actor wraps a gamer ID for use as an audit actor reference.
func Actor(id uint) *uint {
	return &id
}
