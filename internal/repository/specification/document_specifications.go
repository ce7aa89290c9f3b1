package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnedBy restricts rows to one parent account.
type OwnedBy struct {
	UserID uuid.UUID
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// ByChildID filters by the owning child profile.
type ByChildID struct {
	ChildID uuid.UUID
}

func (s ByChildID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("child_id = ?", s.ChildID)
}

// ByDocumentID filters child rows (concepts, packs) of one document.
type ByDocumentID struct {
	DocumentID uuid.UUID
}

func (s ByDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}

// ByPackID filters games of one learning pack.
type ByPackID struct {
	PackID uuid.UUID
}

func (s ByPackID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("pack_id = ?", s.PackID)
}

// ByConceptKey filters by the stable concept key.
type ByConceptKey struct {
	Key string
}

func (s ByConceptKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("concept_key = ?", s.Key)
}

// ByGameType filters by game type.
type ByGameType struct {
	Type string
}

func (s ByGameType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("type = ?", s.Type)
}

// ByStatus filters documents by coarse lifecycle status.
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}
