package model

import (
	"time"

	"github.com/google/uuid"
)

type Concept struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChildId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_concepts_child_doc_key"`
	DocumentId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_concepts_child_doc_key"`
	ConceptKey string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_concepts_child_doc_key"`
	Label      string    `gorm:"type:varchar(255);not null"`
	Difficulty float64   `gorm:"not null;default:0.5"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (Concept) TableName() string {
	return "concepts"
}
