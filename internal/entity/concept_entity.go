package entity

import (
	"time"

	"github.com/google/uuid"
)

// Concept is one extracted learning unit. (ChildId, DocumentId, ConceptKey)
// is unique; re-extraction updates label/difficulty in place.
type Concept struct {
	Id         uuid.UUID
	ChildId    uuid.UUID
	DocumentId uuid.UUID
	ConceptKey string
	Label      string
	Difficulty float64 // [0,1]
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
