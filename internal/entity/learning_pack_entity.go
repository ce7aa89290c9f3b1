package entity

import (
	"time"

	"github.com/google/uuid"
)

// LearningPack is the generated content bundle for one document. Subject,
// topic, grade and language are snapshotted from the document at generation
// time on purpose; a later rescan must not rewrite an existing pack.
type LearningPack struct {
	Id         uuid.UUID
	DocumentId uuid.UUID
	ChildId    uuid.UUID
	Subject    string
	Topic      string
	Grade      string
	Language   string
	Tags       []string
	Content    map[string]interface{}
	CreatedAt  time.Time
}
