package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type LearningPack struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId uuid.UUID `gorm:"type:uuid;not null;index"`
	ChildId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Subject    string    `gorm:"type:varchar(100)"`
	Topic      string    `gorm:"type:varchar(255)"`
	Grade      string    `gorm:"type:varchar(50)"`
	Language   string    `gorm:"type:varchar(10)"`
	Tags       datatypes.JSON `gorm:"type:jsonb"`
	Content    datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
}

func (LearningPack) TableName() string {
	return "learning_packs"
}
