package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Document struct {
	Id      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChildId uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId  uuid.UUID `gorm:"type:uuid;not null;index"`

	StoragePath      string `gorm:"type:varchar(512);not null"`
	MimeType         string `gorm:"type:varchar(100)"`
	OriginalFilename string `gorm:"type:varchar(255)"`
	ExtractedText    string `gorm:"type:text"`
	ErrorMessage     string `gorm:"type:text"`

	Subject string         `gorm:"type:varchar(100)"`
	Grade   string         `gorm:"type:varchar(50)"`
	Tags    datatypes.JSON `gorm:"type:jsonb"`

	PipelineStage    string `gorm:"type:varchar(64);index"`
	StageStartedAt   *time.Time
	StageCompletedAt *time.Time
	ProgressHint     int            `gorm:"default:0"`
	StageHistory     datatypes.JSON `gorm:"type:jsonb"`
	StageTimings     datatypes.JSON `gorm:"type:jsonb"`

	ScanStatus             string `gorm:"type:varchar(20);default:'none'"`
	ScanTopicSuggestion    string `gorm:"type:varchar(255)"`
	ScanLanguageSuggestion string `gorm:"type:varchar(10)"`
	ScanConfidence         float64
	ScanAlternatives       datatypes.JSON `gorm:"type:jsonb"`
	ScanModel              string         `gorm:"type:varchar(100)"`
	ScanCompletedAt        *time.Time

	ValidationStatus  string `gorm:"type:varchar(20);default:'pending'"`
	ValidatedTopic    string `gorm:"type:varchar(255)"`
	ValidatedLanguage string `gorm:"type:varchar(10)"`
	ValidatedAt       *time.Time

	Status      string `gorm:"type:varchar(20);not null;default:'queued';index"`
	ProcessedAt *time.Time

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Document) TableName() string {
	return "documents"
}
