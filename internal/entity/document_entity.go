package entity

import (
	"time"

	"github.com/google/uuid"
)

// StageEvent is one entry of the append-only stage history log.
type StageEvent struct {
	Stage     string    `json:"stage"`
	Timestamp time.Time `json:"timestamp"`
}

// ScanAlternative is a secondary topic/language guess from the quick scan.
type ScanAlternative struct {
	Topic      string  `json:"topic"`
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

// Document owns the full processing lifecycle of one uploaded school
// document. It is mutated only by the pipeline stages and the validation
// gate; concepts, packs and games hang off it but are created elsewhere.
type Document struct {
	Id      uuid.UUID
	ChildId uuid.UUID
	UserId  uuid.UUID

	StoragePath      string
	MimeType         string
	OriginalFilename string
	ExtractedText    string
	ErrorMessage     string

	// Optional context supplied at upload, snapshotted into the pack.
	Subject string
	Grade   string
	Tags    []string

	// Pipeline telemetry facet. StageTimings values are cumulative
	// milliseconds and only ever increase; StageHistory is append-only.
	PipelineStage    string
	StageStartedAt   *time.Time
	StageCompletedAt *time.Time
	ProgressHint     int
	StageHistory     []StageEvent
	StageTimings     map[string]int64

	// Quick-scan facet.
	ScanStatus             string
	ScanTopicSuggestion    string
	ScanLanguageSuggestion string
	ScanConfidence         float64
	ScanAlternatives       []ScanAlternative
	ScanModel              string
	ScanCompletedAt        *time.Time

	// Validation facet. Confirmed is terminal.
	ValidationStatus  string
	ValidatedTopic    string
	ValidatedLanguage string
	ValidatedAt       *time.Time

	Status      string
	ProcessedAt *time.Time

	CreatedAt time.Time
	UpdatedAt *time.Time
}
