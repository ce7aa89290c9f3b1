package dto

import (
	"time"

	"github.com/google/uuid"

	"ai-schoolplay-be/internal/entity"
)

// UploadDocumentRequest carries the multipart form fields next to the file.
type UploadDocumentRequest struct {
	ChildId uuid.UUID `form:"child_id" validate:"required"`
	Subject string    `form:"subject"`
	Grade   string    `form:"grade"`
}

type UploadDocumentResponse struct {
	Id            uuid.UUID `json:"id"`
	Status        string    `json:"status"`
	PipelineStage string    `json:"pipeline_stage"`
	ProgressHint  int       `json:"progress_hint"`
}

type ShowDocumentResponse struct {
	Id               uuid.UUID          `json:"id"`
	ChildId          uuid.UUID          `json:"child_id"`
	OriginalFilename string             `json:"original_filename"`
	MimeType         string             `json:"mime_type"`
	Subject          string             `json:"subject,omitempty"`
	Grade            string             `json:"grade,omitempty"`
	Status           string             `json:"status"`
	ErrorMessage     string             `json:"error_message,omitempty"`
	PipelineStage    string             `json:"pipeline_stage"`
	ProgressHint     int                `json:"progress_hint"`
	StageStartedAt   *time.Time         `json:"stage_started_at"`
	StageCompletedAt *time.Time         `json:"stage_completed_at"`
	StageHistory     []entity.StageEvent `json:"stage_history"`
	StageTimings     map[string]int64   `json:"stage_timings"`
	ProcessedAt      *time.Time         `json:"processed_at"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        *time.Time         `json:"updated_at"`
}

// ScanStatusResponse exposes the scan and validation facets only.
type ScanStatusResponse struct {
	Id                     uuid.UUID                `json:"id"`
	ScanStatus             string                   `json:"scan_status"`
	ScanTopicSuggestion    string                   `json:"scan_topic_suggestion,omitempty"`
	ScanLanguageSuggestion string                   `json:"scan_language_suggestion,omitempty"`
	ScanConfidence         float64                  `json:"scan_confidence"`
	ScanAlternatives       []entity.ScanAlternative `json:"scan_alternatives,omitempty"`
	ScanModel              string                   `json:"scan_model,omitempty"`
	ScanCompletedAt        *time.Time               `json:"scan_completed_at"`
	ValidationStatus       string                   `json:"validation_status"`
	ValidatedTopic         string                   `json:"validated_topic,omitempty"`
	ValidatedLanguage      string                   `json:"validated_language,omitempty"`
	ValidatedAt            *time.Time               `json:"validated_at"`
}

type ConfirmScanRequest struct {
	Id       uuid.UUID
	Topic    string `json:"topic" validate:"required"`
	Language string `json:"language" validate:"required"`
}

type ConfirmScanResponse struct {
	Id               uuid.UUID `json:"id"`
	ValidationStatus string    `json:"validation_status"`
	PipelineStage    string    `json:"pipeline_stage"`
	AlreadyApplied   bool      `json:"already_applied"`
}

type RescanResponse struct {
	Id            uuid.UUID `json:"id"`
	ScanStatus    string    `json:"scan_status"`
	PipelineStage string    `json:"pipeline_stage"`
}

type GameResponse struct {
	Id      uuid.UUID              `json:"id"`
	Type    string                 `json:"type"`
	Status  string                 `json:"status"`
	Payload map[string]interface{} `json:"payload"`
}

type PackResponse struct {
	Id         uuid.UUID              `json:"id"`
	DocumentId uuid.UUID              `json:"document_id"`
	Subject    string                 `json:"subject,omitempty"`
	Topic      string                 `json:"topic"`
	Grade      string                 `json:"grade,omitempty"`
	Language   string                 `json:"language"`
	Tags       []string               `json:"tags,omitempty"`
	Content    map[string]interface{} `json:"content"`
	Games      []GameResponse         `json:"games"`
	CreatedAt  time.Time              `json:"created_at"`
}
