package dto

import "github.com/google/uuid"

// Stage task messages published on the work queues. One struct per topic;
// the document id is the idempotency scope of every stage handler.

type QuickScanMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}

type TextExtractionMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}

type ConceptExtractionMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}

type PackGenerationMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}

type GameGenerationMessage struct {
	PackId     uuid.UUID `json:"pack_id"`
	DocumentId uuid.UUID `json:"document_id"`
}

// DocumentProgressUpdate is pushed to connected websocket clients whenever a
// document's telemetry changes.
type DocumentProgressUpdate struct {
	DocumentId    uuid.UUID `json:"document_id"`
	PipelineStage string    `json:"pipeline_stage"`
	ProgressHint  int       `json:"progress_hint"`
	Status        string    `json:"status"`
	ScanStatus    string    `json:"scan_status"`
}
