package constant

// Pipeline stage tags. These are free-form labels written into
// documents.pipeline_stage; the guard logic in pkg/pipeline keys off them.
const (
	StageQuickScanQueued     = "quick_scan_queued"
	StageQuickScanProcessing = "quick_scan_processing"
	StageQuickScanFailed     = "quick_scan_failed"
	StageAwaitingValidation  = "awaiting_validation"
	StageQueued              = "queued"
	StageConceptExtraction   = "concept_extraction"
	StageConceptFailed       = "concept_extraction_failed"
	StageLearningPackQueued  = "learning_pack_queued"
	StageLearningPackGen     = "learning_pack_generation"
	StageLearningPackFailed  = "learning_pack_failed"
	StageGameGenQueued       = "game_generation_queued"
	StageGameGeneration      = "game_generation"
	StageReady               = "ready"
	StageFailed              = "failed"
)

// Coarse document lifecycle.
const (
	DocumentStatusQueued     = "queued"
	DocumentStatusProcessing = "processing"
	DocumentStatusProcessed  = "processed"
	DocumentStatusFailed     = "failed"
)

// Quick-scan facet.
const (
	ScanStatusNone       = "none"
	ScanStatusProcessing = "processing"
	ScanStatusReady      = "ready"
	ScanStatusFailed     = "failed"
)

// Validation facet. Confirmed is terminal: no stage may revert it.
const (
	ValidationStatusPending   = "pending"
	ValidationStatusConfirmed = "confirmed"
)

// Runtime keys for stage_timings entries that are not stage transitions.
const (
	RuntimeKeyPackGeneration = "learning_pack_generation_runtime"
)

const (
	GameStatusReady = "ready"

	GameTypeFlashcards     = "flashcards"
	GameTypeQuiz           = "quiz"
	GameTypeMatching       = "matching"
	GameTypeTrueFalse      = "true_false"
	GameTypeFillBlank      = "fill_blank"
	GameTypeOrdering       = "ordering"
	GameTypeMultipleSelect = "multiple_select"
	GameTypeShortAnswer    = "short_answer"
)

// GameTypes is the fixed generation order. Game-Generation walks this list
// front to back and fails fast on the first type that errors.
var GameTypes = []string{
	GameTypeFlashcards,
	GameTypeQuiz,
	GameTypeMatching,
	GameTypeTrueFalse,
	GameTypeFillBlank,
	GameTypeOrdering,
	GameTypeMultipleSelect,
	GameTypeShortAnswer,
}

// MaxConceptsPerDocument bounds the concept extractor result list.
const MaxConceptsPerDocument = 10

// NATS event types published for the notification system.
const (
	EventDocumentUploaded = "DOCUMENT_UPLOADED"
	EventScanCompleted    = "SCAN_COMPLETED"
	EventDocumentReady    = "DOCUMENT_READY"
	EventDocumentFailed   = "DOCUMENT_FAILED"
)
