package content

import "context"

// ScanAlternative is a lower-confidence classification candidate.
type ScanAlternative struct {
	Topic      string  `json:"topic"`
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

// ScanResult is the outcome of a quick classification pass over a document.
type ScanResult struct {
	Topic        string            `json:"topic"`
	Language     string            `json:"language"`
	Confidence   float64           `json:"confidence"`
	Alternatives []ScanAlternative `json:"alternatives"`
	Model        string            `json:"-"`
}

// ExtractedConcept is one learning concept mined from document text.
type ExtractedConcept struct {
	Key        string  `json:"key"`
	Label      string  `json:"label"`
	Difficulty float64 `json:"difficulty"`
}

// Classifier performs the cheap first-look classification of an uploaded
// document, before any heavy extraction runs.
type Classifier interface {
	Scan(ctx context.Context, storagePath, mimeType string) (*ScanResult, error)
}

// TextExtractor turns the stored document into plain text. Image uploads go
// through the vision model; text-like uploads are read as-is.
type TextExtractor interface {
	ExtractText(ctx context.Context, storagePath, mimeType string) (string, error)
}

// ConceptExtractor mines a bounded list of learning concepts from text.
type ConceptExtractor interface {
	Extract(ctx context.Context, text string) ([]ExtractedConcept, error)
}

// PackSource is the document-side input to pack generation: extracted text
// for text documents, the stored image for image documents (which skip OCR
// and carry no text).
type PackSource struct {
	Text        string
	StoragePath string
	MimeType    string
}

// ContentGenerator produces the learning pack body and the per-type game
// payloads. Both return loose maps; the caller validates them against the
// structural schemas before persisting.
type ContentGenerator interface {
	GeneratePack(ctx context.Context, source PackSource, concepts []ExtractedConcept) (map[string]interface{}, error)
	GenerateGame(ctx context.Context, gameType string, packContent map[string]interface{}) (map[string]interface{}, error)
}
