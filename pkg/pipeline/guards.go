package pipeline

import (
	"path/filepath"
	"strings"

	"ai-schoolplay-be/internal/constant"
	"ai-schoolplay-be/internal/entity"
)

var imageExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".webp": {},
	".gif":  {},
	".heic": {},
}

// ShouldAbortScanMutation reports whether a quick-scan task must not touch
// the document anymore: either a human already confirmed, or the pipeline
// stage shows a newer run superseded this task. Stages re-check this after
// every blocking call because the state can change mid-flight.
func ShouldAbortScanMutation(doc *entity.Document) bool {
	if doc.ValidationStatus == constant.ValidationStatusConfirmed {
		return true
	}
	switch doc.PipelineStage {
	case "", constant.StageQuickScanQueued, constant.StageQuickScanProcessing, constant.StageQuickScanFailed:
		return false
	}
	return true
}

// CanRescan reports whether a rescan request is allowed in the document's
// current state. Confirmed documents never rescan.
func CanRescan(doc *entity.Document) bool {
	if doc.ValidationStatus == constant.ValidationStatusConfirmed {
		return false
	}
	if doc.PipelineStage != "" {
		return doc.PipelineStage == constant.StageAwaitingValidation ||
			doc.PipelineStage == constant.StageQuickScanFailed
	}
	return doc.ScanStatus == constant.ScanStatusReady ||
		doc.ScanStatus == constant.ScanStatusFailed
}

// IsImage reports whether the document is image-typed, by mime type first
// and file extension as fallback. Image documents skip OCR; the raw image is
// attached to the generation prompts instead.
func IsImage(mimeType, filename string) bool {
	if strings.HasPrefix(strings.ToLower(mimeType), "image/") {
		return true
	}
	ext := strings.ToLower(filepath.Ext(filename))
	_, ok := imageExtensions[ext]
	return ok
}

// HasProcessableContent is the shared precondition of concept extraction and
// pack generation: there must be extracted text, or an image to attach.
func HasProcessableContent(doc *entity.Document) bool {
	if strings.TrimSpace(doc.ExtractedText) != "" {
		return true
	}
	return IsImage(doc.MimeType, doc.OriginalFilename)
}
