package pipeline

import (
	"time"

	"ai-schoolplay-be/internal/entity"
)

// Stage telemetry mutates the in-memory document only. The caller persists;
// every stage computes its whole state change first and saves it in one
// repository Update so transitions are never half-written.

// Transition closes out the current stage (adding its elapsed time to
// stage_timings), switches pipeline_stage, stamps the start time, clears the
// completion time, sets the progress hint and appends to stage_history.
// An empty status leaves the coarse lifecycle status untouched.
func Transition(doc *entity.Document, stage string, progressHint int, status string) {
	now := time.Now()
	closeCurrentStage(doc, now)

	doc.PipelineStage = stage
	doc.StageStartedAt = &now
	doc.StageCompletedAt = nil
	doc.ProgressHint = progressHint
	doc.StageHistory = append(doc.StageHistory, entity.StageEvent{
		Stage:     stage,
		Timestamp: now,
	})

	if status != "" {
		doc.Status = status
	}
}

// Complete does the same duration bookkeeping as Transition but marks a
// terminal point: start and completion time are both set to now. Stage and
// status are relabeled only when non-empty; a negative progressHint leaves
// the hint untouched. A stage relabel is appended to stage_history so the
// log also covers terminal states.
func Complete(doc *entity.Document, status, stage string, progressHint int) {
	now := time.Now()
	closeCurrentStage(doc, now)

	if stage != "" {
		doc.PipelineStage = stage
		doc.StageHistory = append(doc.StageHistory, entity.StageEvent{
			Stage:     stage,
			Timestamp: now,
		})
	}
	doc.StageStartedAt = &now
	doc.StageCompletedAt = &now
	if progressHint >= 0 {
		doc.ProgressHint = progressHint
	}
	if status != "" {
		doc.Status = status
	}
}

// RecordRuntime adds an arbitrary named duration to stage_timings. Used for
// end-to-end stage wall clocks that are independent of the transition log.
func RecordRuntime(doc *entity.Document, key string, duration time.Duration) {
	if doc.StageTimings == nil {
		doc.StageTimings = make(map[string]int64)
	}
	doc.StageTimings[key] += duration.Milliseconds()
}

// closeCurrentStage accumulates the elapsed time of the stage being left.
// Timings only ever grow; a document with no active stage is a no-op.
func closeCurrentStage(doc *entity.Document, now time.Time) {
	if doc.PipelineStage == "" || doc.StageStartedAt == nil {
		return
	}
	elapsed := now.Sub(*doc.StageStartedAt).Milliseconds()
	if elapsed < 0 {
		elapsed = 0
	}
	if doc.StageTimings == nil {
		doc.StageTimings = make(map[string]int64)
	}
	doc.StageTimings[doc.PipelineStage] += elapsed
}
