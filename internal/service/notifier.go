package service

import (
	"context"

	"github.com/google/uuid"

	"ai-schoolplay-be/internal/dto"
	"ai-schoolplay-be/internal/entity"
	"ai-schoolplay-be/pkg/events"
)

// IProgressNotifier pushes telemetry changes to connected clients.
// Implemented by the websocket hub; a nil-safe no-op is fine in tests.
type IProgressNotifier interface {
	NotifyProgress(userId uuid.UUID, update dto.DocumentProgressUpdate)
}

// IEventPublisher forwards domain events to the notification bus.
type IEventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

func progressUpdate(doc *entity.Document) dto.DocumentProgressUpdate {
	return dto.DocumentProgressUpdate{
		DocumentId:    doc.Id,
		PipelineStage: doc.PipelineStage,
		ProgressHint:  doc.ProgressHint,
		Status:        doc.Status,
		ScanStatus:    doc.ScanStatus,
	}
}
