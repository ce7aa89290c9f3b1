package service

import (
	"context"
	"encoding/json"

	"ai-schoolplay-be/internal/config"
	"ai-schoolplay-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// IStageDispatcher enqueues pipeline stage tasks. Each stage has its own
// topic so backpressure stays per-stage; delivery is at-least-once and the
// handlers own their idempotency guards.
type IStageDispatcher interface {
	DispatchQuickScan(ctx context.Context, documentId uuid.UUID) error
	DispatchTextExtraction(ctx context.Context, documentId uuid.UUID) error
	DispatchConceptExtraction(ctx context.Context, documentId uuid.UUID) error
	DispatchPackGeneration(ctx context.Context, documentId uuid.UUID) error
	DispatchGameGeneration(ctx context.Context, packId, documentId uuid.UUID) error
}

type stageDispatcher struct {
	publisher message.Publisher
	topics    config.QueueConfig
}

func NewStageDispatcher(publisher message.Publisher, topics config.QueueConfig) IStageDispatcher {
	return &stageDispatcher{
		publisher: publisher,
		topics:    topics,
	}
}

func (d *stageDispatcher) publish(topic string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return d.publisher.Publish(topic, message.NewMessage(watermill.NewUUID(), data))
}

func (d *stageDispatcher) DispatchQuickScan(ctx context.Context, documentId uuid.UUID) error {
	return d.publish(d.topics.QuickScanTopic, dto.QuickScanMessage{DocumentId: documentId})
}

func (d *stageDispatcher) DispatchTextExtraction(ctx context.Context, documentId uuid.UUID) error {
	return d.publish(d.topics.TextExtractionTopic, dto.TextExtractionMessage{DocumentId: documentId})
}

func (d *stageDispatcher) DispatchConceptExtraction(ctx context.Context, documentId uuid.UUID) error {
	return d.publish(d.topics.ConceptExtractionTopic, dto.ConceptExtractionMessage{DocumentId: documentId})
}

func (d *stageDispatcher) DispatchPackGeneration(ctx context.Context, documentId uuid.UUID) error {
	return d.publish(d.topics.PackGenerationTopic, dto.PackGenerationMessage{DocumentId: documentId})
}

func (d *stageDispatcher) DispatchGameGeneration(ctx context.Context, packId, documentId uuid.UUID) error {
	return d.publish(d.topics.GameGenerationTopic, dto.GameGenerationMessage{PackId: packId, DocumentId: documentId})
}
