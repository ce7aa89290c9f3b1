package service

import (
	"context"
	"time"

	"ai-schoolplay-be/internal/constant"
	"ai-schoolplay-be/internal/entity"
	"ai-schoolplay-be/internal/repository/specification"
	"ai-schoolplay-be/internal/repository/unitofwork"
	"ai-schoolplay-be/pkg/content"
	"ai-schoolplay-be/pkg/events"
	"ai-schoolplay-be/pkg/pipeline"

	"github.com/google/uuid"
)

// IScanService runs the quick classification pass on an uploaded document.
// Delivery is at-least-once, so the handler re-fetches and re-guards around
// the external call; a stale task exits silently instead of clobbering a
// confirmed or superseded document.
type IScanService interface {
	HandleQuickScan(ctx context.Context, documentId uuid.UUID) error
}

type scanService struct {
	uowFactory     unitofwork.RepositoryFactory
	classifier     content.Classifier
	notifier       IProgressNotifier
	eventPublisher IEventPublisher
}

func NewScanService(
	uowFactory unitofwork.RepositoryFactory,
	classifier content.Classifier,
	notifier IProgressNotifier,
	eventPublisher IEventPublisher,
) IScanService {
	return &scanService{
		uowFactory:     uowFactory,
		classifier:     classifier,
		notifier:       notifier,
		eventPublisher: eventPublisher,
	}
}

func (s *scanService) HandleQuickScan(ctx context.Context, documentId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: documentId})
	if err != nil {
		return err
	}
	if doc == nil || pipeline.ShouldAbortScanMutation(doc) {
		// Deleted, confirmed, or superseded by a newer rescan. Not an error.
		return nil
	}

	pipeline.Transition(doc, constant.StageQuickScanProcessing, 20, constant.DocumentStatusProcessing)
	doc.ScanStatus = constant.ScanStatusProcessing
	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return err
	}
	s.notifyProgress(doc)

	result, scanErr := s.classifier.Scan(ctx, doc.StoragePath, doc.MimeType)

	// State may have moved while the classifier ran.
	doc, err = uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: documentId})
	if err != nil {
		return err
	}
	if doc == nil || pipeline.ShouldAbortScanMutation(doc) {
		return nil
	}

	if scanErr != nil {
		doc.ScanStatus = constant.ScanStatusFailed
		doc.ValidationStatus = constant.ValidationStatusPending
		doc.ErrorMessage = scanErr.Error()
		pipeline.Complete(doc, constant.DocumentStatusFailed, constant.StageQuickScanFailed, -1)
		if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
			return err
		}
		s.notifyProgress(doc)
		return scanErr
	}

	now := time.Now()
	doc.ScanStatus = constant.ScanStatusReady
	doc.ScanTopicSuggestion = result.Topic
	doc.ScanLanguageSuggestion = result.Language
	doc.ScanConfidence = result.Confidence
	doc.ScanAlternatives = toScanAlternatives(result.Alternatives)
	doc.ScanModel = result.Model
	doc.ScanCompletedAt = &now
	doc.ValidationStatus = constant.ValidationStatusPending
	pipeline.Transition(doc, constant.StageAwaitingValidation, 30, constant.DocumentStatusQueued)

	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return err
	}
	s.notifyProgress(doc)

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: constant.EventScanCompleted,
			Data: map[string]interface{}{
				"document_id": doc.Id.String(),
				"topic":       result.Topic,
				"language":    result.Language,
			},
			OccurredAt: now,
		}
		_ = s.eventPublisher.Publish(ctx, evt)
	}

	return nil
}

func (s *scanService) notifyProgress(doc *entity.Document) {
	if s.notifier == nil {
		return
	}
	s.notifier.NotifyProgress(doc.UserId, progressUpdate(doc))
}

func toScanAlternatives(in []content.ScanAlternative) []entity.ScanAlternative {
	out := make([]entity.ScanAlternative, 0, len(in))
	for _, a := range in {
		out = append(out, entity.ScanAlternative{
			Topic:      a.Topic,
			Language:   a.Language,
			Confidence: a.Confidence,
		})
	}
	return out
}
