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
	"ai-schoolplay-be/pkg/schema"

	"github.com/google/uuid"
)

// IGameService fans a learning pack out into the fixed set of game payloads.
// Types are generated in a fixed order and the first failure aborts the run;
// games already created in that run stay, the task is retried as a whole.
type IGameService interface {
	HandleGameGeneration(ctx context.Context, packId, documentId uuid.UUID) error
}

type gameService struct {
	uowFactory     unitofwork.RepositoryFactory
	generator      content.ContentGenerator
	validator      *schema.Validator
	notifier       IProgressNotifier
	eventPublisher IEventPublisher
}

func NewGameService(
	uowFactory unitofwork.RepositoryFactory,
	generator content.ContentGenerator,
	validator *schema.Validator,
	notifier IProgressNotifier,
	eventPublisher IEventPublisher,
) IGameService {
	return &gameService{
		uowFactory:     uowFactory,
		generator:      generator,
		validator:      validator,
		notifier:       notifier,
		eventPublisher: eventPublisher,
	}
}

func (s *gameService) HandleGameGeneration(ctx context.Context, packId, documentId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: documentId})
	if err != nil {
		return err
	}
	if doc == nil {
		return nil
	}

	pack, err := uow.LearningPackRepository().FindOne(ctx, specification.ByID{ID: packId})
	if err != nil {
		return err
	}
	if pack == nil {
		return nil
	}

	pipeline.Transition(doc, constant.StageGameGeneration, 85, "")
	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return err
	}
	s.notifyProgress(doc)

	for _, gameType := range constant.GameTypes {
		payload, genErr := s.generator.GenerateGame(ctx, gameType, pack.Content)
		if genErr != nil {
			return s.fail(ctx, uow, doc, genErr)
		}
		if valErr := s.validator.Validate(payload, schema.GameSchemaRef(gameType)); valErr != nil {
			return s.fail(ctx, uow, doc, valErr)
		}

		game := entity.Game{
			Id:        uuid.New(),
			PackId:    pack.Id,
			Type:      gameType,
			Status:    constant.GameStatusReady,
			Payload:   payload,
			CreatedAt: time.Now(),
		}
		if createErr := uow.GameRepository().Create(ctx, &game); createErr != nil {
			return s.fail(ctx, uow, doc, createErr)
		}
	}

	pipeline.Complete(doc, constant.DocumentStatusProcessed, constant.StageReady, 100)
	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return err
	}
	s.notifyProgress(doc)

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: constant.EventDocumentReady,
			Data: map[string]interface{}{
				"document_id": doc.Id.String(),
				"pack_id":     pack.Id.String(),
			},
			OccurredAt: time.Now(),
		}
		_ = s.eventPublisher.Publish(ctx, evt)
	}

	return nil
}

func (s *gameService) fail(ctx context.Context, uow unitofwork.UnitOfWork, doc *entity.Document, cause error) error {
	doc.ErrorMessage = cause.Error()
	pipeline.Complete(doc, constant.DocumentStatusFailed, constant.StageFailed, -1)
	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return err
	}
	s.notifyProgress(doc)

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: constant.EventDocumentFailed,
			Data: map[string]interface{}{
				"document_id": doc.Id.String(),
				"error":       cause.Error(),
			},
			OccurredAt: time.Now(),
		}
		_ = s.eventPublisher.Publish(ctx, evt)
	}
	return cause
}

func (s *gameService) notifyProgress(doc *entity.Document) {
	if s.notifier == nil {
		return
	}
	s.notifier.NotifyProgress(doc.UserId, progressUpdate(doc))
}
