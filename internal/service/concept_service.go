package service

import (
	"context"
	"strings"
	"time"

	"ai-schoolplay-be/internal/constant"
	"ai-schoolplay-be/internal/entity"
	"ai-schoolplay-be/internal/repository/specification"
	"ai-schoolplay-be/internal/repository/unitofwork"
	"ai-schoolplay-be/pkg/content"
	"ai-schoolplay-be/pkg/pipeline"

	"github.com/google/uuid"
)

// IConceptService mines the bounded concept list out of a processed
// document. Upserts are keyed by (child, document, concept_key) so redelivery
// or a later re-extraction updates in place instead of duplicating.
type IConceptService interface {
	HandleConceptExtraction(ctx context.Context, documentId uuid.UUID) error
}

type conceptService struct {
	uowFactory unitofwork.RepositoryFactory
	extractor  content.ConceptExtractor
	dispatcher IStageDispatcher
	notifier   IProgressNotifier
}

func NewConceptService(
	uowFactory unitofwork.RepositoryFactory,
	extractor content.ConceptExtractor,
	dispatcher IStageDispatcher,
	notifier IProgressNotifier,
) IConceptService {
	return &conceptService{
		uowFactory: uowFactory,
		extractor:  extractor,
		dispatcher: dispatcher,
		notifier:   notifier,
	}
}

func (s *conceptService) HandleConceptExtraction(ctx context.Context, documentId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: documentId})
	if err != nil {
		return err
	}
	if doc == nil {
		return nil
	}
	if !pipeline.HasProcessableContent(doc) {
		// No text and not an image. Nothing to extract from; leave as-is.
		return nil
	}

	pipeline.Transition(doc, constant.StageConceptExtraction, 45, "")
	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return err
	}
	s.notifyProgress(doc)

	if strings.TrimSpace(doc.ExtractedText) != "" {
		concepts, extractErr := s.extractor.Extract(ctx, doc.ExtractedText)
		if extractErr != nil {
			return s.fail(ctx, uow, doc, extractErr)
		}

		for _, c := range concepts {
			concept := entity.Concept{
				Id:         uuid.New(),
				ChildId:    doc.ChildId,
				DocumentId: doc.Id,
				ConceptKey: c.Key,
				Label:      c.Label,
				Difficulty: c.Difficulty,
				CreatedAt:  time.Now(),
			}
			if upsertErr := uow.ConceptRepository().Upsert(ctx, &concept); upsertErr != nil {
				return s.fail(ctx, uow, doc, upsertErr)
			}
		}
	}

	pipeline.Transition(doc, constant.StageLearningPackQueued, 60, "")
	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return err
	}
	s.notifyProgress(doc)

	return s.dispatcher.DispatchPackGeneration(ctx, doc.Id)
}

func (s *conceptService) fail(ctx context.Context, uow unitofwork.UnitOfWork, doc *entity.Document, cause error) error {
	doc.ErrorMessage = cause.Error()
	pipeline.Complete(doc, constant.DocumentStatusFailed, constant.StageConceptFailed, -1)
	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return err
	}
	s.notifyProgress(doc)
	return cause
}

func (s *conceptService) notifyProgress(doc *entity.Document) {
	if s.notifier == nil {
		return
	}
	s.notifier.NotifyProgress(doc.UserId, progressUpdate(doc))
}
