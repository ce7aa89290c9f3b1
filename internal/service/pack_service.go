package service

import (
	"context"
	"time"

	"ai-schoolplay-be/internal/constant"
	"ai-schoolplay-be/internal/entity"
	"ai-schoolplay-be/internal/repository/specification"
	"ai-schoolplay-be/internal/repository/unitofwork"
	"ai-schoolplay-be/pkg/content"
	"ai-schoolplay-be/pkg/pipeline"
	"ai-schoolplay-be/pkg/schema"

	"github.com/google/uuid"
)

// IPackService generates the learning pack for a document. The pack
// snapshots subject/topic/grade/language from the document at generation
// time; a later rescan never rewrites an existing pack.
type IPackService interface {
	HandlePackGeneration(ctx context.Context, documentId uuid.UUID) error
}

type packService struct {
	uowFactory unitofwork.RepositoryFactory
	generator  content.ContentGenerator
	validator  *schema.Validator
	dispatcher IStageDispatcher
	notifier   IProgressNotifier
}

func NewPackService(
	uowFactory unitofwork.RepositoryFactory,
	generator content.ContentGenerator,
	validator *schema.Validator,
	dispatcher IStageDispatcher,
	notifier IProgressNotifier,
) IPackService {
	return &packService{
		uowFactory: uowFactory,
		generator:  generator,
		validator:  validator,
		dispatcher: dispatcher,
		notifier:   notifier,
	}
}

func (s *packService) HandlePackGeneration(ctx context.Context, documentId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: documentId})
	if err != nil {
		return err
	}
	if doc == nil || !pipeline.HasProcessableContent(doc) {
		return nil
	}

	// The end-to-end wall clock of this stage is recorded against a fresh
	// copy of the document, success or failure, separate from the
	// per-transition timings.
	started := time.Now()
	defer func() {
		s.recordRuntime(ctx, documentId, time.Since(started))
	}()

	// Redelivered task after the pack was already created: skip straight to
	// game generation instead of generating a second pack.
	existing, err := uow.LearningPackRepository().FindOne(ctx, specification.ByDocumentID{DocumentID: doc.Id})
	if err != nil {
		return err
	}
	if existing != nil {
		return s.advanceToGames(ctx, uow, doc, existing.Id)
	}

	pipeline.Transition(doc, constant.StageLearningPackGen, 65, "")
	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return err
	}
	s.notifyProgress(doc)

	concepts, err := uow.ConceptRepository().FindAll(ctx, specification.ByDocumentID{DocumentID: doc.Id})
	if err != nil {
		return err
	}

	source := content.PackSource{
		Text:        doc.ExtractedText,
		StoragePath: doc.StoragePath,
		MimeType:    doc.MimeType,
	}
	packContent, genErr := s.generator.GeneratePack(ctx, source, toExtractedConcepts(concepts))
	if genErr != nil {
		return s.fail(ctx, uow, doc, genErr)
	}
	if valErr := s.validator.Validate(packContent, schema.RefLearningPack); valErr != nil {
		return s.fail(ctx, uow, doc, valErr)
	}

	pack := entity.LearningPack{
		Id:         uuid.New(),
		DocumentId: doc.Id,
		ChildId:    doc.ChildId,
		Subject:    doc.Subject,
		Topic:      topicOf(doc),
		Grade:      doc.Grade,
		Language:   languageOf(doc),
		Tags:       doc.Tags,
		Content:    packContent,
		CreatedAt:  time.Now(),
	}
	if err := uow.LearningPackRepository().Create(ctx, &pack); err != nil {
		return err
	}

	return s.advanceToGames(ctx, uow, doc, pack.Id)
}

func (s *packService) advanceToGames(ctx context.Context, uow unitofwork.UnitOfWork, doc *entity.Document, packId uuid.UUID) error {
	pipeline.Transition(doc, constant.StageGameGenQueued, 80, "")
	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return err
	}
	s.notifyProgress(doc)
	return s.dispatcher.DispatchGameGeneration(ctx, packId, doc.Id)
}

func (s *packService) fail(ctx context.Context, uow unitofwork.UnitOfWork, doc *entity.Document, cause error) error {
	doc.ErrorMessage = cause.Error()
	pipeline.Complete(doc, constant.DocumentStatusFailed, constant.StageLearningPackFailed, -1)
	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return err
	}
	s.notifyProgress(doc)
	return cause
}

func (s *packService) recordRuntime(ctx context.Context, documentId uuid.UUID, elapsed time.Duration) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: documentId})
	if err != nil || doc == nil {
		return
	}
	pipeline.RecordRuntime(doc, constant.RuntimeKeyPackGeneration, elapsed)
	_ = uow.DocumentRepository().Update(ctx, doc)
}

func (s *packService) notifyProgress(doc *entity.Document) {
	if s.notifier == nil {
		return
	}
	s.notifier.NotifyProgress(doc.UserId, progressUpdate(doc))
}

func toExtractedConcepts(concepts []*entity.Concept) []content.ExtractedConcept {
	out := make([]content.ExtractedConcept, 0, len(concepts))
	for _, c := range concepts {
		out = append(out, content.ExtractedConcept{
			Key:        c.ConceptKey,
			Label:      c.Label,
			Difficulty: c.Difficulty,
		})
	}
	return out
}

// topicOf prefers the human-validated topic over the scan suggestion.
func topicOf(doc *entity.Document) string {
	if doc.ValidatedTopic != "" {
		return doc.ValidatedTopic
	}
	return doc.ScanTopicSuggestion
}

func languageOf(doc *entity.Document) string {
	if doc.ValidatedLanguage != "" {
		return doc.ValidatedLanguage
	}
	return doc.ScanLanguageSuggestion
}
