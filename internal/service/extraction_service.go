package service

import (
	"context"
	"time"

	"ai-schoolplay-be/internal/constant"
	"ai-schoolplay-be/internal/repository/specification"
	"ai-schoolplay-be/internal/repository/unitofwork"
	"ai-schoolplay-be/pkg/content"
	"ai-schoolplay-be/pkg/pipeline"

	"github.com/google/uuid"
)

// IExtractionService runs full text extraction after confirmation. Image
// uploads skip it entirely: the raw image rides along into the generation
// prompts instead of being OCR'd here.
type IExtractionService interface {
	HandleTextExtraction(ctx context.Context, documentId uuid.UUID) error
}

type extractionService struct {
	uowFactory unitofwork.RepositoryFactory
	extractor  content.TextExtractor
	dispatcher IStageDispatcher
}

func NewExtractionService(
	uowFactory unitofwork.RepositoryFactory,
	extractor content.TextExtractor,
	dispatcher IStageDispatcher,
) IExtractionService {
	return &extractionService{
		uowFactory: uowFactory,
		extractor:  extractor,
		dispatcher: dispatcher,
	}
}

func (s *extractionService) HandleTextExtraction(ctx context.Context, documentId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: documentId})
	if err != nil {
		return err
	}
	if doc == nil {
		return nil
	}

	doc.Status = constant.DocumentStatusProcessing
	doc.ErrorMessage = ""
	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return err
	}

	if pipeline.IsImage(doc.MimeType, doc.OriginalFilename) {
		now := time.Now()
		doc.Status = constant.DocumentStatusProcessed
		doc.ProcessedAt = &now
		if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
			return err
		}
		return s.dispatcher.DispatchConceptExtraction(ctx, doc.Id)
	}

	text, extractErr := s.extractor.ExtractText(ctx, doc.StoragePath, doc.MimeType)
	if extractErr != nil {
		doc.Status = constant.DocumentStatusFailed
		doc.ErrorMessage = extractErr.Error()
		if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
			return err
		}
		return extractErr
	}

	now := time.Now()
	doc.ExtractedText = text
	doc.Status = constant.DocumentStatusProcessed
	doc.ProcessedAt = &now
	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return err
	}

	return s.dispatcher.DispatchConceptExtraction(ctx, doc.Id)
}
