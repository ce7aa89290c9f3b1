package service

import (
	"context"
	"fmt"
	"time"

	"ai-schoolplay-be/internal/constant"
	"ai-schoolplay-be/internal/dto"
	"ai-schoolplay-be/internal/entity"
	"ai-schoolplay-be/internal/repository/specification"
	"ai-schoolplay-be/internal/repository/unitofwork"
	"ai-schoolplay-be/pkg/events"
	"ai-schoolplay-be/pkg/pipeline"
	"ai-schoolplay-be/pkg/storage"

	"github.com/google/uuid"
)

type IDocumentService interface {
	Upload(ctx context.Context, userId uuid.UUID, req *dto.UploadDocumentRequest, filename, mimeType string, data []byte) (*dto.UploadDocumentResponse, error)
	Show(ctx context.Context, userId, id uuid.UUID) (*dto.ShowDocumentResponse, error)
	ScanStatus(ctx context.Context, userId, id uuid.UUID) (*dto.ScanStatusResponse, error)
	Pack(ctx context.Context, userId, id uuid.UUID) (*dto.PackResponse, error)
}

type documentService struct {
	uowFactory     unitofwork.RepositoryFactory
	store          storage.Store
	dispatcher     IStageDispatcher
	eventPublisher IEventPublisher
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	store storage.Store,
	dispatcher IStageDispatcher,
	eventPublisher IEventPublisher,
) IDocumentService {
	return &documentService{
		uowFactory:     uowFactory,
		store:          store,
		dispatcher:     dispatcher,
		eventPublisher: eventPublisher,
	}
}

func (s *documentService) Upload(ctx context.Context, userId uuid.UUID, req *dto.UploadDocumentRequest, filename, mimeType string, data []byte) (*dto.UploadDocumentResponse, error) {
	docId := uuid.New()
	storagePath := fmt.Sprintf("%s/%s", docId, filename)

	if err := s.store.Write(ctx, storage.DiskUploads, storagePath, data); err != nil {
		return nil, err
	}

	doc := entity.Document{
		Id:               docId,
		ChildId:          req.ChildId,
		UserId:           userId,
		StoragePath:      storagePath,
		MimeType:         mimeType,
		OriginalFilename: filename,
		Subject:          req.Subject,
		Grade:            req.Grade,
		ScanStatus:       constant.ScanStatusProcessing,
		ValidationStatus: constant.ValidationStatusPending,
		Status:           constant.DocumentStatusQueued,
		CreatedAt:        time.Now(),
	}
	pipeline.Transition(&doc, constant.StageQuickScanQueued, 10, constant.DocumentStatusQueued)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.DocumentRepository().Create(ctx, &doc); err != nil {
		return nil, err
	}

	if err := s.dispatcher.DispatchQuickScan(ctx, doc.Id); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: constant.EventDocumentUploaded,
			Data: map[string]interface{}{
				"document_id": doc.Id.String(),
				"child_id":    doc.ChildId.String(),
				"filename":    doc.OriginalFilename,
			},
			OccurredAt: time.Now(),
		}
		_ = s.eventPublisher.Publish(ctx, evt) // Notification delivery is best effort
	}

	return &dto.UploadDocumentResponse{
		Id:            doc.Id,
		Status:        doc.Status,
		PipelineStage: doc.PipelineStage,
		ProgressHint:  doc.ProgressHint,
	}, nil
}

func (s *documentService) Show(ctx context.Context, userId, id uuid.UUID) (*dto.ShowDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id}, specification.OwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}

	return &dto.ShowDocumentResponse{
		Id:               doc.Id,
		ChildId:          doc.ChildId,
		OriginalFilename: doc.OriginalFilename,
		MimeType:         doc.MimeType,
		Subject:          doc.Subject,
		Grade:            doc.Grade,
		Status:           doc.Status,
		ErrorMessage:     doc.ErrorMessage,
		PipelineStage:    doc.PipelineStage,
		ProgressHint:     doc.ProgressHint,
		StageStartedAt:   doc.StageStartedAt,
		StageCompletedAt: doc.StageCompletedAt,
		StageHistory:     doc.StageHistory,
		StageTimings:     doc.StageTimings,
		ProcessedAt:      doc.ProcessedAt,
		CreatedAt:        doc.CreatedAt,
		UpdatedAt:        doc.UpdatedAt,
	}, nil
}

func (s *documentService) ScanStatus(ctx context.Context, userId, id uuid.UUID) (*dto.ScanStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id}, specification.OwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}

	return &dto.ScanStatusResponse{
		Id:                     doc.Id,
		ScanStatus:             doc.ScanStatus,
		ScanTopicSuggestion:    doc.ScanTopicSuggestion,
		ScanLanguageSuggestion: doc.ScanLanguageSuggestion,
		ScanConfidence:         doc.ScanConfidence,
		ScanAlternatives:       doc.ScanAlternatives,
		ScanModel:              doc.ScanModel,
		ScanCompletedAt:        doc.ScanCompletedAt,
		ValidationStatus:       doc.ValidationStatus,
		ValidatedTopic:         doc.ValidatedTopic,
		ValidatedLanguage:      doc.ValidatedLanguage,
		ValidatedAt:            doc.ValidatedAt,
	}, nil
}

func (s *documentService) Pack(ctx context.Context, userId, id uuid.UUID) (*dto.PackResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id}, specification.OwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}

	pack, err := uow.LearningPackRepository().FindOne(ctx, specification.ByDocumentID{DocumentID: doc.Id})
	if err != nil {
		return nil, err
	}
	if pack == nil {
		return nil, ErrPackNotReady
	}

	games, err := uow.GameRepository().FindAll(ctx, specification.ByPackID{PackID: pack.Id})
	if err != nil {
		return nil, err
	}

	// Present games in the fixed generation order regardless of row order.
	byType := make(map[string]*entity.Game, len(games))
	for _, g := range games {
		byType[g.Type] = g
	}
	gameDtos := make([]dto.GameResponse, 0, len(games))
	for _, t := range constant.GameTypes {
		g, ok := byType[t]
		if !ok {
			continue
		}
		gameDtos = append(gameDtos, dto.GameResponse{
			Id:      g.Id,
			Type:    g.Type,
			Status:  g.Status,
			Payload: g.Payload,
		})
	}

	return &dto.PackResponse{
		Id:         pack.Id,
		DocumentId: pack.DocumentId,
		Subject:    pack.Subject,
		Topic:      pack.Topic,
		Grade:      pack.Grade,
		Language:   pack.Language,
		Tags:       pack.Tags,
		Content:    pack.Content,
		Games:      gameDtos,
		CreatedAt:  pack.CreatedAt,
	}, nil
}
