package service

import (
	"context"
	"fmt"
	"time"

	"ai-schoolplay-be/internal/config"
	"ai-schoolplay-be/internal/constant"
	"ai-schoolplay-be/internal/dto"
	"ai-schoolplay-be/internal/repository/specification"
	"ai-schoolplay-be/internal/repository/unitofwork"
	"ai-schoolplay-be/pkg/pipeline"

	"github.com/google/uuid"
)

// IValidationService is the human-in-the-loop gate between quick scan and the
// heavy pipeline. Confirm and Rescan are the only two operations where
// concurrent human requests can race each other, so both run under a
// per-document lock with a bounded wait.
type IValidationService interface {
	Confirm(ctx context.Context, userId uuid.UUID, req *dto.ConfirmScanRequest) (*dto.ConfirmScanResponse, error)
	Rescan(ctx context.Context, userId, id uuid.UUID) (*dto.RescanResponse, error)
}

type validationService struct {
	uowFactory unitofwork.RepositoryFactory
	locker     DocumentLocker
	dispatcher IStageDispatcher
	lockCfg    config.LockConfig
}

func NewValidationService(
	uowFactory unitofwork.RepositoryFactory,
	locker DocumentLocker,
	dispatcher IStageDispatcher,
	lockCfg config.LockConfig,
) IValidationService {
	return &validationService{
		uowFactory: uowFactory,
		locker:     locker,
		dispatcher: dispatcher,
		lockCfg:    lockCfg,
	}
}

func lockKey(id uuid.UUID) string {
	return fmt.Sprintf("document_validation:%s", id)
}

func (s *validationService) Confirm(ctx context.Context, userId uuid.UUID, req *dto.ConfirmScanRequest) (*dto.ConfirmScanResponse, error) {
	var res *dto.ConfirmScanResponse

	err := s.locker.WithLock(ctx, lockKey(req.Id), s.lockCfg.TTL, s.lockCfg.Wait, func() error {
		uow := s.uowFactory.NewUnitOfWork(ctx)

		doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: req.Id}, specification.OwnedBy{UserID: userId})
		if err != nil {
			return err
		}
		if doc == nil {
			return ErrDocumentNotFound
		}

		// Confirmed is terminal: replay returns the document unchanged and
		// must not dispatch a second extraction task.
		if doc.ValidationStatus == constant.ValidationStatusConfirmed {
			res = &dto.ConfirmScanResponse{
				Id:               doc.Id,
				ValidationStatus: doc.ValidationStatus,
				PipelineStage:    doc.PipelineStage,
				AlreadyApplied:   true,
			}
			return nil
		}

		now := time.Now()
		doc.ValidatedTopic = req.Topic
		doc.ValidatedLanguage = req.Language
		doc.ValidatedAt = &now
		doc.ValidationStatus = constant.ValidationStatusConfirmed
		doc.ScanStatus = constant.ScanStatusReady
		pipeline.Transition(doc, constant.StageQueued, 35, "")

		if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
			return err
		}

		if err := s.dispatcher.DispatchTextExtraction(ctx, doc.Id); err != nil {
			return err
		}

		res = &dto.ConfirmScanResponse{
			Id:               doc.Id,
			ValidationStatus: doc.ValidationStatus,
			PipelineStage:    doc.PipelineStage,
			AlreadyApplied:   false,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *validationService) Rescan(ctx context.Context, userId, id uuid.UUID) (*dto.RescanResponse, error) {
	var res *dto.RescanResponse

	err := s.locker.WithLock(ctx, lockKey(id), s.lockCfg.TTL, s.lockCfg.Wait, func() error {
		uow := s.uowFactory.NewUnitOfWork(ctx)

		doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id}, specification.OwnedBy{UserID: userId})
		if err != nil {
			return err
		}
		if doc == nil {
			return ErrDocumentNotFound
		}

		if !pipeline.CanRescan(doc) {
			return ErrRescanNotAllowed
		}

		doc.ScanStatus = constant.ScanStatusNone
		doc.ScanTopicSuggestion = ""
		doc.ScanLanguageSuggestion = ""
		doc.ScanConfidence = 0
		doc.ScanAlternatives = nil
		doc.ScanModel = ""
		doc.ScanCompletedAt = nil
		doc.ValidationStatus = constant.ValidationStatusPending
		doc.ErrorMessage = ""
		pipeline.Transition(doc, constant.StageQuickScanQueued, 10, constant.DocumentStatusQueued)

		if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
			return err
		}

		if err := s.dispatcher.DispatchQuickScan(ctx, doc.Id); err != nil {
			return err
		}

		res = &dto.RescanResponse{
			Id:            doc.Id,
			ScanStatus:    doc.ScanStatus,
			PipelineStage: doc.PipelineStage,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
