package service

import (
	"context"
	"testing"
	"time"

	"ai-schoolplay-be/internal/config"
	"ai-schoolplay-be/internal/constant"
	"ai-schoolplay-be/internal/dto"
	"ai-schoolplay-be/internal/entity"
	"ai-schoolplay-be/pkg/redislock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func awaitingValidationDoc(userId uuid.UUID) *entity.Document {
	return &entity.Document{
		Id:                     uuid.New(),
		ChildId:                uuid.New(),
		UserId:                 userId,
		StoragePath:            "doc/worksheet.pdf",
		MimeType:               "application/pdf",
		OriginalFilename:       "worksheet.pdf",
		PipelineStage:          constant.StageAwaitingValidation,
		ProgressHint:           30,
		ScanStatus:             constant.ScanStatusReady,
		ScanTopicSuggestion:    "Fractions",
		ScanLanguageSuggestion: "en",
		ScanConfidence:         0.91,
		ValidationStatus:       constant.ValidationStatusPending,
		Status:                 constant.DocumentStatusQueued,
		CreatedAt:              time.Now(),
	}
}

func lockCfg() config.LockConfig {
	return config.LockConfig{TTL: time.Second, Wait: 100 * time.Millisecond}
}

func TestConfirmMovesDocumentIntoTheHeavyPipeline(t *testing.T) {
	userId := uuid.New()
	factory := newFakeFactory()
	doc := awaitingValidationDoc(userId)
	factory.store.documents[doc.Id] = doc

	dispatcher := &fakeDispatcher{}
	svc := NewValidationService(factory, passLocker{}, dispatcher, lockCfg())

	res, err := svc.Confirm(context.Background(), userId, &dto.ConfirmScanRequest{
		Id:       doc.Id,
		Topic:    "Adding fractions",
		Language: "en",
	})

	assert.NoError(t, err)
	assert.False(t, res.AlreadyApplied)
	assert.Equal(t, constant.ValidationStatusConfirmed, res.ValidationStatus)
	assert.Equal(t, constant.StageQueued, res.PipelineStage)

	saved := factory.store.documents[doc.Id]
	assert.Equal(t, "Adding fractions", saved.ValidatedTopic)
	assert.Equal(t, "en", saved.ValidatedLanguage)
	assert.NotNil(t, saved.ValidatedAt)
	assert.Equal(t, constant.ScanStatusReady, saved.ScanStatus)
	assert.Equal(t, 35, saved.ProgressHint)
	// Confirm only re-stages; the coarse status is untouched.
	assert.Equal(t, constant.DocumentStatusQueued, saved.Status)

	assert.Len(t, dispatcher.callsFor("text_extraction"), 1)
}

func TestConfirmReplayDoesNotDispatchASecondExtraction(t *testing.T) {
	userId := uuid.New()
	factory := newFakeFactory()
	doc := awaitingValidationDoc(userId)
	factory.store.documents[doc.Id] = doc

	dispatcher := &fakeDispatcher{}
	svc := NewValidationService(factory, passLocker{}, dispatcher, lockCfg())

	req := &dto.ConfirmScanRequest{Id: doc.Id, Topic: "Fractions", Language: "en"}

	first, err := svc.Confirm(context.Background(), userId, req)
	assert.NoError(t, err)
	assert.False(t, first.AlreadyApplied)

	// Replay with a different topic: the stored validation must not move.
	second, err := svc.Confirm(context.Background(), userId, &dto.ConfirmScanRequest{
		Id:       doc.Id,
		Topic:    "Something else",
		Language: "fr",
	})
	assert.NoError(t, err)
	assert.True(t, second.AlreadyApplied)

	saved := factory.store.documents[doc.Id]
	assert.Equal(t, "Fractions", saved.ValidatedTopic)
	assert.Equal(t, "en", saved.ValidatedLanguage)
	assert.Len(t, dispatcher.callsFor("text_extraction"), 1)
}

func TestConfirmUnknownDocument(t *testing.T) {
	svc := NewValidationService(newFakeFactory(), passLocker{}, &fakeDispatcher{}, lockCfg())

	_, err := svc.Confirm(context.Background(), uuid.New(), &dto.ConfirmScanRequest{
		Id:       uuid.New(),
		Topic:    "Fractions",
		Language: "en",
	})
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestConfirmSurfacesLockTimeout(t *testing.T) {
	userId := uuid.New()
	factory := newFakeFactory()
	doc := awaitingValidationDoc(userId)
	factory.store.documents[doc.Id] = doc

	dispatcher := &fakeDispatcher{}
	svc := NewValidationService(factory, failLocker{}, dispatcher, lockCfg())

	_, err := svc.Confirm(context.Background(), userId, &dto.ConfirmScanRequest{
		Id:       doc.Id,
		Topic:    "Fractions",
		Language: "en",
	})
	assert.ErrorIs(t, err, redislock.ErrLockTimeout)
	assert.Empty(t, dispatcher.calls)
	assert.Equal(t, constant.ValidationStatusPending, factory.store.documents[doc.Id].ValidationStatus)
}

func TestRescanResetsScanStateAndRequeues(t *testing.T) {
	userId := uuid.New()
	factory := newFakeFactory()
	doc := awaitingValidationDoc(userId)
	now := time.Now()
	doc.ScanCompletedAt = &now
	doc.ScanModel = "llava"
	doc.ScanAlternatives = []entity.ScanAlternative{{Topic: "Decimals", Language: "en", Confidence: 0.2}}
	factory.store.documents[doc.Id] = doc

	dispatcher := &fakeDispatcher{}
	svc := NewValidationService(factory, passLocker{}, dispatcher, lockCfg())

	res, err := svc.Rescan(context.Background(), userId, doc.Id)
	assert.NoError(t, err)
	assert.Equal(t, constant.ScanStatusNone, res.ScanStatus)
	assert.Equal(t, constant.StageQuickScanQueued, res.PipelineStage)

	saved := factory.store.documents[doc.Id]
	assert.Empty(t, saved.ScanTopicSuggestion)
	assert.Empty(t, saved.ScanLanguageSuggestion)
	assert.Zero(t, saved.ScanConfidence)
	assert.Nil(t, saved.ScanAlternatives)
	assert.Empty(t, saved.ScanModel)
	assert.Nil(t, saved.ScanCompletedAt)
	assert.Equal(t, constant.ValidationStatusPending, saved.ValidationStatus)
	assert.Equal(t, constant.DocumentStatusQueued, saved.Status)

	assert.Len(t, dispatcher.callsFor("quick_scan"), 1)
}

func TestRescanAllowedAfterFailedScan(t *testing.T) {
	userId := uuid.New()
	factory := newFakeFactory()
	doc := awaitingValidationDoc(userId)
	doc.PipelineStage = constant.StageQuickScanFailed
	doc.ScanStatus = constant.ScanStatusFailed
	doc.Status = constant.DocumentStatusFailed
	doc.ErrorMessage = "classifier: connection refused"
	factory.store.documents[doc.Id] = doc

	dispatcher := &fakeDispatcher{}
	svc := NewValidationService(factory, passLocker{}, dispatcher, lockCfg())

	_, err := svc.Rescan(context.Background(), userId, doc.Id)
	assert.NoError(t, err)

	saved := factory.store.documents[doc.Id]
	assert.Empty(t, saved.ErrorMessage)
	assert.Equal(t, constant.DocumentStatusQueued, saved.Status)
	assert.Len(t, dispatcher.callsFor("quick_scan"), 1)
}

func TestRescanRejectedMidPipelineWithoutMutation(t *testing.T) {
	userId := uuid.New()
	factory := newFakeFactory()

	tests := []struct {
		name  string
		setup func(doc *entity.Document)
	}{
		{
			name: "confirmed document",
			setup: func(doc *entity.Document) {
				doc.ValidationStatus = constant.ValidationStatusConfirmed
				doc.PipelineStage = constant.StageQueued
			},
		},
		{
			name: "concept extraction in flight",
			setup: func(doc *entity.Document) {
				doc.ValidationStatus = constant.ValidationStatusConfirmed
				doc.PipelineStage = constant.StageConceptExtraction
			},
		},
		{
			name: "scan still running",
			setup: func(doc *entity.Document) {
				doc.PipelineStage = constant.StageQuickScanProcessing
				doc.ScanStatus = constant.ScanStatusProcessing
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := awaitingValidationDoc(userId)
			tt.setup(doc)
			factory.store.documents[doc.Id] = doc
			before := *doc

			dispatcher := &fakeDispatcher{}
			svc := NewValidationService(factory, passLocker{}, dispatcher, lockCfg())

			_, err := svc.Rescan(context.Background(), userId, doc.Id)
			assert.ErrorIs(t, err, ErrRescanNotAllowed)
			assert.Empty(t, dispatcher.calls)

			saved := factory.store.documents[doc.Id]
			assert.Equal(t, before.ScanStatus, saved.ScanStatus)
			assert.Equal(t, before.PipelineStage, saved.PipelineStage)
			assert.Equal(t, before.ValidationStatus, saved.ValidationStatus)
		})
	}
}

func TestRescanOtherUsersDocumentIsNotFound(t *testing.T) {
	factory := newFakeFactory()
	doc := awaitingValidationDoc(uuid.New())
	factory.store.documents[doc.Id] = doc

	svc := NewValidationService(factory, passLocker{}, &fakeDispatcher{}, lockCfg())

	_, err := svc.Rescan(context.Background(), uuid.New(), doc.Id)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}
