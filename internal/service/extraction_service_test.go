package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-schoolplay-be/internal/constant"
	"ai-schoolplay-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func confirmedDoc(mimeType, filename string) *entity.Document {
	now := time.Now()
	return &entity.Document{
		Id:                uuid.New(),
		ChildId:           uuid.New(),
		UserId:            uuid.New(),
		StoragePath:       "doc/" + filename,
		MimeType:          mimeType,
		OriginalFilename:  filename,
		PipelineStage:     constant.StageQueued,
		ProgressHint:      35,
		ScanStatus:        constant.ScanStatusReady,
		ValidationStatus:  constant.ValidationStatusConfirmed,
		ValidatedTopic:    "Fractions",
		ValidatedLanguage: "en",
		ValidatedAt:       &now,
		Status:            constant.DocumentStatusQueued,
		CreatedAt:         now,
	}
}

func TestTextExtractionStoresTextAndAdvances(t *testing.T) {
	factory := newFakeFactory()
	doc := confirmedDoc("application/pdf", "worksheet.pdf")
	factory.store.documents[doc.Id] = doc

	extractor := &fakeTextExtractor{text: "Add the fractions: 1/4 + 2/4 = ?"}
	dispatcher := &fakeDispatcher{}
	svc := NewExtractionService(factory, extractor, dispatcher)

	err := svc.HandleTextExtraction(context.Background(), doc.Id)
	assert.NoError(t, err)

	saved := factory.store.documents[doc.Id]
	assert.Equal(t, "Add the fractions: 1/4 + 2/4 = ?", saved.ExtractedText)
	assert.Equal(t, constant.DocumentStatusProcessed, saved.Status)
	assert.NotNil(t, saved.ProcessedAt)
	assert.Len(t, dispatcher.callsFor("concept_extraction"), 1)
}

func TestImageDocumentSkipsTextExtraction(t *testing.T) {
	factory := newFakeFactory()
	doc := confirmedDoc("image/jpeg", "worksheet.jpg")
	factory.store.documents[doc.Id] = doc

	extractor := &fakeTextExtractor{text: "must not be called"}
	dispatcher := &fakeDispatcher{}
	svc := NewExtractionService(factory, extractor, dispatcher)

	err := svc.HandleTextExtraction(context.Background(), doc.Id)
	assert.NoError(t, err)

	saved := factory.store.documents[doc.Id]
	assert.Empty(t, saved.ExtractedText)
	assert.Equal(t, constant.DocumentStatusProcessed, saved.Status)
	assert.NotNil(t, saved.ProcessedAt)

	assert.Zero(t, extractor.calls)
	assert.Len(t, dispatcher.callsFor("concept_extraction"), 1)
}

func TestTextExtractionFailureMarksDocumentFailed(t *testing.T) {
	factory := newFakeFactory()
	doc := confirmedDoc("application/pdf", "worksheet.pdf")
	factory.store.documents[doc.Id] = doc

	extractor := &fakeTextExtractor{err: errors.New("unreadable file")}
	dispatcher := &fakeDispatcher{}
	svc := NewExtractionService(factory, extractor, dispatcher)

	err := svc.HandleTextExtraction(context.Background(), doc.Id)
	assert.Error(t, err)

	saved := factory.store.documents[doc.Id]
	assert.Equal(t, constant.DocumentStatusFailed, saved.Status)
	assert.Equal(t, "unreadable file", saved.ErrorMessage)
	assert.Empty(t, dispatcher.calls)
}

func TestTextExtractionUnknownDocumentIsSilent(t *testing.T) {
	svc := NewExtractionService(newFakeFactory(), &fakeTextExtractor{}, &fakeDispatcher{})
	assert.NoError(t, svc.HandleTextExtraction(context.Background(), uuid.New()))
}
