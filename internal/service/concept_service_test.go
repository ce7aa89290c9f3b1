package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-schoolplay-be/internal/constant"
	"ai-schoolplay-be/internal/entity"
	"ai-schoolplay-be/pkg/content"

	"github.com/stretchr/testify/assert"
)

func processedDoc(text string) *entity.Document {
	doc := confirmedDoc("application/pdf", "worksheet.pdf")
	now := time.Now()
	doc.ExtractedText = text
	doc.Status = constant.DocumentStatusProcessed
	doc.ProcessedAt = &now
	return doc
}

func TestConceptExtractionUpsertsAndAdvances(t *testing.T) {
	factory := newFakeFactory()
	doc := processedDoc("Adding fractions with the same denominator.")
	factory.store.documents[doc.Id] = doc

	extractor := &fakeConceptExtractor{concepts: []content.ExtractedConcept{
		{Key: "fractions.addition", Label: "Adding fractions", Difficulty: 0.4},
		{Key: "fractions.denominator", Label: "Denominators", Difficulty: 0.3},
	}}
	dispatcher := &fakeDispatcher{}
	svc := NewConceptService(factory, extractor, dispatcher, &fakeNotifier{})

	err := svc.HandleConceptExtraction(context.Background(), doc.Id)
	assert.NoError(t, err)

	assert.Len(t, factory.store.concepts, 2)
	saved := factory.store.documents[doc.Id]
	assert.Equal(t, constant.StageLearningPackQueued, saved.PipelineStage)
	assert.Equal(t, 60, saved.ProgressHint)
	assert.Len(t, dispatcher.callsFor("pack_generation"), 1)
}

func TestConceptRedeliveryUpdatesInPlace(t *testing.T) {
	factory := newFakeFactory()
	doc := processedDoc("Adding fractions with the same denominator.")
	factory.store.documents[doc.Id] = doc

	extractor := &fakeConceptExtractor{concepts: []content.ExtractedConcept{
		{Key: "fractions.addition", Label: "Adding fractions", Difficulty: 0.4},
	}}
	svc := NewConceptService(factory, extractor, &fakeDispatcher{}, nil)

	assert.NoError(t, svc.HandleConceptExtraction(context.Background(), doc.Id))

	// Second delivery with a refined label: same row, no duplicate.
	extractor.concepts[0].Label = "Adding like fractions"
	extractor.concepts[0].Difficulty = 0.5
	assert.NoError(t, svc.HandleConceptExtraction(context.Background(), doc.Id))

	assert.Len(t, factory.store.concepts, 1)
	for _, c := range factory.store.concepts {
		assert.Equal(t, "Adding like fractions", c.Label)
		assert.Equal(t, 0.5, c.Difficulty)
	}
}

func TestConceptExtractionSkipsImageOnlyText(t *testing.T) {
	factory := newFakeFactory()
	doc := confirmedDoc("image/png", "worksheet.png")
	doc.Status = constant.DocumentStatusProcessed
	factory.store.documents[doc.Id] = doc

	// Image document with no text: stage advances without calling the
	// extractor, the image rides along into pack generation.
	extractor := &fakeConceptExtractor{err: errors.New("must not be called")}
	dispatcher := &fakeDispatcher{}
	svc := NewConceptService(factory, extractor, dispatcher, nil)

	err := svc.HandleConceptExtraction(context.Background(), doc.Id)
	assert.NoError(t, err)
	assert.Empty(t, factory.store.concepts)
	assert.Equal(t, constant.StageLearningPackQueued, factory.store.documents[doc.Id].PipelineStage)
	assert.Len(t, dispatcher.callsFor("pack_generation"), 1)
}

func TestConceptExtractionNoContentIsSilent(t *testing.T) {
	factory := newFakeFactory()
	doc := confirmedDoc("application/pdf", "worksheet.pdf")
	factory.store.documents[doc.Id] = doc
	before := *doc

	dispatcher := &fakeDispatcher{}
	svc := NewConceptService(factory, &fakeConceptExtractor{}, dispatcher, nil)

	err := svc.HandleConceptExtraction(context.Background(), doc.Id)
	assert.NoError(t, err)
	assert.Equal(t, before.PipelineStage, factory.store.documents[doc.Id].PipelineStage)
	assert.Empty(t, dispatcher.calls)
}

func TestConceptExtractionFailure(t *testing.T) {
	factory := newFakeFactory()
	doc := processedDoc("some text")
	factory.store.documents[doc.Id] = doc

	extractor := &fakeConceptExtractor{err: errors.New("model timeout")}
	dispatcher := &fakeDispatcher{}
	svc := NewConceptService(factory, extractor, dispatcher, nil)

	err := svc.HandleConceptExtraction(context.Background(), doc.Id)
	assert.Error(t, err)

	saved := factory.store.documents[doc.Id]
	assert.Equal(t, constant.DocumentStatusFailed, saved.Status)
	assert.Equal(t, constant.StageConceptFailed, saved.PipelineStage)
	assert.Equal(t, "model timeout", saved.ErrorMessage)
	assert.Empty(t, dispatcher.calls)
}
