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

func gameReadyFixture() (*fakeFactory, *entity.Document, *entity.LearningPack) {
	factory := newFakeFactory()
	doc := processedDoc("Adding fractions with the same denominator.")
	doc.PipelineStage = constant.StageGameGenQueued
	doc.ProgressHint = 80
	factory.store.documents[doc.Id] = doc

	pack := &entity.LearningPack{
		Id:         uuid.New(),
		DocumentId: doc.Id,
		ChildId:    doc.ChildId,
		Topic:      "Fractions",
		Language:   "en",
		Content:    validPackContent(),
		CreatedAt:  time.Now(),
	}
	factory.store.packs[pack.Id] = pack
	return factory, doc, pack
}

func TestGameGenerationProducesTheFullSet(t *testing.T) {
	factory, doc, pack := gameReadyFixture()

	generator := &fakeGenerator{games: validGamePayloads()}
	publisher := &fakeEventPublisher{}
	svc := NewGameService(factory, generator, newTestValidator(), &fakeNotifier{}, publisher)

	err := svc.HandleGameGeneration(context.Background(), pack.Id, doc.Id)
	assert.NoError(t, err)

	assert.Len(t, factory.store.games, len(constant.GameTypes))
	seen := map[string]bool{}
	for _, g := range factory.store.games {
		assert.Equal(t, pack.Id, g.PackId)
		assert.Equal(t, constant.GameStatusReady, g.Status)
		assert.NotEmpty(t, g.Payload)
		seen[g.Type] = true
	}
	for _, gameType := range constant.GameTypes {
		assert.True(t, seen[gameType], "missing game type %s", gameType)
	}

	saved := factory.store.documents[doc.Id]
	assert.Equal(t, constant.DocumentStatusProcessed, saved.Status)
	assert.Equal(t, constant.StageReady, saved.PipelineStage)
	assert.Equal(t, 100, saved.ProgressHint)

	assert.Len(t, publisher.events, 1)
	assert.Equal(t, constant.EventDocumentReady, publisher.events[0].EventType())
}

func TestGameGenerationFailsFastMidSequence(t *testing.T) {
	factory, doc, pack := gameReadyFixture()

	// Third type in the fixed order errors; the two before it stay.
	generator := &fakeGenerator{
		games:    validGamePayloads(),
		failType: constant.GameTypes[2],
		gameErr:  errors.New("model timeout"),
	}
	publisher := &fakeEventPublisher{}
	svc := NewGameService(factory, generator, newTestValidator(), nil, publisher)

	err := svc.HandleGameGeneration(context.Background(), pack.Id, doc.Id)
	assert.Error(t, err)

	assert.Len(t, factory.store.games, 2)
	for _, g := range factory.store.games {
		assert.Contains(t, constant.GameTypes[:2], g.Type)
	}

	saved := factory.store.documents[doc.Id]
	assert.Equal(t, constant.DocumentStatusFailed, saved.Status)
	assert.Equal(t, constant.StageFailed, saved.PipelineStage)
	assert.Equal(t, "model timeout", saved.ErrorMessage)

	assert.Len(t, publisher.events, 1)
	assert.Equal(t, constant.EventDocumentFailed, publisher.events[0].EventType())
}

func TestGameGenerationRejectsMalformedPayload(t *testing.T) {
	factory, doc, pack := gameReadyFixture()

	payloads := validGamePayloads()
	payloads[constant.GameTypeQuiz] = map[string]interface{}{
		"questions": []interface{}{
			// Only one option, schema demands at least two.
			map[string]interface{}{"question": "?", "options": []interface{}{"a"}, "answer_index": 0},
		},
	}
	generator := &fakeGenerator{games: payloads}
	svc := NewGameService(factory, generator, newTestValidator(), nil, nil)

	err := svc.HandleGameGeneration(context.Background(), pack.Id, doc.Id)
	assert.Error(t, err)
	assert.Equal(t, constant.StageFailed, factory.store.documents[doc.Id].PipelineStage)
}

func TestGameGenerationMissingPackIsSilent(t *testing.T) {
	factory, doc, _ := gameReadyFixture()
	factory.store.packs = map[uuid.UUID]*entity.LearningPack{}

	svc := NewGameService(factory, &fakeGenerator{}, newTestValidator(), nil, nil)
	assert.NoError(t, svc.HandleGameGeneration(context.Background(), uuid.New(), doc.Id))
	assert.Empty(t, factory.store.games)
}
