package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ai-schoolplay-be/internal/dto"
	"ai-schoolplay-be/internal/entity"
	"ai-schoolplay-be/internal/repository/contract"
	"ai-schoolplay-be/internal/repository/specification"
	"ai-schoolplay-be/internal/repository/unitofwork"
	"ai-schoolplay-be/pkg/content"
	"ai-schoolplay-be/pkg/events"
	"ai-schoolplay-be/pkg/redislock"
	"ai-schoolplay-be/pkg/schema"

	"github.com/google/uuid"
)

// In-memory unit of work backed by maps, shared across all UoW instances the
// factory hands out. Specifications are interpreted by type switch; only the
// ones the services actually use are supported.

type fakeStore struct {
	mu        sync.Mutex
	documents map[uuid.UUID]*entity.Document
	concepts  map[string]*entity.Concept // child|doc|key
	packs     map[uuid.UUID]*entity.LearningPack
	games     map[uuid.UUID]*entity.Game
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		documents: make(map[uuid.UUID]*entity.Document),
		concepts:  make(map[string]*entity.Concept),
		packs:     make(map[uuid.UUID]*entity.LearningPack),
		games:     make(map[uuid.UUID]*entity.Game),
	}
}

type fakeFactory struct {
	store *fakeStore
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{store: newFakeStore()}
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: f.store}
}

type fakeUow struct {
	store *fakeStore
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) DocumentRepository() contract.DocumentRepository {
	return &fakeDocumentRepo{store: u.store}
}

func (u *fakeUow) ConceptRepository() contract.ConceptRepository {
	return &fakeConceptRepo{store: u.store}
}

func (u *fakeUow) LearningPackRepository() contract.LearningPackRepository {
	return &fakePackRepo{store: u.store}
}

func (u *fakeUow) GameRepository() contract.GameRepository {
	return &fakeGameRepo{store: u.store}
}

func specFilter(specs []specification.Specification) (id *uuid.UUID, userId, childId, documentId, packId *uuid.UUID) {
	for _, s := range specs {
		switch v := s.(type) {
		case specification.ByID:
			vv := v.ID
			id = &vv
		case specification.OwnedBy:
			vv := v.UserID
			userId = &vv
		case specification.ByChildID:
			vv := v.ChildID
			childId = &vv
		case specification.ByDocumentID:
			vv := v.DocumentID
			documentId = &vv
		case specification.ByPackID:
			vv := v.PackID
			packId = &vv
		}
	}
	return
}

type fakeDocumentRepo struct {
	store *fakeStore
}

func (r *fakeDocumentRepo) Create(ctx context.Context, doc *entity.Document) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *doc
	r.store.documents[doc.Id] = &copied
	return nil
}

func (r *fakeDocumentRepo) Update(ctx context.Context, doc *entity.Document) error {
	return r.Create(ctx, doc)
}

func (r *fakeDocumentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	id, userId, _, _, _ := specFilter(specs)
	for _, d := range r.store.documents {
		if id != nil && d.Id != *id {
			continue
		}
		if userId != nil && d.UserId != *userId {
			continue
		}
		copied := *d
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeDocumentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	d, err := r.FindOne(ctx, specs...)
	if err != nil || d == nil {
		return nil, err
	}
	return []*entity.Document{d}, nil
}

func (r *fakeDocumentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

type fakeConceptRepo struct {
	store *fakeStore
}

func conceptKey(c *entity.Concept) string {
	return fmt.Sprintf("%s|%s|%s", c.ChildId, c.DocumentId, c.ConceptKey)
}

func (r *fakeConceptRepo) Upsert(ctx context.Context, c *entity.Concept) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	key := conceptKey(c)
	if existing, ok := r.store.concepts[key]; ok {
		existing.Label = c.Label
		existing.Difficulty = c.Difficulty
		now := time.Now()
		existing.UpdatedAt = &now
		return nil
	}
	copied := *c
	r.store.concepts[key] = &copied
	return nil
}

func (r *fakeConceptRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Concept, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *fakeConceptRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Concept, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	_, _, childId, documentId, _ := specFilter(specs)
	var out []*entity.Concept
	for _, c := range r.store.concepts {
		if childId != nil && c.ChildId != *childId {
			continue
		}
		if documentId != nil && c.DocumentId != *documentId {
			continue
		}
		copied := *c
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeConceptRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

type fakePackRepo struct {
	store *fakeStore
}

func (r *fakePackRepo) Create(ctx context.Context, pack *entity.LearningPack) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *pack
	r.store.packs[pack.Id] = &copied
	return nil
}

func (r *fakePackRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LearningPack, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	id, _, _, documentId, _ := specFilter(specs)
	for _, p := range r.store.packs {
		if id != nil && p.Id != *id {
			continue
		}
		if documentId != nil && p.DocumentId != *documentId {
			continue
		}
		copied := *p
		return &copied, nil
	}
	return nil, nil
}

func (r *fakePackRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LearningPack, error) {
	p, err := r.FindOne(ctx, specs...)
	if err != nil || p == nil {
		return nil, err
	}
	return []*entity.LearningPack{p}, nil
}

func (r *fakePackRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

type fakeGameRepo struct {
	store *fakeStore
}

func (r *fakeGameRepo) Create(ctx context.Context, game *entity.Game) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *game
	r.store.games[game.Id] = &copied
	return nil
}

func (r *fakeGameRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Game, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *fakeGameRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Game, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	_, _, _, _, packId := specFilter(specs)
	var out []*entity.Game
	for _, g := range r.store.games {
		if packId != nil && g.PackId != *packId {
			continue
		}
		copied := *g
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeGameRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

// Collaborator fakes.

type dispatchCall struct {
	stage      string
	documentId uuid.UUID
	packId     uuid.UUID
}

type fakeDispatcher struct {
	mu    sync.Mutex
	calls []dispatchCall
}

func (d *fakeDispatcher) record(stage string, documentId, packId uuid.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, dispatchCall{stage: stage, documentId: documentId, packId: packId})
	return nil
}

func (d *fakeDispatcher) DispatchQuickScan(ctx context.Context, documentId uuid.UUID) error {
	return d.record("quick_scan", documentId, uuid.Nil)
}

func (d *fakeDispatcher) DispatchTextExtraction(ctx context.Context, documentId uuid.UUID) error {
	return d.record("text_extraction", documentId, uuid.Nil)
}

func (d *fakeDispatcher) DispatchConceptExtraction(ctx context.Context, documentId uuid.UUID) error {
	return d.record("concept_extraction", documentId, uuid.Nil)
}

func (d *fakeDispatcher) DispatchPackGeneration(ctx context.Context, documentId uuid.UUID) error {
	return d.record("pack_generation", documentId, uuid.Nil)
}

func (d *fakeDispatcher) DispatchGameGeneration(ctx context.Context, packId, documentId uuid.UUID) error {
	return d.record("game_generation", documentId, packId)
}

func (d *fakeDispatcher) callsFor(stage string) []dispatchCall {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []dispatchCall
	for _, c := range d.calls {
		if c.stage == stage {
			out = append(out, c)
		}
	}
	return out
}

type fakeClassifier struct {
	result *content.ScanResult
	err    error
	onScan func() // runs inside Scan, simulates state moving mid-call
}

func (c *fakeClassifier) Scan(ctx context.Context, storagePath, mimeType string) (*content.ScanResult, error) {
	if c.onScan != nil {
		c.onScan()
	}
	if c.err != nil {
		return nil, c.err
	}
	return c.result, nil
}

type fakeTextExtractor struct {
	text  string
	err   error
	calls int
}

func (e *fakeTextExtractor) ExtractText(ctx context.Context, storagePath, mimeType string) (string, error) {
	e.calls++
	if e.err != nil {
		return "", e.err
	}
	return e.text, nil
}

type fakeConceptExtractor struct {
	concepts []content.ExtractedConcept
	err      error
}

func (e *fakeConceptExtractor) Extract(ctx context.Context, text string) ([]content.ExtractedConcept, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.concepts, nil
}

type fakeGenerator struct {
	pack     map[string]interface{}
	packErr  error
	games    map[string]map[string]interface{}
	gameErr  error
	failType string // game type that errors out, if set

	seenSource   content.PackSource
	seenConcepts []content.ExtractedConcept
}

func (g *fakeGenerator) GeneratePack(ctx context.Context, source content.PackSource, concepts []content.ExtractedConcept) (map[string]interface{}, error) {
	g.seenSource = source
	g.seenConcepts = concepts
	if g.packErr != nil {
		return nil, g.packErr
	}
	return g.pack, nil
}

func (g *fakeGenerator) GenerateGame(ctx context.Context, gameType string, packContent map[string]interface{}) (map[string]interface{}, error) {
	if g.failType == gameType {
		return nil, g.gameErr
	}
	if payload, ok := g.games[gameType]; ok {
		return payload, nil
	}
	return nil, fmt.Errorf("no fake payload for type %s", gameType)
}

type fakeNotifier struct {
	mu      sync.Mutex
	updates []dto.DocumentProgressUpdate
}

func (n *fakeNotifier) NotifyProgress(userId uuid.UUID, update dto.DocumentProgressUpdate) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.updates = append(n.updates, update)
}

type fakeEventPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *fakeEventPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

// failLocker simulates a contended lock whose wait budget ran out.
type failLocker struct{}

func (failLocker) WithLock(ctx context.Context, key string, ttl, wait time.Duration, fn func() error) error {
	return redislock.ErrLockTimeout
}

type passLocker struct{}

func (passLocker) WithLock(ctx context.Context, key string, ttl, wait time.Duration, fn func() error) error {
	return fn()
}

func newTestValidator() *schema.Validator {
	return schema.NewValidator()
}

// Payload builders that pass the structural schemas.

func validPackContent() map[string]interface{} {
	return map[string]interface{}{
		"title":   "Fractions",
		"summary": "Adding fractions with the same denominator.",
		"items": []interface{}{
			map[string]interface{}{
				"concept_key": "fractions.addition",
				"heading":     "Adding fractions",
				"body":        "Add the tops, keep the bottom.",
				"example":     "1/4 + 2/4 = 3/4",
			},
		},
	}
}

func validGamePayloads() map[string]map[string]interface{} {
	return map[string]map[string]interface{}{
		"flashcards": {
			"cards": []interface{}{
				map[string]interface{}{"front": "1/4 + 2/4", "back": "3/4"},
			},
		},
		"quiz": {
			"questions": []interface{}{
				map[string]interface{}{
					"question":     "1/4 + 2/4 = ?",
					"options":      []interface{}{"3/4", "2/8"},
					"answer_index": 0,
				},
			},
		},
		"matching": {
			"pairs": []interface{}{
				map[string]interface{}{"left": "1/4 + 2/4", "right": "3/4"},
				map[string]interface{}{"left": "1/2 + 1/2", "right": "1"},
			},
		},
		"true_false": {
			"statements": []interface{}{
				map[string]interface{}{"statement": "1/4 + 2/4 = 3/4", "is_true": true},
			},
		},
		"fill_blank": {
			"items": []interface{}{
				map[string]interface{}{"sentence": "1/4 + 2/4 = ___", "answer": "3/4"},
			},
		},
		"ordering": {
			"prompt": "Order the steps to add fractions",
			"steps":  []interface{}{"Check denominators", "Add numerators"},
		},
		"multiple_select": {
			"questions": []interface{}{
				map[string]interface{}{
					"question":       "Which equal 1/2?",
					"options":        []interface{}{"2/4", "3/4", "4/8"},
					"answer_indexes": []interface{}{0, 2},
				},
			},
		},
		"short_answer": {
			"items": []interface{}{
				map[string]interface{}{
					"question":         "What is 1/4 + 2/4?",
					"accepted_answers": []interface{}{"3/4"},
				},
			},
		},
	}
}

// storeStub satisfies storage.Store for upload tests.
type storeStub struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newStoreStub() *storeStub {
	return &storeStub{files: make(map[string][]byte)}
}

func (s *storeStub) Write(ctx context.Context, disk, path string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[disk+"/"+path] = data
	return nil
}

func (s *storeStub) Read(ctx context.Context, disk, path string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[disk+"/"+path]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	return data, nil
}
