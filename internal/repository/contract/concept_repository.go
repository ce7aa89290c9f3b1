package contract

import (
	"context"

	"ai-schoolplay-be/internal/entity"
	"ai-schoolplay-be/internal/repository/specification"
)

type ConceptRepository interface {
	// Upsert inserts the concept or, when (child_id, document_id, concept_key)
	// already exists, updates label and difficulty in place.
	Upsert(ctx context.Context, concept *entity.Concept) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Concept, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Concept, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
