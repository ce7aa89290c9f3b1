package mapper

import (
	"time"

	"ai-schoolplay-be/internal/entity"
	"ai-schoolplay-be/internal/model"
)

type ConceptMapper struct{}

func NewConceptMapper() *ConceptMapper {
	return &ConceptMapper{}
}

func (m *ConceptMapper) ToEntity(c *model.Concept) *entity.Concept {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Concept{
		Id:         c.Id,
		ChildId:    c.ChildId,
		DocumentId: c.DocumentId,
		ConceptKey: c.ConceptKey,
		Label:      c.Label,
		Difficulty: c.Difficulty,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *ConceptMapper) ToModel(c *entity.Concept) *model.Concept {
	if c == nil {
		return nil
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.Concept{
		Id:         c.Id,
		ChildId:    c.ChildId,
		DocumentId: c.DocumentId,
		ConceptKey: c.ConceptKey,
		Label:      c.Label,
		Difficulty: c.Difficulty,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *ConceptMapper) ToEntities(models []*model.Concept) []*entity.Concept {
	entities := make([]*entity.Concept, 0, len(models))
	for _, c := range models {
		entities = append(entities, m.ToEntity(c))
	}
	return entities
}
