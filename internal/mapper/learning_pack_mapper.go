package mapper

import (
	"encoding/json"

	"ai-schoolplay-be/internal/entity"
	"ai-schoolplay-be/internal/model"

	"gorm.io/datatypes"
)

type LearningPackMapper struct{}

func NewLearningPackMapper() *LearningPackMapper {
	return &LearningPackMapper{}
}

func (m *LearningPackMapper) ToEntity(p *model.LearningPack) *entity.LearningPack {
	if p == nil {
		return nil
	}

	var tags []string
	if len(p.Tags) > 0 {
		_ = json.Unmarshal(p.Tags, &tags)
	}

	var content map[string]interface{}
	if len(p.Content) > 0 {
		_ = json.Unmarshal(p.Content, &content)
	}

	return &entity.LearningPack{
		Id:         p.Id,
		DocumentId: p.DocumentId,
		ChildId:    p.ChildId,
		Subject:    p.Subject,
		Topic:      p.Topic,
		Grade:      p.Grade,
		Language:   p.Language,
		Tags:       tags,
		Content:    content,
		CreatedAt:  p.CreatedAt,
	}
}

func (m *LearningPackMapper) ToModel(p *entity.LearningPack) *model.LearningPack {
	if p == nil {
		return nil
	}

	tagsJson, _ := json.Marshal(p.Tags)
	contentJson, _ := json.Marshal(p.Content)

	return &model.LearningPack{
		Id:         p.Id,
		DocumentId: p.DocumentId,
		ChildId:    p.ChildId,
		Subject:    p.Subject,
		Topic:      p.Topic,
		Grade:      p.Grade,
		Language:   p.Language,
		Tags:       datatypes.JSON(tagsJson),
		Content:    datatypes.JSON(contentJson),
		CreatedAt:  p.CreatedAt,
	}
}

func (m *LearningPackMapper) ToEntities(models []*model.LearningPack) []*entity.LearningPack {
	entities := make([]*entity.LearningPack, 0, len(models))
	for _, p := range models {
		entities = append(entities, m.ToEntity(p))
	}
	return entities
}
