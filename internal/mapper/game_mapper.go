package mapper

import (
	"encoding/json"

	"ai-schoolplay-be/internal/entity"
	"ai-schoolplay-be/internal/model"

	"gorm.io/datatypes"
)

type GameMapper struct{}

func NewGameMapper() *GameMapper {
	return &GameMapper{}
}

func (m *GameMapper) ToEntity(g *model.Game) *entity.Game {
	if g == nil {
		return nil
	}

	var payload map[string]interface{}
	if len(g.Payload) > 0 {
		_ = json.Unmarshal(g.Payload, &payload)
	}

	return &entity.Game{
		Id:        g.Id,
		PackId:    g.PackId,
		Type:      g.Type,
		Status:    g.Status,
		Payload:   payload,
		CreatedAt: g.CreatedAt,
	}
}

func (m *GameMapper) ToModel(g *entity.Game) *model.Game {
	if g == nil {
		return nil
	}

	payloadJson, _ := json.Marshal(g.Payload)

	return &model.Game{
		Id:        g.Id,
		PackId:    g.PackId,
		Type:      g.Type,
		Status:    g.Status,
		Payload:   datatypes.JSON(payloadJson),
		CreatedAt: g.CreatedAt,
	}
}

func (m *GameMapper) ToEntities(models []*model.Game) []*entity.Game {
	entities := make([]*entity.Game, 0, len(models))
	for _, g := range models {
		entities = append(entities, m.ToEntity(g))
	}
	return entities
}
