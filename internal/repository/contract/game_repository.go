package contract

import (
	"context"

	"ai-schoolplay-be/internal/entity"
	"ai-schoolplay-be/internal/repository/specification"
)

type GameRepository interface {
	Create(ctx context.Context, game *entity.Game) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Game, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Game, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
