package contract

import (
	"context"

	"ai-schoolplay-be/internal/entity"
	"ai-schoolplay-be/internal/repository/specification"
)

type LearningPackRepository interface {
	Create(ctx context.Context, pack *entity.LearningPack) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LearningPack, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LearningPack, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
