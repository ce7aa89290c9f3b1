package implementation

import (
	"context"
	"errors"

	"ai-schoolplay-be/internal/entity"
	"ai-schoolplay-be/internal/mapper"
	"ai-schoolplay-be/internal/model"
	"ai-schoolplay-be/internal/repository/contract"
	"ai-schoolplay-be/internal/repository/specification"

	"gorm.io/gorm"
)

type LearningPackRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LearningPackMapper
}

func NewLearningPackRepository(db *gorm.DB) contract.LearningPackRepository {
	return &LearningPackRepositoryImpl{
		db:     db,
		mapper: mapper.NewLearningPackMapper(),
	}
}

func (r *LearningPackRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *LearningPackRepositoryImpl) Create(ctx context.Context, pack *entity.LearningPack) error {
	m := r.mapper.ToModel(pack)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*pack = *r.mapper.ToEntity(m)
	return nil
}

func (r *LearningPackRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LearningPack, error) {
	var m model.LearningPack
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *LearningPackRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LearningPack, error) {
	var models []*model.LearningPack
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *LearningPackRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.LearningPack{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
