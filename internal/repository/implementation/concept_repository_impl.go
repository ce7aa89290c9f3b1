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
	"gorm.io/gorm/clause"
)

type ConceptRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConceptMapper
}

func NewConceptRepository(db *gorm.DB) contract.ConceptRepository {
	return &ConceptRepositoryImpl{
		db:     db,
		mapper: mapper.NewConceptMapper(),
	}
}

func (r *ConceptRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ConceptRepositoryImpl) Upsert(ctx context.Context, concept *entity.Concept) error {
	m := r.mapper.ToModel(concept)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "child_id"},
			{Name: "document_id"},
			{Name: "concept_key"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"label", "difficulty", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*concept = *r.mapper.ToEntity(m)
	return nil
}

func (r *ConceptRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Concept, error) {
	var m model.Concept
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ConceptRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Concept, error) {
	var models []*model.Concept
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ConceptRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Concept{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
