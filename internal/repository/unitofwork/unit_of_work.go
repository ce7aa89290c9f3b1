package unitofwork

import (
	"context"

	"ai-schoolplay-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentRepository() contract.DocumentRepository
	ConceptRepository() contract.ConceptRepository
	LearningPackRepository() contract.LearningPackRepository
	GameRepository() contract.GameRepository
}
