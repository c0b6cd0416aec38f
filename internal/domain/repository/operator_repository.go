package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/sergiuconi/casier-api/internal/domain/entity"
)

// OperatorRepository defines the interface for operator data operations
type OperatorRepository interface {
	Create(ctx context.Context, operator *entity.Operator) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Operator, error)
	GetByUsername(ctx context.Context, username string) (*entity.Operator, error)
	Update(ctx context.Context, operator *entity.Operator) error
	List(ctx context.Context) ([]entity.Operator, error)
}
