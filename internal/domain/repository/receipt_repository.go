package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/sergiuconi/casier-api/internal/domain/entity"
	"github.com/sergiuconi/casier-api/pkg/pagination"
)

// ReceiptRepository defines the interface for the finalized receipts log.
// Receipts are append-only: there is no update operation.
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.Receipt) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	List(ctx context.Context, casa int, params *pagination.PaginationParams) ([]entity.Receipt, int64, error)
}
