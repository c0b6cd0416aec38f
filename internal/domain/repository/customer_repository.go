package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/sergiuconi/casier-api/internal/domain/entity"
	"github.com/sergiuconi/casier-api/pkg/pagination"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	// GetByID returns (nil, nil) on a lookup miss.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	// GetByCardID resolves a loyalty card swipe. Returns (nil, nil) on a miss.
	GetByCardID(ctx context.Context, cardID string) (*entity.Customer, error)
	// GetAnonymous returns the seeded walk-in customer record.
	GetAnonymous(ctx context.Context) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error)
}
