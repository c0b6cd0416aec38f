package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/sergiuconi/casier-api/internal/domain/entity"
	"github.com/sergiuconi/casier-api/pkg/pagination"
)

// ProductFilterParams holds catalog listing filters
type ProductFilterParams struct {
	Search     string
	SGROnly    bool
	SortBy     string
	SortOrder  string
	Pagination *pagination.PaginationParams
}

// ProductRepository defines the interface for catalog data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByUPC resolves a scan code. Returns (nil, nil) on a lookup miss.
	GetByUPC(ctx context.Context, upc string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
}
