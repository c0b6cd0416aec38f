package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sergiuconi/casier-api/internal/domain/entity"
	"github.com/sergiuconi/casier-api/internal/domain/repository"
	"github.com/sergiuconi/casier-api/pkg/apperror"
	"github.com/sergiuconi/casier-api/pkg/pagination"
)

// ReceiptService exposes the finalized receipts log for reprints and
// end-of-day review. The log is append-only; writes happen in the cart
// store at payment completion.
type ReceiptService struct {
	receiptRepo repository.ReceiptRepository
}

// NewReceiptService creates a new receipt service
func NewReceiptService(receiptRepo repository.ReceiptRepository) *ReceiptService {
	return &ReceiptService{receiptRepo: receiptRepo}
}

// GetReceipt retrieves a finalized receipt by ID
func (s *ReceiptService) GetReceipt(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return receipt, nil
}

// ListReceipts lists a register's finalized receipts, newest first.
// Casa 0 lists all registers.
func (s *ReceiptService) ListReceipts(ctx context.Context, casa int, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Receipt], error) {
	receipts, total, err := s.receiptRepo.List(ctx, casa, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(receipts, pag), nil
}
