package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sergiuconi/casier-api/internal/cart"
	"github.com/sergiuconi/casier-api/internal/domain/entity"
	"github.com/sergiuconi/casier-api/internal/domain/enum"
	"github.com/sergiuconi/casier-api/internal/domain/repository"
	"github.com/sergiuconi/casier-api/pkg/apperror"
	"github.com/sergiuconi/casier-api/pkg/pagination"
)

// ProductCache is a read-through cache over scan-code lookups. A miss
// is (nil, false, nil); cache failures degrade to the repository.
type ProductCache interface {
	GetByUPC(ctx context.Context, upc string) (*entity.Product, bool, error)
	SetByUPC(ctx context.Context, product *entity.Product) error
	InvalidateUPC(ctx context.Context, upc string) error
}

// ProductService handles catalog operations and scan-code resolution
type ProductService struct {
	productRepo repository.ProductRepository
	cache       ProductCache
}

// NewProductService creates a new product service. The cache is
// optional; a nil cache means every scan hits the repository.
func NewProductService(productRepo repository.ProductRepository, cache ProductCache) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		cache:       cache,
	}
}

// ResolveUPC resolves a scan code against the cache, then the catalog.
// A lookup miss is (nil, nil) so the register can distinguish an
// unknown code from a catalog outage.
func (s *ProductService) ResolveUPC(ctx context.Context, upc string) (*cart.Product, error) {
	upc = strings.TrimSpace(upc)
	if upc == "" {
		return nil, nil
	}

	if s.cache != nil {
		if product, ok, err := s.cache.GetByUPC(ctx, upc); err == nil && ok {
			return toCartProduct(product), nil
		}
	}

	product, err := s.productRepo.GetByUPC(ctx, upc)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if s.cache != nil {
		// Cache population is best-effort; the lookup already succeeded.
		_ = s.cache.SetByUPC(ctx, product)
	}
	return toCartProduct(product), nil
}

func toCartProduct(p *entity.Product) *cart.Product {
	return &cart.Product{
		ID:          p.ID.String(),
		UPC:         p.UPC,
		Name:        p.Name,
		Price:       p.GetPriceDecimal(),
		VATRate:     p.VATRate,
		Departament: p.Departament,
		Clasa:       p.Clasa,
		Grupa:       p.Grupa,
		Gest:        p.Gest,
		Tax1:        p.Tax1,
		Tax2:        p.Tax2,
		Tax3:        p.Tax3,
		SGR:         p.SGR,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	UPC         string
	Name        string
	Price       float64
	VATRate     float64
	Departament int
	Clasa       int
	Grupa       int
	Gest        string
	Tax1        int
	Tax2        int
	Tax3        int
	SGR         string
}

// CreateProduct creates a new catalog product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	upc := strings.TrimSpace(input.UPC)
	if upc == "" {
		return nil, apperror.NewBadRequestError("UPC is required")
	}

	existing, err := s.productRepo.GetByUPC(ctx, upc)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Product UPC already exists")
	}

	sgr, err := parseSGR(input.SGR)
	if err != nil {
		return nil, err
	}

	product := &entity.Product{
		UPC:         upc,
		Name:        strings.TrimSpace(input.Name),
		VATRate:     input.VATRate,
		Departament: input.Departament,
		Clasa:       input.Clasa,
		Grupa:       input.Grupa,
		Gest:        input.Gest,
		Tax1:        input.Tax1,
		Tax2:        input.Tax2,
		Tax3:        input.Tax3,
		SGR:         sgr,
	}
	product.SetPriceFromDecimal(input.Price)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(ctx, product.ID)
}

// GetProductByID retrieves a product by ID
func (s *ProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// GetProductByUPC retrieves a catalog product by scan code
func (s *ProductService) GetProductByUPC(ctx context.Context, upc string) (*entity.Product, error) {
	product, err := s.productRepo.GetByUPC(ctx, strings.TrimSpace(upc))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists catalog products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	ID          uuid.UUID
	Name        *string
	Price       *float64
	VATRate     *float64
	Departament *int
	Clasa       *int
	Grupa       *int
	Gest        *string
	Tax1        *int
	Tax2        *int
	Tax3        *int
	SGR         *string
}

// UpdateProduct updates a catalog product and invalidates its cache entry
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Price != nil {
		product.SetPriceFromDecimal(*input.Price)
	}
	if input.VATRate != nil {
		product.VATRate = *input.VATRate
	}
	if input.Departament != nil {
		product.Departament = *input.Departament
	}
	if input.Clasa != nil {
		product.Clasa = *input.Clasa
	}
	if input.Grupa != nil {
		product.Grupa = *input.Grupa
	}
	if input.Gest != nil {
		product.Gest = *input.Gest
	}
	if input.Tax1 != nil {
		product.Tax1 = *input.Tax1
	}
	if input.Tax2 != nil {
		product.Tax2 = *input.Tax2
	}
	if input.Tax3 != nil {
		product.Tax3 = *input.Tax3
	}
	if input.SGR != nil {
		sgr, err := parseSGR(*input.SGR)
		if err != nil {
			return nil, err
		}
		product.SGR = sgr
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateUPC(ctx, product.UPC)
	}
	return s.productRepo.GetByID(ctx, product.ID)
}

// DeleteProduct deletes a catalog product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateUPC(ctx, product.UPC)
	}
	return nil
}

func parseSGR(value string) (enum.SGRCategory, error) {
	if value == "" {
		return "", nil
	}
	sgr, ok := enum.ParseSGRCategory(value)
	if !ok {
		return "", apperror.NewBadRequestError("Invalid SGR category")
	}
	return sgr, nil
}
