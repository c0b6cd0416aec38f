// Package cache holds the Redis read-through caches fronting the
// catalog. A register scans the same handful of codes all day; keeping
// them in Redis keeps scan latency flat while the catalog lives in
// Postgres.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/sergiuconi/casier-api/internal/domain/entity"
	"github.com/sergiuconi/casier-api/internal/domain/enum"
)

const productKeyPrefix = "product:upc:"

// cachedProduct is the stored form. The entity's JSON marshaling is
// shaped for API responses and hides the cents price, so the cache
// round-trips its own record.
type cachedProduct struct {
	ID          uuid.UUID        `json:"id"`
	UPC         string           `json:"upc"`
	Name        string           `json:"name"`
	Price       int64            `json:"price"`
	VATRate     float64          `json:"vat_rate"`
	Departament int              `json:"departament"`
	Clasa       int              `json:"clasa"`
	Grupa       int              `json:"grupa"`
	Gest        string           `json:"gest"`
	Tax1        int              `json:"tax1"`
	Tax2        int              `json:"tax2"`
	Tax3        int              `json:"tax3"`
	SGR         enum.SGRCategory `json:"sgr"`
}

func toCached(p *entity.Product) cachedProduct {
	return cachedProduct{
		ID:          p.ID,
		UPC:         p.UPC,
		Name:        p.Name,
		Price:       p.Price,
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

func (c cachedProduct) toEntity() *entity.Product {
	return &entity.Product{
		ID:          c.ID,
		UPC:         c.UPC,
		Name:        c.Name,
		Price:       c.Price,
		VATRate:     c.VATRate,
		Departament: c.Departament,
		Clasa:       c.Clasa,
		Grupa:       c.Grupa,
		Gest:        c.Gest,
		Tax1:        c.Tax1,
		Tax2:        c.Tax2,
		Tax3:        c.Tax3,
		SGR:         c.SGR,
	}
}

// ProductCache caches catalog products by scan code with a bounded TTL.
type ProductCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewProductCache creates a product cache over an existing Redis client.
func NewProductCache(rdb *redis.Client, ttl time.Duration) *ProductCache {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &ProductCache{rdb: rdb, ttl: ttl}
}

// GetByUPC returns the cached product, (nil, false, nil) on a miss.
func (c *ProductCache) GetByUPC(ctx context.Context, upc string) (*entity.Product, bool, error) {
	blob, err := c.rdb.Get(ctx, productKeyPrefix+upc).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var cached cachedProduct
	if err := json.Unmarshal(blob, &cached); err != nil {
		// A corrupt entry is dropped so the next scan repopulates it.
		_ = c.rdb.Del(ctx, productKeyPrefix+upc).Err()
		return nil, false, nil
	}
	return cached.toEntity(), true, nil
}

// SetByUPC stores the product under its scan code.
func (c *ProductCache) SetByUPC(ctx context.Context, product *entity.Product) error {
	blob, err := json.Marshal(toCached(product))
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, productKeyPrefix+product.UPC, blob, c.ttl).Err()
}

// InvalidateUPC drops the cached entry after a catalog change.
func (c *ProductCache) InvalidateUPC(ctx context.Context, upc string) error {
	return c.rdb.Del(ctx, productKeyPrefix+upc).Err()
}
