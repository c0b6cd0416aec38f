package service

import (
	"sync"
	"time"

	"github.com/sergiuconi/casier-api/internal/cart"
	"github.com/sergiuconi/casier-api/internal/domain/repository"
)

// CartServiceConfig carries the shared collaborators handed to every
// register store the service constructs.
type CartServiceConfig struct {
	Products        ProductResolver
	Customers       CustomerResolver
	Snapshots       repository.SnapshotStore
	Receipts        repository.ReceiptRepository
	Settlement      SettlementClient
	SGR             SGRReporter
	DefaultCustomer *cart.Customer
	PollInterval    time.Duration
	PollTimeout     time.Duration
}

// CartService hands out the CartStore for each register. Stores are
// built lazily on first use and kept for the life of the process, so a
// register always talks to the same instance and the same lock.
type CartService struct {
	mu     sync.Mutex
	cfg    CartServiceConfig
	stores map[int]*CartStore
}

// NewCartService creates a new cart service
func NewCartService(cfg CartServiceConfig) *CartService {
	return &CartService{
		cfg:    cfg,
		stores: make(map[int]*CartStore),
	}
}

// Store returns the register's cart store, constructing and restoring
// it on first access.
func (s *CartService) Store(casa int) *CartStore {
	s.mu.Lock()
	defer s.mu.Unlock()

	if store, ok := s.stores[casa]; ok {
		return store
	}
	store := NewCartStore(CartStoreConfig{
		Casa:            casa,
		Products:        s.cfg.Products,
		Customers:       s.cfg.Customers,
		Snapshots:       s.cfg.Snapshots,
		Receipts:        s.cfg.Receipts,
		Settlement:      s.cfg.Settlement,
		SGR:             s.cfg.SGR,
		DefaultCustomer: s.cfg.DefaultCustomer,
		PollInterval:    s.cfg.PollInterval,
		PollTimeout:     s.cfg.PollTimeout,
	})
	s.stores[casa] = store
	return store
}
