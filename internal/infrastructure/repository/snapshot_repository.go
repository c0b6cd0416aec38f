package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/sergiuconi/casier-api/internal/domain/entity"
	domainRepo "github.com/sergiuconi/casier-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type snapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository creates a database-backed snapshot store
func NewSnapshotRepository(db *gorm.DB) domainRepo.SnapshotStore {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var snap entity.CartSnapshot
	err := r.db.WithContext(ctx).First(&snap, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return snap.Blob, nil
}

func (r *snapshotRepository) Set(ctx context.Context, key string, blob []byte) error {
	snap := entity.CartSnapshot{Key: key, Blob: blob}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"blob", "updated_at"}),
		}).
		Create(&snap).Error
}

type memorySnapshotStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemorySnapshotStore creates a process-local snapshot store for
// deployments without a database, such as demo registers.
func NewMemorySnapshotStore() domainRepo.SnapshotStore {
	return &memorySnapshotStore{blobs: make(map[string][]byte)}
}

func (s *memorySnapshotStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.blobs[key], nil
}

func (s *memorySnapshotStore) Set(ctx context.Context, key string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(blob))
	copy(stored, blob)
	s.blobs[key] = stored
	return nil
}
