package repository

import "context"

// SnapshotStore is the key-value blob store holding persisted cart state
// per register. Get returns (nil, nil) when no snapshot exists yet.
// Non-interactive environments use the in-memory implementation.
type SnapshotStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, blob []byte) error
}
