package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/polkiloo/printshop/internal/domain/repository"
)

// Cache keeps loaded tenant snapshots in process.
type Cache struct {
	statuses repository.StatusRepository

	mu        sync.RWMutex
	snapshots map[uuid.UUID]Snapshot
}

// NewCache constructs an empty Cache.
func NewCache(statuses repository.StatusRepository) *Cache {
	return &Cache{statuses: statuses, snapshots: make(map[uuid.UUID]Snapshot)}
}

// Snapshot returns the cached registry for companyID, loading it on first use.
func (c *Cache) Snapshot(ctx context.Context, companyID uuid.UUID) (Snapshot, error) {
	c.mu.RLock()
	snap, ok := c.snapshots[companyID]
	c.mu.RUnlock()
	if ok {
		return snap, nil
	}
	return c.Reload(ctx, companyID)
}

// Reload reads the registry from storage and replaces the cached entry.
func (c *Cache) Reload(ctx context.Context, companyID uuid.UUID) (Snapshot, error) {
	statuses, err := c.statuses.List(ctx, companyID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load order statuses: %w", err)
	}
	snap := NewSnapshot(statuses)

	c.mu.Lock()
	c.snapshots[companyID] = snap
	c.mu.Unlock()
	return snap, nil
}

// Invalidate drops the cached registry for companyID.
func (c *Cache) Invalidate(companyID uuid.UUID) {
	c.mu.Lock()
	delete(c.snapshots, companyID)
	c.mu.Unlock()
}
