package blob

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Larafmp/acai-mae-e-filha/internal/domain"
	"github.com/Larafmp/acai-mae-e-filha/internal/repo"
)

const (
	KeyMenuItems   = "@MaeEFilha:menuItems"
	KeyOrders      = "@MaeEFilha:orders"
	KeyOrderAudit  = "@MaeEFilha:orderStatusAudit"
	KeyImportTasks = "@MaeEFilha:catalogImports"
)

// Collection keeps a JSON array of T under a single blob key.
type Collection[T any] struct {
	store repo.BlobStore
	key   string
	mu    sync.Mutex
}

func NewCollection[T any](store repo.BlobStore, key string) *Collection[T] {
	return &Collection[T]{
		store: store,
		key:   key,
	}
}

func NewMenuRepository(store repo.BlobStore) *Collection[domain.MenuItem] {
	return NewCollection[domain.MenuItem](store, KeyMenuItems)
}

func NewOrderRepository(store repo.BlobStore) *Collection[domain.Order] {
	return NewCollection[domain.Order](store, KeyOrders)
}

func NewOrderAuditRepository(store repo.BlobStore) *Collection[domain.OrderStatusAudit] {
	return NewCollection[domain.OrderStatusAudit](store, KeyOrderAudit)
}

func NewImportTaskRepository(store repo.BlobStore) *Collection[domain.ImportTask] {
	return NewCollection[domain.ImportTask](store, KeyImportTasks)
}

func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	raw, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get %s: %w", domain.ErrStorageRead, c.key, err)
	}
	if !ok || raw == "" || raw == "null" {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %w", domain.ErrStorageRead, c.key, err)
	}

	return items, nil
}

func (c *Collection[T]) Update(ctx context.Context, fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.Load(ctx)
	if err != nil {
		return err
	}

	next, err := fn(items)
	if err != nil {
		return err
	}
	if next == nil {
		next = []T{}
	}

	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("%w: failed to encode %s: %w", domain.ErrStorageWrite, c.key, err)
	}

	if err := c.store.Set(ctx, c.key, string(data)); err != nil {
		return fmt.Errorf("%w: failed to set %s: %w", domain.ErrStorageWrite, c.key, err)
	}

	return nil
}
