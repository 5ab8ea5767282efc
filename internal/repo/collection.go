package repo

import (
	"context"

	"github.com/Larafmp/acai-mae-e-filha/internal/domain"
)

// CollectionRepository stores a whole collection as one unit. Update runs a
// read-modify-write: fn receives the current items and returns the new
// collection; an error from fn aborts the write.
type CollectionRepository[T any] interface {
	Load(ctx context.Context) ([]T, error)
	Update(ctx context.Context, fn func(items []T) ([]T, error)) error
}

type (
	MenuRepository       = CollectionRepository[domain.MenuItem]
	OrderRepository      = CollectionRepository[domain.Order]
	OrderAuditRepository = CollectionRepository[domain.OrderStatusAudit]
	ImportTaskRepository = CollectionRepository[domain.ImportTask]
)
