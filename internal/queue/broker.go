package queue

import (
	"context"
)

type Broker interface {
	Publish(ctx context.Context, queueName string, message []byte) error
	Subscribe(ctx context.Context, queueName string, handler MessageHandler) error
	Close() error
}

type MessageHandler func(ctx context.Context, message []byte) error

const (
	QueueOrderStatus      = "order-status"
	QueueMenuEvents       = "menu-events"
	QueueCatalogImport    = "catalog-import"
	QueueOrderStatusDLQ   = "order-status-dlq"
	QueueMenuEventsDLQ    = "menu-events-dlq"
	QueueCatalogImportDLQ = "catalog-import-dlq"
)

var queues = []string{
	QueueOrderStatus,
	QueueMenuEvents,
	QueueCatalogImport,
	QueueOrderStatusDLQ,
	QueueMenuEventsDLQ,
	QueueCatalogImportDLQ,
}
