package queue

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

type subscription struct {
	ctx     context.Context
	handler MessageHandler
}

// MemoryBroker delivers messages in-process. Publish runs every live
// subscriber of the queue before returning; a failing handler is retried up
// to maxRetries times and then the message goes to the queue's DLQ.
type MemoryBroker struct {
	mu         sync.RWMutex
	subs       map[string][]subscription
	dead       map[string][][]byte
	maxRetries int
	closed     bool
	logger     *zap.SugaredLogger
}

func NewMemoryBroker(maxRetries int, logger *zap.SugaredLogger) *MemoryBroker {
	return &MemoryBroker{
		subs:       make(map[string][]subscription),
		dead:       make(map[string][][]byte),
		maxRetries: maxRetries,
		logger:     logger,
	}
}

func (b *MemoryBroker) Publish(ctx context.Context, queueName string, message []byte) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return fmt.Errorf("failed to publish message: broker closed")
	}
	subs := append([]subscription(nil), b.subs[queueName]...)
	b.mu.RUnlock()

	for _, sub := range subs {
		if sub.ctx.Err() != nil {
			continue
		}
		b.deliver(ctx, queueName, message, sub.handler)
	}

	return nil
}

func (b *MemoryBroker) deliver(ctx context.Context, queueName string, message []byte, handler MessageHandler) {
	var err error
	for attempt := 0; attempt <= b.maxRetries; attempt++ {
		if err = handler(ctx, message); err == nil {
			return
		}
		b.logger.Warnw("message handler failed", "queue", queueName, "attempt", attempt+1, "error", err)
	}

	dlqName := queueName + "-dlq"
	b.mu.Lock()
	b.dead[dlqName] = append(b.dead[dlqName], message)
	b.mu.Unlock()

	b.logger.Errorw("message moved to dead letter queue", "queue", dlqName, "error", err)
}

func (b *MemoryBroker) Subscribe(ctx context.Context, queueName string, handler MessageHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return fmt.Errorf("failed to register consumer: broker closed")
	}
	b.subs[queueName] = append(b.subs[queueName], subscription{ctx: ctx, handler: handler})

	return nil
}

// DeadLetters returns the messages parked on a dead letter queue.
func (b *MemoryBroker) DeadLetters(dlqName string) [][]byte {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return append([][]byte(nil), b.dead[dlqName]...)
}

func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	b.subs = make(map[string][]subscription)
	return nil
}
