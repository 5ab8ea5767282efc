package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestMemoryBrokerDelivers(t *testing.T) {
	b := NewMemoryBroker(0, zaptest.NewLogger(t).Sugar())
	ctx := context.Background()

	var got []string
	require.NoError(t, b.Subscribe(ctx, QueueOrderStatus, func(ctx context.Context, message []byte) error {
		got = append(got, string(message))
		return nil
	}))

	require.NoError(t, b.Publish(ctx, QueueOrderStatus, []byte("a")))
	require.NoError(t, b.Publish(ctx, QueueMenuEvents, []byte("ignored")))
	require.NoError(t, b.Publish(ctx, QueueOrderStatus, []byte("b")))

	assert.Equal(t, []string{"a", "b"}, got)
}

func TestMemoryBrokerRetriesThenDeadLetters(t *testing.T) {
	b := NewMemoryBroker(2, zaptest.NewLogger(t).Sugar())
	ctx := context.Background()

	calls := 0
	require.NoError(t, b.Subscribe(ctx, QueueCatalogImport, func(ctx context.Context, message []byte) error {
		calls++
		return errors.New("sheet offline")
	}))

	require.NoError(t, b.Publish(ctx, QueueCatalogImport, []byte("task")))

	assert.Equal(t, 3, calls)
	assert.Equal(t, [][]byte{[]byte("task")}, b.DeadLetters(QueueCatalogImportDLQ))
}

func TestMemoryBrokerSkipsCancelledSubscribers(t *testing.T) {
	b := NewMemoryBroker(0, zaptest.NewLogger(t).Sugar())
	subCtx, cancel := context.WithCancel(context.Background())

	calls := 0
	require.NoError(t, b.Subscribe(subCtx, QueueOrderStatus, func(ctx context.Context, message []byte) error {
		calls++
		return nil
	}))
	cancel()

	require.NoError(t, b.Publish(context.Background(), QueueOrderStatus, []byte("a")))
	assert.Equal(t, 0, calls)
}

func TestMemoryBrokerClosed(t *testing.T) {
	b := NewMemoryBroker(0, zaptest.NewLogger(t).Sugar())
	require.NoError(t, b.Close())

	assert.Error(t, b.Publish(context.Background(), QueueOrderStatus, []byte("a")))
	assert.Error(t, b.Subscribe(context.Background(), QueueOrderStatus, func(context.Context, []byte) error { return nil }))
}
