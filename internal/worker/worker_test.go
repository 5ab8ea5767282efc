package worker

import (
	"context"
	"testing"

	"github.com/Larafmp/acai-mae-e-filha/internal/domain"
	"github.com/Larafmp/acai-mae-e-filha/internal/parser"
	"github.com/Larafmp/acai-mae-e-filha/internal/queue"
	"github.com/Larafmp/acai-mae-e-filha/internal/service"
	"github.com/Larafmp/acai-mae-e-filha/internal/store/blob"
	"github.com/Larafmp/acai-mae-e-filha/internal/store/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticParser struct {
	result *parser.Result
}

func (p staticParser) ParseCatalog(ctx context.Context, spreadsheetID string) (*parser.Result, error) {
	return p.result, nil
}

func TestOrderStatusWorkerWritesAudit(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop().Sugar()
	store := memory.New()
	broker := queue.NewMemoryBroker(1, logger)
	defer broker.Close()

	orders := service.NewOrderService(blob.NewOrderRepository(store), blob.NewOrderAuditRepository(store), broker, nil, logger)

	w := NewOrderStatusWorker(orders, broker, logger)
	require.NoError(t, w.Start())
	defer w.Stop()

	line := domain.OrderLine{MenuItemID: "1", Name: "Açaí 500ml", UnitPrice: decimal.RequireFromString("35.50")}
	line.SetQuantity(1)
	order, err := orders.RecordOrder(ctx, domain.OrderDraft{Items: []domain.OrderLine{line}})
	require.NoError(t, err)
	_, err = orders.Advance(ctx, order.ID)
	require.NoError(t, err)

	trail, err := orders.GetOrderAudit(ctx, order.ID, 0)
	require.NoError(t, err)
	require.Len(t, trail, 2)
	assert.Equal(t, domain.OrderStatusInPreparation, trail[0].NewStatus)
}

func TestOrderStatusWorkerDeadLettersBadMessages(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop().Sugar()
	store := memory.New()
	broker := queue.NewMemoryBroker(1, logger)
	defer broker.Close()

	orders := service.NewOrderService(blob.NewOrderRepository(store), blob.NewOrderAuditRepository(store), broker, nil, logger)
	w := NewOrderStatusWorker(orders, broker, logger)
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, broker.Publish(ctx, queue.QueueOrderStatus, []byte("{not json")))
	require.NoError(t, broker.Publish(ctx, queue.QueueOrderStatus, []byte(`{"event_type":"order.created"}`)))

	assert.Len(t, broker.DeadLetters(queue.QueueOrderStatusDLQ), 2)
}

func TestStoppedWorkerReceivesNothing(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop().Sugar()
	store := memory.New()
	broker := queue.NewMemoryBroker(0, logger)
	defer broker.Close()

	orders := service.NewOrderService(blob.NewOrderRepository(store), blob.NewOrderAuditRepository(store), broker, nil, logger)
	w := NewOrderStatusWorker(orders, broker, logger)
	require.NoError(t, w.Start())
	w.Stop()

	require.NoError(t, broker.Publish(ctx, queue.QueueOrderStatus, []byte(`{"event_type":"order.created","order_id":"1"}`)))

	trail, err := orders.GetOrderAudit(ctx, "1", 0)
	require.NoError(t, err)
	assert.Empty(t, trail)
}

func TestCatalogImportWorker(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop().Sugar()
	store := memory.New()
	broker := queue.NewMemoryBroker(0, logger)
	defer broker.Close()

	catalog := service.NewCatalogService(blob.NewMenuRepository(store), broker, nil, logger)
	imports := service.NewImportService(blob.NewImportTaskRepository(store), catalog, staticParser{result: &parser.Result{
		Items:   []domain.MenuItemDraft{{Name: "Açaí 500ml", Price: decimal.RequireFromString("35.50")}},
		Skipped: 1,
	}}, broker, logger)

	w := NewCatalogImportWorker(imports, broker, logger)
	require.NoError(t, w.Start())
	defer w.Stop()

	menuEvents := NewMenuEventsWorker(broker, logger)
	require.NoError(t, menuEvents.Start())
	defer menuEvents.Stop()

	task, err := imports.CreateImportTask(ctx, "sheet-1")
	require.NoError(t, err)

	done, err := imports.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ImportStatusCompleted, done.Status)
	assert.Equal(t, 1, done.ImportedCount)
	assert.Equal(t, 1, done.SkippedCount)

	items := catalog.ListItems(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, "Açaí 500ml", items[0].Name)
	assert.Empty(t, broker.DeadLetters(queue.QueueMenuEventsDLQ))
}
