package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/Larafmp/acai-mae-e-filha/internal/domain"
	"github.com/Larafmp/acai-mae-e-filha/internal/metrics"
	"github.com/Larafmp/acai-mae-e-filha/internal/queue"
	"github.com/Larafmp/acai-mae-e-filha/internal/store/blob"
	"github.com/Larafmp/acai-mae-e-filha/internal/store/memory"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fixture struct {
	store   *memory.Store
	broker  *queue.MemoryBroker
	metrics *metrics.Metrics
	catalog *CatalogService
	orders  *OrderService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := zap.NewNop().Sugar()
	store := memory.New()
	broker := queue.NewMemoryBroker(0, logger)
	t.Cleanup(func() { _ = broker.Close() })
	m := metrics.New()

	return &fixture{
		store:   store,
		broker:  broker,
		metrics: m,
		catalog: NewCatalogService(blob.NewMenuRepository(store), broker, m, logger),
		orders:  NewOrderService(blob.NewOrderRepository(store), blob.NewOrderAuditRepository(store), broker, m, logger),
	}
}

// failingStore fails every read, every write, or both.
type failingStore struct {
	failGet bool
	failSet bool
}

var errDisk = errors.New("disk unavailable")

func (s failingStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s.failGet {
		return "", false, errDisk
	}
	return "", false, nil
}

func (s failingStore) Set(ctx context.Context, key, value string) error {
	if s.failSet {
		return errDisk
	}
	return nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func draftItem(name, price string) domain.MenuItemDraft {
	return domain.MenuItemDraft{
		Name:  name,
		Price: dec(price),
	}
}

func assertStorageFailures(t *testing.T, m *metrics.Metrics, kind string, want int) {
	t.Helper()

	expected := fmt.Sprintf(`
# HELP acai_storage_failures_total Blob store failures by kind (read, write)
# TYPE acai_storage_failures_total counter
acai_storage_failures_total{kind=%q} %d
`, kind, want)

	err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "acai_storage_failures_total")
	assert.NoError(t, err)
}

// assertSameItem compares prices by value; a JSON round trip may change a
// decimal's exponent.
func assertSameItem(t *testing.T, want, got domain.MenuItem) {
	t.Helper()

	assert.True(t, want.Price.Equal(got.Price), "price: want %s, got %s", want.Price, got.Price)
	want.Price, got.Price = decimal.Zero, decimal.Zero
	assert.Equal(t, want, got)
}
