package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Larafmp/acai-mae-e-filha/internal/domain"
	"github.com/Larafmp/acai-mae-e-filha/internal/parser"
	"github.com/Larafmp/acai-mae-e-filha/internal/queue"
	"github.com/Larafmp/acai-mae-e-filha/internal/store/blob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubParser struct {
	result *parser.Result
	err    error
	calls  []string
}

func (p *stubParser) ParseCatalog(ctx context.Context, spreadsheetID string) (*parser.Result, error) {
	p.calls = append(p.calls, spreadsheetID)
	return p.result, p.err
}

func newImportService(f *fixture, p CatalogParser) *ImportService {
	return NewImportService(blob.NewImportTaskRepository(f.store), f.catalog, p, f.broker, zap.NewNop().Sugar())
}

func TestCreateImportTaskQueuesMessage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	imports := newImportService(f, &stubParser{})

	var messages []domain.CatalogImportMessage
	require.NoError(t, f.broker.Subscribe(ctx, queue.QueueCatalogImport, func(ctx context.Context, message []byte) error {
		var msg domain.CatalogImportMessage
		require.NoError(t, json.Unmarshal(message, &msg))
		messages = append(messages, msg)
		return nil
	}))

	task, err := imports.CreateImportTask(ctx, "sheet-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ImportStatusQueued, task.Status)

	require.Len(t, messages, 1)
	assert.Equal(t, task.ID, messages[0].TaskID)
	assert.Equal(t, "sheet-1", messages[0].SpreadsheetID)

	stored, err := imports.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ImportStatusQueued, stored.Status)
}

func TestCreateImportTaskWithoutParser(t *testing.T) {
	f := newFixture(t)
	imports := newImportService(f, nil)

	_, err := imports.CreateImportTask(context.Background(), "sheet-1")
	assert.ErrorIs(t, err, ErrImportDisabled)
}

func TestCreateImportTaskPublishFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	imports := newImportService(f, &stubParser{})
	require.NoError(t, f.broker.Close())

	_, err := imports.CreateImportTask(ctx, "sheet-1")
	require.Error(t, err)

	tasks, err := blob.NewImportTaskRepository(f.store).Load(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, domain.ImportStatusFailed, tasks[0].Status)
	assert.NotEmpty(t, tasks[0].ErrorMessage)
}

func TestProcessImportTask(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	stub := &stubParser{result: &parser.Result{
		Items: []domain.MenuItemDraft{
			draftItem("Açaí 500ml", "35.50"),
			draftItem("Cupuaçu 300ml", "14.50"),
		},
		Skipped: 2,
	}}
	imports := newImportService(f, stub)

	task, err := imports.CreateImportTask(ctx, "sheet-1")
	require.NoError(t, err)

	require.NoError(t, imports.ProcessImportTask(ctx, task.ID))

	done, err := imports.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ImportStatusCompleted, done.Status)
	assert.Equal(t, 2, done.ImportedCount)
	assert.Equal(t, 2, done.SkippedCount)
	assert.Equal(t, []string{"sheet-1"}, stub.calls)
	assert.Len(t, f.catalog.ListItems(ctx), 2)

	// a redelivered message does not import twice
	require.NoError(t, imports.ProcessImportTask(ctx, task.ID))
	assert.Len(t, f.catalog.ListItems(ctx), 2)
}

func TestProcessImportTaskParseFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	imports := newImportService(f, &stubParser{err: errors.New("spreadsheet not shared")})

	task, err := imports.CreateImportTask(ctx, "sheet-1")
	require.NoError(t, err)

	err = imports.ProcessImportTask(ctx, task.ID)
	require.Error(t, err)

	failed, err := imports.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ImportStatusFailed, failed.Status)
	assert.Contains(t, failed.ErrorMessage, "spreadsheet not shared")
	assert.Empty(t, f.catalog.ListItems(ctx))
}

func TestProcessImportTaskUnknownTask(t *testing.T) {
	f := newFixture(t)
	imports := newImportService(f, &stubParser{})

	err := imports.ProcessImportTask(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateImportTaskReturnsStoredStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	imports := newImportService(f, &stubParser{result: &parser.Result{
		Items: []domain.MenuItemDraft{draftItem("Açaí 500ml", "35.50")},
	}})

	require.NoError(t, f.broker.Subscribe(ctx, queue.QueueCatalogImport, func(ctx context.Context, message []byte) error {
		var msg domain.CatalogImportMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			return err
		}
		return imports.ProcessImportTask(ctx, msg.TaskID)
	}))

	task, err := imports.CreateImportTask(ctx, "sheet-1")
	require.NoError(t, err)

	assert.Equal(t, domain.ImportStatusCompleted, task.Status)
	assert.Equal(t, 1, task.ImportedCount)
}
