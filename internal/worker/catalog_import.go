package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Larafmp/acai-mae-e-filha/internal/domain"
	"github.com/Larafmp/acai-mae-e-filha/internal/queue"
	"github.com/Larafmp/acai-mae-e-filha/internal/service"
	"go.uber.org/zap"
)

type CatalogImportWorker struct {
	importService *service.ImportService
	broker        queue.Broker
	logger        *zap.SugaredLogger
	ctx           context.Context
	cancel        context.CancelFunc
}

func NewCatalogImportWorker(
	importService *service.ImportService,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *CatalogImportWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &CatalogImportWorker{
		importService: importService,
		broker:        broker,
		logger:        logger,
		ctx:           ctx,
		cancel:        cancel,
	}
}

func (w *CatalogImportWorker) Start() error {
	w.logger.Info("starting catalog import worker")

	return w.broker.Subscribe(w.ctx, queue.QueueCatalogImport, w.handleMessage)
}

func (w *CatalogImportWorker) Stop() {
	w.logger.Info("stopping catalog import worker")
	w.cancel()
}

func (w *CatalogImportWorker) handleMessage(ctx context.Context, message []byte) error {
	var msg domain.CatalogImportMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		w.logger.Errorw("failed to unmarshal message", "error", err)
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}

	if msg.TaskID == "" {
		w.logger.Errorw("invalid task ID", "task_id", msg.TaskID)
		return fmt.Errorf("invalid task ID %q", msg.TaskID)
	}

	w.logger.Infow("processing catalog import message", "task_id", msg.TaskID)

	if err := w.importService.ProcessImportTask(ctx, msg.TaskID); err != nil {
		w.logger.Errorw("failed to process import task", "task_id", msg.TaskID, "error", err)
		return err
	}

	return nil
}
