package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Larafmp/acai-mae-e-filha/internal/domain"
	"github.com/Larafmp/acai-mae-e-filha/internal/queue"
	"go.uber.org/zap"
)

// MenuEventsWorker drains the menu events queue into the log.
type MenuEventsWorker struct {
	broker queue.Broker
	logger *zap.SugaredLogger
	ctx    context.Context
	cancel context.CancelFunc
}

func NewMenuEventsWorker(broker queue.Broker, logger *zap.SugaredLogger) *MenuEventsWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &MenuEventsWorker{
		broker: broker,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (w *MenuEventsWorker) Start() error {
	w.logger.Info("starting menu events worker")

	return w.broker.Subscribe(w.ctx, queue.QueueMenuEvents, w.handleMessage)
}

func (w *MenuEventsWorker) Stop() {
	w.logger.Info("stopping menu events worker")
	w.cancel()
}

func (w *MenuEventsWorker) handleMessage(ctx context.Context, message []byte) error {
	var event domain.MenuItemEvent
	if err := json.Unmarshal(message, &event); err != nil {
		w.logger.Errorw("failed to unmarshal event", "error", err)
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	w.logger.Infow("menu changed", "event_type", event.EventType, "menu_item_id", event.MenuItemID, "name", event.Name)

	return nil
}
