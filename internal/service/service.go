package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Larafmp/acai-mae-e-filha/internal/domain"
	"github.com/Larafmp/acai-mae-e-filha/internal/metrics"
	"github.com/Larafmp/acai-mae-e-filha/internal/queue"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate id: %w", err)
	}
	return id.String(), nil
}

// publishEvent is best effort: the write it reports on has already happened,
// so a broker failure is only logged.
func publishEvent(ctx context.Context, broker queue.Broker, logger *zap.SugaredLogger, queueName string, event any) {
	if broker == nil {
		return
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		logger.Errorw("failed to marshal event", "queue", queueName, "error", err)
		return
	}

	if err := broker.Publish(ctx, queueName, eventBytes); err != nil {
		logger.Errorw("failed to publish event", "queue", queueName, "error", err)
	}
}

func recordStorageFailure(m *metrics.Metrics, err error) {
	switch {
	case errors.Is(err, domain.ErrStorageRead):
		m.StorageFailure("read")
	case errors.Is(err, domain.ErrStorageWrite):
		m.StorageFailure("write")
	}
}

func isInvalidTransition(err error) bool {
	return errors.Is(err, domain.ErrInvalidTransition)
}
