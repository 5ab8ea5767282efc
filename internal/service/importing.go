package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Larafmp/acai-mae-e-filha/internal/domain"
	"github.com/Larafmp/acai-mae-e-filha/internal/parser"
	"github.com/Larafmp/acai-mae-e-filha/internal/queue"
	"github.com/Larafmp/acai-mae-e-filha/internal/repo"
	"go.uber.org/zap"
)

// ErrImportDisabled is returned when no spreadsheet parser is configured.
var ErrImportDisabled = errors.New("catalog import is not configured")

type CatalogParser interface {
	ParseCatalog(ctx context.Context, spreadsheetID string) (*parser.Result, error)
}

type ImportService struct {
	taskRepo repo.ImportTaskRepository
	catalog  *CatalogService
	parser   CatalogParser
	broker   queue.Broker
	logger   *zap.SugaredLogger
}

// NewImportService wires the catalog import. parser may be nil, in which
// case CreateImportTask returns ErrImportDisabled.
func NewImportService(
	taskRepo repo.ImportTaskRepository,
	catalog *CatalogService,
	parser CatalogParser,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *ImportService {
	return &ImportService{
		taskRepo: taskRepo,
		catalog:  catalog,
		parser:   parser,
		broker:   broker,
		logger:   logger,
	}
}

func (s *ImportService) CreateImportTask(ctx context.Context, spreadsheetID string) (domain.ImportTask, error) {
	if s.parser == nil {
		return domain.ImportTask{}, ErrImportDisabled
	}

	id, err := newID()
	if err != nil {
		return domain.ImportTask{}, err
	}

	now := time.Now().UTC()
	task := domain.ImportTask{
		ID:            id,
		Status:        domain.ImportStatusQueued,
		SpreadsheetID: spreadsheetID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.taskRepo.Update(ctx, func(tasks []domain.ImportTask) ([]domain.ImportTask, error) {
		return append(tasks, task), nil
	})
	if err != nil {
		return domain.ImportTask{}, fmt.Errorf("failed to create import task: %w", err)
	}

	message, err := json.Marshal(domain.CatalogImportMessage{
		TaskID:        task.ID,
		SpreadsheetID: spreadsheetID,
	})
	if err != nil {
		return domain.ImportTask{}, fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := s.broker.Publish(ctx, queue.QueueCatalogImport, message); err != nil {
		_ = s.updateTask(ctx, task.ID, func(t *domain.ImportTask) {
			t.Status = domain.ImportStatusFailed
			t.ErrorMessage = err.Error()
		})
		return domain.ImportTask{}, fmt.Errorf("failed to publish message: %w", err)
	}

	s.logger.Infow("import task created", "task_id", task.ID, "spreadsheet_id", spreadsheetID)

	// an in-process broker runs the import before Publish returns
	stored, err := s.GetTask(ctx, task.ID)
	if err != nil {
		s.logger.Warnw("failed to reload import task", "task_id", task.ID, "error", err)
		return task, nil
	}

	return stored, nil
}

func (s *ImportService) GetTask(ctx context.Context, taskID string) (domain.ImportTask, error) {
	tasks, err := s.taskRepo.Load(ctx)
	if err != nil {
		return domain.ImportTask{}, fmt.Errorf("failed to get import task: %w", err)
	}

	for _, task := range tasks {
		if task.ID == taskID {
			return task, nil
		}
	}

	return domain.ImportTask{}, fmt.Errorf("import task %s: %w", taskID, domain.ErrNotFound)
}

func (s *ImportService) ProcessImportTask(ctx context.Context, taskID string) error {
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}

	if task.Status == domain.ImportStatusCompleted {
		s.logger.Infow("import task already completed", "task_id", taskID)
		return nil
	}

	if err := s.updateTask(ctx, taskID, func(t *domain.ImportTask) {
		t.Status = domain.ImportStatusProcessing
	}); err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}

	s.logger.Infow("processing import task", "task_id", taskID)

	if s.parser == nil {
		s.fail(ctx, taskID, ErrImportDisabled)
		return ErrImportDisabled
	}

	result, err := s.parser.ParseCatalog(ctx, task.SpreadsheetID)
	if err != nil {
		s.logger.Errorw("failed to parse catalog", "task_id", taskID, "error", err)
		s.fail(ctx, taskID, err)
		return fmt.Errorf("failed to parse catalog: %w", err)
	}

	added, err := s.catalog.AddItems(ctx, result.Items)
	if err != nil {
		s.logger.Errorw("failed to save menu items", "task_id", taskID, "error", err)
		s.fail(ctx, taskID, err)
		return fmt.Errorf("failed to save menu items: %w", err)
	}

	if err := s.updateTask(ctx, taskID, func(t *domain.ImportTask) {
		t.Status = domain.ImportStatusCompleted
		t.ImportedCount = len(added)
		t.SkippedCount = result.Skipped
		t.ErrorMessage = ""
	}); err != nil {
		s.logger.Errorw("failed to update task", "task_id", taskID, "error", err)
		return fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Infow("import task completed", "task_id", taskID, "imported", len(added), "skipped", result.Skipped)

	return nil
}

func (s *ImportService) fail(ctx context.Context, taskID string, cause error) {
	_ = s.updateTask(ctx, taskID, func(t *domain.ImportTask) {
		t.Status = domain.ImportStatusFailed
		t.ErrorMessage = cause.Error()
	})
}

func (s *ImportService) updateTask(ctx context.Context, taskID string, fn func(t *domain.ImportTask)) error {
	return s.taskRepo.Update(ctx, func(tasks []domain.ImportTask) ([]domain.ImportTask, error) {
		for i := range tasks {
			if tasks[i].ID == taskID {
				fn(&tasks[i])
				tasks[i].UpdatedAt = time.Now().UTC()
				return tasks, nil
			}
		}
		return nil, fmt.Errorf("import task %s: %w", taskID, domain.ErrNotFound)
	})
}
