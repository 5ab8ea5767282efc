package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Larafmp/acai-mae-e-filha/internal/domain"
	"github.com/Larafmp/acai-mae-e-filha/internal/metrics"
	"github.com/Larafmp/acai-mae-e-filha/internal/queue"
	"github.com/Larafmp/acai-mae-e-filha/internal/repo"
	"go.uber.org/zap"
)

type CatalogService struct {
	menuRepo repo.MenuRepository
	broker   queue.Broker
	metrics  *metrics.Metrics
	logger   *zap.SugaredLogger
}

func NewCatalogService(
	menuRepo repo.MenuRepository,
	broker queue.Broker,
	metrics *metrics.Metrics,
	logger *zap.SugaredLogger,
) *CatalogService {
	return &CatalogService{
		menuRepo: menuRepo,
		broker:   broker,
		metrics:  metrics,
		logger:   logger,
	}
}

// ListItems returns the catalog in stored order. A read failure is logged and
// reported as an empty catalog.
func (s *CatalogService) ListItems(ctx context.Context) []domain.MenuItem {
	items, err := s.menuRepo.Load(ctx)
	if err != nil {
		s.logger.Errorw("failed to load menu items", "error", err)
		recordStorageFailure(s.metrics, err)
		return []domain.MenuItem{}
	}

	return items
}

// ListSorted returns every item ordered by name.
func (s *CatalogService) ListSorted(ctx context.Context) []domain.MenuItem {
	items := s.ListItems(ctx)
	sortByName(items)
	return items
}

// ListAvailable returns the items that can be put on a new order, ordered by
// name.
func (s *CatalogService) ListAvailable(ctx context.Context) []domain.MenuItem {
	available := []domain.MenuItem{}
	for _, item := range s.ListItems(ctx) {
		if item.IsAvailable() {
			available = append(available, item)
		}
	}
	sortByName(available)
	return available
}

func (s *CatalogService) GetItem(ctx context.Context, id string) (domain.MenuItem, error) {
	items, err := s.menuRepo.Load(ctx)
	if err != nil {
		recordStorageFailure(s.metrics, err)
		return domain.MenuItem{}, fmt.Errorf("failed to load menu items: %w", err)
	}

	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}

	return domain.MenuItem{}, fmt.Errorf("menu item %s: %w", id, domain.ErrNotFound)
}

// AddItem stores draft under a fresh id. The draft is expected to have been
// validated by the caller.
func (s *CatalogService) AddItem(ctx context.Context, draft domain.MenuItemDraft) (domain.MenuItem, error) {
	added, err := s.AddItems(ctx, []domain.MenuItemDraft{draft})
	if err != nil {
		return domain.MenuItem{}, err
	}
	return added[0], nil
}

// AddItems stores all drafts in a single collection write.
func (s *CatalogService) AddItems(ctx context.Context, drafts []domain.MenuItemDraft) ([]domain.MenuItem, error) {
	added := make([]domain.MenuItem, 0, len(drafts))
	for _, draft := range drafts {
		id, err := newID()
		if err != nil {
			return nil, err
		}
		added = append(added, draft.WithID(id))
	}

	err := s.menuRepo.Update(ctx, func(items []domain.MenuItem) ([]domain.MenuItem, error) {
		return append(items, added...), nil
	})
	if err != nil {
		s.logger.Errorw("failed to add menu items", "count", len(added), "error", err)
		recordStorageFailure(s.metrics, err)
		return nil, fmt.Errorf("failed to add menu items: %w", err)
	}

	for _, item := range added {
		s.metrics.MenuChange("create")
		s.logger.Infow("menu item created", "menu_item_id", item.ID, "name", item.Name)
		s.publish(ctx, domain.EventMenuItemCreated, item)
	}

	return added, nil
}

// UpdateItem replaces the stored item with the same id wholesale.
func (s *CatalogService) UpdateItem(ctx context.Context, item domain.MenuItem) error {
	err := s.menuRepo.Update(ctx, func(items []domain.MenuItem) ([]domain.MenuItem, error) {
		for i := range items {
			if items[i].ID == item.ID {
				items[i] = item
				return items, nil
			}
		}
		return nil, fmt.Errorf("menu item %s: %w", item.ID, domain.ErrNotFound)
	})
	if err != nil {
		recordStorageFailure(s.metrics, err)
		return fmt.Errorf("failed to update menu item: %w", err)
	}

	s.metrics.MenuChange("update")
	s.logger.Infow("menu item updated", "menu_item_id", item.ID)
	s.publish(ctx, domain.EventMenuItemUpdated, item)

	return nil
}

// DeleteItem removes the item with id. Deleting an unknown id is a no-op.
func (s *CatalogService) DeleteItem(ctx context.Context, id string) error {
	var removed *domain.MenuItem
	err := s.menuRepo.Update(ctx, func(items []domain.MenuItem) ([]domain.MenuItem, error) {
		kept := items[:0]
		for _, item := range items {
			if item.ID == id {
				item := item
				removed = &item
				continue
			}
			kept = append(kept, item)
		}
		return kept, nil
	})
	if err != nil {
		recordStorageFailure(s.metrics, err)
		return fmt.Errorf("failed to delete menu item: %w", err)
	}

	if removed == nil {
		return nil
	}

	s.metrics.MenuChange("delete")
	s.logger.Infow("menu item deleted", "menu_item_id", id)
	s.publish(ctx, domain.EventMenuItemDeleted, *removed)

	return nil
}

func (s *CatalogService) publish(ctx context.Context, eventType string, item domain.MenuItem) {
	publishEvent(ctx, s.broker, s.logger, queue.QueueMenuEvents, domain.MenuItemEvent{
		EventType:  eventType,
		MenuItemID: item.ID,
		Name:       item.Name,
		Timestamp:  time.Now().UTC(),
	})
}

func sortByName(items []domain.MenuItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
}
