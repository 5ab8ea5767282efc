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

type OrderService struct {
	orderRepo repo.OrderRepository
	auditRepo repo.OrderAuditRepository
	broker    queue.Broker
	metrics   *metrics.Metrics
	logger    *zap.SugaredLogger
}

func NewOrderService(
	orderRepo repo.OrderRepository,
	auditRepo repo.OrderAuditRepository,
	broker queue.Broker,
	metrics *metrics.Metrics,
	logger *zap.SugaredLogger,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		auditRepo: auditRepo,
		broker:    broker,
		metrics:   metrics,
		logger:    logger,
	}
}

// ListOrders returns every order in insertion order. A read failure is
// logged and reported as no orders.
func (s *OrderService) ListOrders(ctx context.Context) []domain.Order {
	orders, err := s.orderRepo.Load(ctx)
	if err != nil {
		s.logger.Errorw("failed to load orders", "error", err)
		recordStorageFailure(s.metrics, err)
		return []domain.Order{}
	}

	return orders
}

// ListByStatus returns the orders with the given status, newest first.
// StatusFilterAll selects every order.
func (s *OrderService) ListByStatus(ctx context.Context, filter string) ([]domain.Order, error) {
	var status domain.OrderStatus
	if filter != domain.StatusFilterAll {
		st, err := domain.ParseOrderStatus(filter)
		if err != nil {
			return nil, err
		}
		status = st
	}

	matched := []domain.Order{}
	for _, order := range s.ListOrders(ctx) {
		if status == "" || order.Status == status {
			matched = append(matched, order)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	return matched, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	orders, err := s.orderRepo.Load(ctx)
	if err != nil {
		recordStorageFailure(s.metrics, err)
		return domain.Order{}, fmt.Errorf("failed to load orders: %w", err)
	}

	for _, order := range orders {
		if order.ID == id {
			return order, nil
		}
	}

	return domain.Order{}, fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
}

// RecordOrder stores draft as a new Open order. Line and order totals are
// recomputed from unit prices and quantities; the draft's totals are ignored.
func (s *OrderService) RecordOrder(ctx context.Context, draft domain.OrderDraft) (domain.Order, error) {
	if len(draft.Items) == 0 {
		return domain.Order{}, domain.ErrEmptyOrder
	}

	lines := make([]domain.OrderLine, len(draft.Items))
	for i, line := range draft.Items {
		if line.Quantity < 1 {
			return domain.Order{}, fmt.Errorf("%w: quantity of %s must be at least 1", domain.ErrValidation, line.MenuItemID)
		}
		if line.UnitPrice.IsNegative() {
			return domain.Order{}, fmt.Errorf("%w: unit price of %s must not be negative", domain.ErrValidation, line.MenuItemID)
		}
		line.SetQuantity(line.Quantity)
		lines[i] = line
	}

	id, err := newID()
	if err != nil {
		return domain.Order{}, err
	}

	table := strings.TrimSpace(draft.TableNumber)
	if table == "" {
		table = domain.CounterTable
	}

	order := domain.Order{
		ID:              id,
		Items:           lines,
		TotalOrderPrice: domain.SumLines(lines),
		TableNumber:     table,
		Notes:           strings.TrimSpace(draft.Notes),
		Status:          domain.OrderStatusOpen,
		Timestamp:       time.Now().UTC(),
	}

	err = s.orderRepo.Update(ctx, func(orders []domain.Order) ([]domain.Order, error) {
		return append(orders, order), nil
	})
	if err != nil {
		s.logger.Errorw("failed to record order", "order_id", order.ID, "error", err)
		recordStorageFailure(s.metrics, err)
		return domain.Order{}, fmt.Errorf("failed to record order: %w", err)
	}

	s.metrics.OrderRecorded(order.TotalOrderPrice.InexactFloat64())
	s.logger.Infow("order recorded", "order_id", order.ID, "table", order.TableNumber, "total", order.TotalOrderPrice.StringFixed(2))

	publishEvent(ctx, s.broker, s.logger, queue.QueueOrderStatus, domain.OrderStatusEvent{
		EventType: domain.EventOrderCreated,
		OrderID:   order.ID,
		NewStatus: order.Status,
		Timestamp: order.Timestamp,
	})

	return order, nil
}

// Advance moves the order one step along Open, InPreparation, Ready, Paid.
func (s *OrderService) Advance(ctx context.Context, id string) (domain.Order, error) {
	return s.transition(ctx, id, "advance", func(from domain.OrderStatus) (domain.OrderStatus, error) {
		return from.Next()
	})
}

// Cancel cancels an order that is not yet Paid or Cancelled.
func (s *OrderService) Cancel(ctx context.Context, id string) (domain.Order, error) {
	return s.SetStatus(ctx, id, domain.OrderStatusCancelled)
}

// SetStatus moves the order to status if that is a legal single step.
func (s *OrderService) SetStatus(ctx context.Context, id string, status domain.OrderStatus) (domain.Order, error) {
	if _, err := domain.ParseOrderStatus(string(status)); err != nil {
		return domain.Order{}, err
	}

	action := "set_status"
	if status == domain.OrderStatusCancelled {
		action = "cancel"
	}

	return s.transition(ctx, id, action, func(from domain.OrderStatus) (domain.OrderStatus, error) {
		if !domain.CanTransition(from, status) {
			return "", fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, from, status)
		}
		return status, nil
	})
}

func (s *OrderService) transition(
	ctx context.Context,
	id, action string,
	next func(from domain.OrderStatus) (domain.OrderStatus, error),
) (domain.Order, error) {
	var (
		updated domain.Order
		from    domain.OrderStatus
	)

	err := s.orderRepo.Update(ctx, func(orders []domain.Order) ([]domain.Order, error) {
		for i := range orders {
			if orders[i].ID != id {
				continue
			}

			to, err := next(orders[i].Status)
			if err != nil {
				return nil, err
			}

			from = orders[i].Status
			orders[i].Status = to
			updated = orders[i]
			return orders, nil
		}
		return nil, fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
	})
	if err != nil {
		if isInvalidTransition(err) {
			s.metrics.TransitionRejected(action)
			s.logger.Warnw("order transition rejected", "order_id", id, "action", action, "error", err)
		}
		recordStorageFailure(s.metrics, err)
		return domain.Order{}, fmt.Errorf("failed to change order status (%s): %w", action, err)
	}

	s.metrics.Transition(string(from), string(updated.Status))
	s.logger.Infow("order status changed", "order_id", id, "old_status", from, "new_status", updated.Status)

	publishEvent(ctx, s.broker, s.logger, queue.QueueOrderStatus, domain.OrderStatusEvent{
		EventType: domain.EventOrderStatusChanged,
		OrderID:   id,
		OldStatus: from,
		NewStatus: updated.Status,
		Timestamp: time.Now().UTC(),
	})

	return updated, nil
}

// ProcessStatusEvent appends an audit record for event.
func (s *OrderService) ProcessStatusEvent(ctx context.Context, event domain.OrderStatusEvent) error {
	id, err := newID()
	if err != nil {
		return err
	}

	audit := domain.OrderStatusAudit{
		ID:        id,
		OrderID:   event.OrderID,
		EventType: event.EventType,
		OldStatus: event.OldStatus,
		NewStatus: event.NewStatus,
		Timestamp: event.Timestamp,
	}

	err = s.auditRepo.Update(ctx, func(audits []domain.OrderStatusAudit) ([]domain.OrderStatusAudit, error) {
		return append(audits, audit), nil
	})
	if err != nil {
		s.logger.Errorw("failed to create audit record", "order_id", event.OrderID, "error", err)
		recordStorageFailure(s.metrics, err)
		return fmt.Errorf("failed to create audit record: %w", err)
	}

	s.logger.Infow("order status audit created", "order_id", event.OrderID, "event_type", event.EventType)

	return nil
}

// GetOrderAudit returns the audit trail of an order, newest first. A limit
// of zero or less returns every record.
func (s *OrderService) GetOrderAudit(ctx context.Context, orderID string, limit int) ([]domain.OrderStatusAudit, error) {
	audits, err := s.auditRepo.Load(ctx)
	if err != nil {
		recordStorageFailure(s.metrics, err)
		return nil, fmt.Errorf("failed to get order audit: %w", err)
	}

	trail := []domain.OrderStatusAudit{}
	for _, audit := range audits {
		if audit.OrderID == orderID {
			trail = append(trail, audit)
		}
	}

	// audits are appended in arrival order; reverse before sorting so equal
	// timestamps still come out newest first
	for i, j := 0, len(trail)-1; i < j; i, j = i+1, j-1 {
		trail[i], trail[j] = trail[j], trail[i]
	}
	sort.SliceStable(trail, func(i, j int) bool {
		return trail[i].Timestamp.After(trail[j].Timestamp)
	})

	if limit > 0 && len(trail) > limit {
		trail = trail[:limit]
	}

	return trail, nil
}
