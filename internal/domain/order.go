package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusOpen          OrderStatus = "Open"
	OrderStatusInPreparation OrderStatus = "InPreparation"
	OrderStatusReady         OrderStatus = "Ready"
	OrderStatusPaid          OrderStatus = "Paid"
	OrderStatusCancelled     OrderStatus = "Cancelled"
)

// StatusFilterAll selects every order regardless of status.
const StatusFilterAll = "All"

// CounterTable is recorded when an order is not tied to a table.
const CounterTable = "counter"

// orderFlow is the linear workflow followed by Advance.
var orderFlow = []OrderStatus{
	OrderStatusOpen,
	OrderStatusInPreparation,
	OrderStatusReady,
	OrderStatusPaid,
}

var OrderStatuses = []OrderStatus{
	OrderStatusOpen,
	OrderStatusInPreparation,
	OrderStatusReady,
	OrderStatusPaid,
	OrderStatusCancelled,
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	for _, st := range OrderStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: unknown order status %q", ErrValidation, s)
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusPaid || s == OrderStatusCancelled
}

// Next returns the status that follows s in the workflow. Terminal and
// unknown statuses have no successor.
func (s OrderStatus) Next() (OrderStatus, error) {
	if s.IsTerminal() {
		return "", fmt.Errorf("%w: order is already %s", ErrInvalidTransition, s)
	}
	for i, st := range orderFlow[:len(orderFlow)-1] {
		if st == s {
			return orderFlow[i+1], nil
		}
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, s)
}

// CanTransition reports whether from -> to is a single legal step: the next
// workflow status, or cancellation of a non-terminal order.
func CanTransition(from, to OrderStatus) bool {
	if from.IsTerminal() {
		return false
	}
	if to == OrderStatusCancelled {
		return true
	}
	next, err := from.Next()
	return err == nil && next == to
}

type OrderLine struct {
	MenuItemID string          `json:"menuItemId"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Quantity   int             `json:"quantity"`
	LineTotal  decimal.Decimal `json:"lineTotal"`
}

// NewOrderLine snapshots the name and price of item with quantity 1.
func NewOrderLine(item MenuItem) OrderLine {
	line := OrderLine{
		MenuItemID: item.ID,
		Name:       item.Name,
		UnitPrice:  item.Price,
	}
	line.SetQuantity(1)
	return line
}

func (l *OrderLine) SetQuantity(q int) {
	l.Quantity = q
	l.LineTotal = l.UnitPrice.Mul(decimal.NewFromInt(int64(q)))
}

type Order struct {
	ID              string          `json:"id"`
	Items           []OrderLine     `json:"items"`
	TotalOrderPrice decimal.Decimal `json:"totalOrderPrice"`
	TableNumber     string          `json:"tableNumber"`
	Notes           string          `json:"notes"`
	Status          OrderStatus     `json:"status"`
	Timestamp       time.Time       `json:"timestamp"`
}

// OrderDraft is what the composer hands to the order store.
type OrderDraft struct {
	Items           []OrderLine     `json:"items"`
	TotalOrderPrice decimal.Decimal `json:"totalOrderPrice"`
	TableNumber     string          `json:"tableNumber"`
	Notes           string          `json:"notes"`
}

// SumLines returns the order total of lines.
func SumLines(lines []OrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal)
	}
	return total
}
