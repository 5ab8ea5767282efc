package domain

import "time"

type OrderStatusAudit struct {
	ID        string      `json:"id"`
	OrderID   string      `json:"orderId"`
	EventType string      `json:"eventType"`
	OldStatus OrderStatus `json:"oldStatus"`
	NewStatus OrderStatus `json:"newStatus"`
	Timestamp time.Time   `json:"timestamp"`
}
