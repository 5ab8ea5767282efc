package domain

import "time"

type CatalogImportMessage struct {
	TaskID        string `json:"task_id"`
	SpreadsheetID string `json:"spreadsheet_id"`
}

type OrderStatusEvent struct {
	EventType string      `json:"event_type"`
	OrderID   string      `json:"order_id"`
	OldStatus OrderStatus `json:"old_status"`
	NewStatus OrderStatus `json:"new_status"`
	Timestamp time.Time   `json:"timestamp"`
}

type MenuItemEvent struct {
	EventType  string    `json:"event_type"`
	MenuItemID string    `json:"menu_item_id"`
	Name       string    `json:"name"`
	Timestamp  time.Time `json:"timestamp"`
}

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventMenuItemCreated    = "menu_item.created"
	EventMenuItemUpdated    = "menu_item.updated"
	EventMenuItemDeleted    = "menu_item.deleted"
)
