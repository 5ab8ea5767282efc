package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Larafmp/acai-mae-e-filha/internal/composer"
	"github.com/Larafmp/acai-mae-e-filha/internal/domain"
	"github.com/go-chi/chi"
)

const defaultAuditLimit = 50

type OrderItemRequest struct {
	MenuItemID string `json:"menu_item_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required,min=1,max=99"`
}

type CreateOrderRequest struct {
	Items       []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	TableNumber string             `json:"table_number" validate:"max=20"`
	Notes       string             `json:"notes" validate:"max=500"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Open InPreparation Ready Paid Cancelled"`
}

// listOrdersHandler godoc
//
//	@Summary		List orders
//	@Description	Lists orders newest first, optionally filtered by status
//	@Tags			orders
//	@Produce		json
//	@Param			status	query		string	false	"Open, InPreparation, Ready, Paid, Cancelled or All"
//	@Success		200		{array}		domain.Order
//	@Failure		400		{object}	map[string]string
//	@Router			/orders [get]
func (app *application) listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("status")
	if filter == "" {
		filter = domain.StatusFilterAll
	}

	orders, err := app.orderService.ListByStatus(r.Context(), filter)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, orders); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createOrderHandler godoc
//
//	@Summary		Record order
//	@Description	Builds an order from available catalog items and records it as Open
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateOrderRequest	true	"Order"
//	@Success		201		{object}	domain.Order
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/orders [post]
func (app *application) createOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	c := composer.New(app.catalogService.ListItems(r.Context()))
	for _, item := range req.Items {
		if err := c.AddByID(item.MenuItemID); err != nil {
			// an unknown menu item is a bad reference in the request body
			if errors.Is(err, domain.ErrNotFound) {
				err = fmt.Errorf("%w: %w", domain.ErrValidation, err)
			}
			app.errorResponse(w, r, err)
			return
		}
		if err := c.ChangeQuantity(item.MenuItemID, item.Quantity-1); err != nil {
			app.internalServerError(w, r, err)
			return
		}
	}

	order, err := app.orderService.RecordOrder(r.Context(), c.ToOrderDraft(req.TableNumber, req.Notes))
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getOrderHandler godoc
//
//	@Summary		Get order
//	@Tags			orders
//	@Produce		json
//	@Param			order_id	path		string	true	"Order ID"
//	@Success		200			{object}	domain.Order
//	@Failure		404			{object}	map[string]string
//	@Router			/orders/{order_id} [get]
func (app *application) getOrderHandler(w http.ResponseWriter, r *http.Request) {
	order, err := app.orderService.GetOrder(r.Context(), chi.URLParam(r, "order_id"))
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

// advanceOrderHandler godoc
//
//	@Summary		Advance order
//	@Description	Moves the order to the next status: Open, InPreparation, Ready, Paid
//	@Tags			orders
//	@Produce		json
//	@Param			order_id	path		string	true	"Order ID"
//	@Success		200			{object}	domain.Order
//	@Failure		404			{object}	map[string]string
//	@Failure		409			{object}	map[string]string
//	@Router			/orders/{order_id}/advance [post]
func (app *application) advanceOrderHandler(w http.ResponseWriter, r *http.Request) {
	order, err := app.orderService.Advance(r.Context(), chi.URLParam(r, "order_id"))
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

// cancelOrderHandler godoc
//
//	@Summary		Cancel order
//	@Tags			orders
//	@Produce		json
//	@Param			order_id	path		string	true	"Order ID"
//	@Success		200			{object}	domain.Order
//	@Failure		404			{object}	map[string]string
//	@Failure		409			{object}	map[string]string
//	@Router			/orders/{order_id}/cancel [post]
func (app *application) cancelOrderHandler(w http.ResponseWriter, r *http.Request) {
	order, err := app.orderService.Cancel(r.Context(), chi.URLParam(r, "order_id"))
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateOrderStatusHandler godoc
//
//	@Summary		Update order status
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			order_id	path		string						true	"Order ID"
//	@Param			request		body		UpdateOrderStatusRequest	true	"Status update request"
//	@Success		200			{object}	domain.Order
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Failure		409			{object}	map[string]string
//	@Router			/orders/{order_id}/status [patch]
func (app *application) updateOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	var req UpdateOrderStatusRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	order, err := app.orderService.SetStatus(r.Context(), chi.URLParam(r, "order_id"), domain.OrderStatus(req.Status))
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getOrderAuditHandler godoc
//
//	@Summary		Get order status history
//	@Tags			orders
//	@Produce		json
//	@Param			order_id	path		string	true	"Order ID"
//	@Param			limit		query		int		false	"Maximum records (default 50)"
//	@Success		200			{array}		domain.OrderStatusAudit
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Router			/orders/{order_id}/audit [get]
func (app *application) getOrderAuditHandler(w http.ResponseWriter, r *http.Request) {
	limit := defaultAuditLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			app.badRequestResponse(w, r, fmt.Errorf("invalid limit %q", raw))
			return
		}
		limit = n
	}

	order, err := app.orderService.GetOrder(r.Context(), chi.URLParam(r, "order_id"))
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	audits, err := app.orderService.GetOrderAudit(r.Context(), order.ID, limit)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, audits); err != nil {
		app.internalServerError(w, r, err)
	}
}
