package main

import (
	"net/http"
	"strings"

	"github.com/Larafmp/acai-mae-e-filha/internal/domain"
	"github.com/go-chi/chi"
)

// MenuItemRequest carries the menu item form. Price is text so both "35,50"
// and "35.50" are accepted.
type MenuItemRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Description  string `json:"description" validate:"max=500"`
	Price        string `json:"price" validate:"required"`
	Category     string `json:"category" validate:"omitempty,oneof=P M G GG"`
	IsSpecial    bool   `json:"is_special"`
	Availability string `json:"availability" validate:"omitempty,oneof=Available Unavailable"`
}

func (req MenuItemRequest) draft() (domain.MenuItemDraft, error) {
	price, err := domain.ParsePrice(req.Price)
	if err != nil {
		return domain.MenuItemDraft{}, err
	}

	draft := domain.MenuItemDraft{
		Name:         strings.TrimSpace(req.Name),
		Description:  strings.TrimSpace(req.Description),
		Price:        price,
		Category:     domain.Category(req.Category),
		IsSpecial:    req.IsSpecial,
		Availability: domain.Availability(req.Availability),
	}

	if err := draft.Validate(); err != nil {
		return domain.MenuItemDraft{}, err
	}

	return draft, nil
}

func (app *application) readMenuItemRequest(w http.ResponseWriter, r *http.Request) (domain.MenuItemDraft, bool) {
	var req MenuItemRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return domain.MenuItemDraft{}, false
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return domain.MenuItemDraft{}, false
	}

	draft, err := req.draft()
	if err != nil {
		app.badRequestResponse(w, r, err)
		return domain.MenuItemDraft{}, false
	}

	return draft, true
}

// listMenuItemsHandler godoc
//
//	@Summary		List menu items
//	@Description	Lists the catalog sorted by name; available=true keeps only items that can be ordered
//	@Tags			menu
//	@Produce		json
//	@Param			available	query		bool	false	"Only available items"
//	@Success		200			{array}		domain.MenuItem
//	@Router			/menu-items [get]
func (app *application) listMenuItemsHandler(w http.ResponseWriter, r *http.Request) {
	var items []domain.MenuItem
	if r.URL.Query().Get("available") == "true" {
		items = app.catalogService.ListAvailable(r.Context())
	} else {
		items = app.catalogService.ListSorted(r.Context())
	}

	if err := app.jsonRespone(w, http.StatusOK, items); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createMenuItemHandler godoc
//
//	@Summary		Create menu item
//	@Tags			menu
//	@Accept			json
//	@Produce		json
//	@Param			request	body		MenuItemRequest	true	"Menu item"
//	@Success		201		{object}	domain.MenuItem
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/menu-items [post]
func (app *application) createMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	draft, ok := app.readMenuItemRequest(w, r)
	if !ok {
		return
	}

	item, err := app.catalogService.AddItem(r.Context(), draft)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, item); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getMenuItemHandler godoc
//
//	@Summary		Get menu item
//	@Tags			menu
//	@Produce		json
//	@Param			item_id	path		string	true	"Menu item ID"
//	@Success		200		{object}	domain.MenuItem
//	@Failure		404		{object}	map[string]string
//	@Router			/menu-items/{item_id} [get]
func (app *application) getMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	item, err := app.catalogService.GetItem(r.Context(), chi.URLParam(r, "item_id"))
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, item); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateMenuItemHandler godoc
//
//	@Summary		Replace menu item
//	@Description	Replaces every field of an existing menu item
//	@Tags			menu
//	@Accept			json
//	@Produce		json
//	@Param			item_id	path		string			true	"Menu item ID"
//	@Param			request	body		MenuItemRequest	true	"Menu item"
//	@Success		200		{object}	domain.MenuItem
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Router			/menu-items/{item_id} [put]
func (app *application) updateMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	draft, ok := app.readMenuItemRequest(w, r)
	if !ok {
		return
	}

	item := draft.WithID(chi.URLParam(r, "item_id"))
	if err := app.catalogService.UpdateItem(r.Context(), item); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, item); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteMenuItemHandler godoc
//
//	@Summary		Delete menu item
//	@Description	Deleting an unknown id succeeds
//	@Tags			menu
//	@Param			item_id	path	string	true	"Menu item ID"
//	@Success		204
//	@Router			/menu-items/{item_id} [delete]
func (app *application) deleteMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.catalogService.DeleteItem(r.Context(), chi.URLParam(r, "item_id")); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
