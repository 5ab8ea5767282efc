package main

import (
	"net/http"

	"github.com/go-chi/chi"
)

type CreateImportTaskRequest struct {
	SpreadsheetID string `json:"spreadsheet_id" validate:"required"`
}

// createImportTaskHandler godoc
//
//	@Summary		Import catalog
//	@Description	Queues an import of menu items from a Google Sheets spreadsheet
//	@Tags			catalog
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateImportTaskRequest	true	"Import request"
//	@Success		201		{object}	domain.ImportTask
//	@Failure		400		{object}	map[string]string
//	@Failure		503		{object}	map[string]string
//	@Router			/catalog/imports [post]
func (app *application) createImportTaskHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateImportTaskRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	task, err := app.importService.CreateImportTask(r.Context(), req.SpreadsheetID)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, task); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getImportTaskHandler godoc
//
//	@Summary		Get catalog import
//	@Tags			catalog
//	@Produce		json
//	@Param			task_id	path		string	true	"Task ID"
//	@Success		200		{object}	domain.ImportTask
//	@Failure		404		{object}	map[string]string
//	@Router			/catalog/imports/{task_id} [get]
func (app *application) getImportTaskHandler(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "task_id")
	if taskID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	task, err := app.importService.GetTask(r.Context(), taskID)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, task); err != nil {
		app.internalServerError(w, r, err)
	}
}
