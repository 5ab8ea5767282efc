package main

import (
	"errors"
	"net/http"

	"github.com/Larafmp/acai-mae-e-filha/internal/domain"
	"github.com/Larafmp/acai-mae-e-filha/internal/service"
)

var (
	ErrInvalidID = errors.New("invalid ID format")
)

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJsonError(w, http.StatusInternalServerError, "the server encountered a problem")
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJsonError(w, http.StatusBadRequest, err.Error())
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("not found error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJsonError(w, http.StatusNotFound, "not found")
}

func (app *application) conflictResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("conflict response", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJsonError(w, http.StatusConflict, err.Error())
}

func (app *application) serviceUnavailableResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("service unavailable", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJsonError(w, http.StatusServiceUnavailable, err.Error())
}

// errorResponse picks the response for an error returned by a service.
func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		app.badRequestResponse(w, r, err)
	case errors.Is(err, domain.ErrNotFound):
		app.notFoundResponse(w, r, err)
	case errors.Is(err, domain.ErrInvalidTransition):
		app.conflictResponse(w, r, err)
	case errors.Is(err, service.ErrImportDisabled):
		app.serviceUnavailableResponse(w, r, err)
	default:
		app.internalServerError(w, r, err)
	}
}
