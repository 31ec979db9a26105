package main

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aoideee/publishing-api/internal/data"
)

func (app *applicationDependencies) logError(r *http.Request, err error) {
	app.logger.Error(err.Error(),
		slog.String("request_method", r.Method),
		slog.String("request_url", r.URL.String()),
		slog.String("request_id", requestIDFromContext(r.Context())),
	)
}

// errorResponse writes {"error": message}. message is a string or, for
// validation failures, a field map.
func (app *applicationDependencies) errorResponse(w http.ResponseWriter, r *http.Request, status int, message any) {
	app.writeError(w, r, status, envelope{"error": message})
}

func (app *applicationDependencies) writeError(w http.ResponseWriter, r *http.Request, status int, body envelope) {
	if err := app.writeJSON(w, status, body, nil); err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// serverErrorResponse logs err; the client only sees a generic message.
func (app *applicationDependencies) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	app.errorResponse(w, r, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
}

func (app *applicationDependencies) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, "the requested resource could not be found")
}

// recordNotFoundResponse names the missing entity and the id that was looked up.
func (app *applicationDependencies) recordNotFoundResponse(w http.ResponseWriter, r *http.Request, err *data.NotFoundError) {
	app.writeError(w, r, http.StatusNotFound, envelope{"error": err.Error(), "id": err.ID})
}

func (app *applicationDependencies) duplicateResponse(w http.ResponseWriter, r *http.Request, err *data.DuplicateError) {
	app.errorResponse(w, r, http.StatusConflict, err.Error())
}

func (app *applicationDependencies) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := "the " + r.Method + " method is not supported for this resource"
	app.errorResponse(w, r, http.StatusMethodNotAllowed, message)
}

func (app *applicationDependencies) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *applicationDependencies) failedValidationResponse(w http.ResponseWriter, r *http.Request, errors map[string]string) {
	app.errorResponse(w, r, http.StatusUnprocessableEntity, errors)
}

func (app *applicationDependencies) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusTooManyRequests, "rate limit exceeded")
}

// modelErrorResponse maps an error from internal/data onto its status code.
func (app *applicationDependencies) modelErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var (
		notFound  *data.NotFoundError
		duplicate *data.DuplicateError
	)

	switch {
	case errors.As(err, &notFound):
		app.recordNotFoundResponse(w, r, notFound)
	case errors.As(err, &duplicate):
		app.duplicateResponse(w, r, duplicate)
	default:
		app.serverErrorResponse(w, r, err)
	}
}
