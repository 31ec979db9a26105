package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// routes builds the router and wraps it, outermost first, in
// recoverPanic, requestID, logRequest and rateLimit.
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/healthcheck", app.healthcheckHandler)

	router.HandlerFunc(http.MethodPost, "/authors/", app.createAuthorHandler)
	router.HandlerFunc(http.MethodGet, "/authors/", app.listAuthorsHandler)
	router.HandlerFunc(http.MethodGet, "/authors/:id", app.showAuthorHandler)
	router.HandlerFunc(http.MethodPut, "/authors/:id", app.updateAuthorHandler)
	router.HandlerFunc(http.MethodDelete, "/authors/:id", app.deleteAuthorHandler)

	router.HandlerFunc(http.MethodPost, "/publishers/", app.createPublisherHandler)
	router.HandlerFunc(http.MethodGet, "/publishers/", app.listPublishersHandler)
	router.HandlerFunc(http.MethodGet, "/publishers/:id", app.showPublisherHandler)
	router.HandlerFunc(http.MethodPut, "/publishers/:id", app.updatePublisherHandler)
	router.HandlerFunc(http.MethodDelete, "/publishers/:id", app.deletePublisherHandler)

	router.HandlerFunc(http.MethodPost, "/books/", app.createBookHandler)
	router.HandlerFunc(http.MethodGet, "/books/", app.listBooksHandler)
	router.HandlerFunc(http.MethodGet, "/books/:id", app.showBookHandler)
	router.HandlerFunc(http.MethodPut, "/books/:id", app.updateBookHandler)
	router.HandlerFunc(http.MethodDelete, "/books/:id", app.deleteBookHandler)

	return app.recoverPanic(app.requestID(app.logRequest(app.rateLimit(router))))
}
