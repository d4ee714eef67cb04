// cmd/api/routes.go
package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// routes registers all HTTP endpoints and returns the configured router wrapped
// in the recoverPanic, rateLimit, and authenticate middlewares (outermost first).
//
// Access tiers:
//
//	public:        catalog reads (dashboard, books, authors, genres,
//	               languages, individual copies) and account endpoints
//	authenticated: /v1/mybooks (any signed-in user, own loans only)
//	librarian:     every catalog mutation, the all-loans listing, and
//	               renewals; gated by the can-mark-returned permission
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	// Override the default httprouter error handlers to return JSON responses.
	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	librarian := app.requireLibrarian

	// Dashboard counts
	router.HandlerFunc(http.MethodGet, "/v1/dashboard", app.dashboardHandler)

	// Book CRUD routes (reads public, mutations librarian-gated)
	router.HandlerFunc(http.MethodGet, "/v1/books", app.listBooksHandler)
	router.HandlerFunc(http.MethodPost, "/v1/books", librarian(app.createBookHandler))
	router.HandlerFunc(http.MethodGet, "/v1/books/:slug", app.showBookHandler)
	router.HandlerFunc(http.MethodPatch, "/v1/books/:slug", librarian(app.updateBookHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/books/:slug", librarian(app.deleteBookHandler))

	// Author CRUD routes
	router.HandlerFunc(http.MethodGet, "/v1/authors", app.listAuthorsHandler)
	router.HandlerFunc(http.MethodPost, "/v1/authors", librarian(app.createAuthorHandler))
	router.HandlerFunc(http.MethodGet, "/v1/authors/:id", app.showAuthorHandler)
	router.HandlerFunc(http.MethodPatch, "/v1/authors/:id", librarian(app.updateAuthorHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/authors/:id", librarian(app.deleteAuthorHandler))

	// Genre and language routes
	router.HandlerFunc(http.MethodGet, "/v1/genres", app.listGenresHandler)
	router.HandlerFunc(http.MethodPost, "/v1/genres", librarian(app.createGenreHandler))
	router.HandlerFunc(http.MethodGet, "/v1/languages", app.listLanguagesHandler)
	router.HandlerFunc(http.MethodPost, "/v1/languages", librarian(app.createLanguageHandler))

	// Book copy routes
	router.HandlerFunc(http.MethodPost, "/v1/instances", librarian(app.createInstanceHandler))
	router.HandlerFunc(http.MethodGet, "/v1/instances/:id", app.showInstanceHandler)
	router.HandlerFunc(http.MethodPatch, "/v1/instances/:id", librarian(app.updateInstanceHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/instances/:id", librarian(app.deleteInstanceHandler))

	// Loan views and renewal
	router.HandlerFunc(http.MethodGet, "/v1/mybooks", app.requireAuthenticated(app.listMyBooksHandler))
	router.HandlerFunc(http.MethodGet, "/v1/loans", librarian(app.listLoansHandler))
	router.HandlerFunc(http.MethodGet, "/v1/instances/:id/renew", librarian(app.showRenewalHandler))
	router.HandlerFunc(http.MethodPut, "/v1/instances/:id/renew", librarian(app.renewInstanceHandler))

	// Account routes
	router.HandlerFunc(http.MethodPost, "/v1/users", app.registerUserHandler)
	router.HandlerFunc(http.MethodPost, "/v1/tokens/authentication", app.createAuthenticationTokenHandler)

	// Wrap with middleware: recoverPanic is outermost so it catches panics
	// from the other middlewares and the router alike.
	return app.recoverPanic(app.rateLimit(app.authenticate(router)))
}
