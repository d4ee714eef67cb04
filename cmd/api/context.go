// cmd/api/context.go
// Request-scoped values. The only thing the application stores in a request
// context is the authenticated user, set by the authenticate middleware.
package main

import (
	"context"
	"net/http"

	"github.com/avelichko/locallibrary/internal/data"
)

// contextKey is a private type so our context keys can never collide with
// keys set by other packages.
type contextKey string

// userContextKey is the key under which the authenticated user is stored.
const userContextKey = contextKey("user")

// contextSetUser returns a copy of the request with the user stored in its context.
func (app *applicationDependencies) contextSetUser(r *http.Request, user *data.User) *http.Request {
	ctx := context.WithValue(r.Context(), userContextKey, user)
	return r.WithContext(ctx)
}

// contextGetUser retrieves the user from the request context. It is only
// called on requests that have passed through authenticate, so a missing
// value is a programmer error and panics.
func (app *applicationDependencies) contextGetUser(r *http.Request) *data.User {
	user, ok := r.Context().Value(userContextKey).(*data.User)
	if !ok {
		panic("missing user value in request context")
	}
	return user
}
