package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestApp returns an application with a discard logger and no database.
// Only handlers and helpers that never touch the models can be exercised this way.
func newTestApp() *applicationDependencies {
	return &applicationDependencies{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// withParams attaches httprouter URL parameters to a request's context the
// same way the router does before invoking a handler.
func withParams(r *http.Request, params httprouter.Params) *http.Request {
	ctx := context.WithValue(r.Context(), httprouter.ParamsKey, params)
	return r.WithContext(ctx)
}

func TestReadIDParam(t *testing.T) {
	app := newTestApp()

	testCases := []struct {
		name    string
		value   string
		want    int64
		wantErr bool
	}{
		{name: "valid id", value: "42", want: 42},
		{name: "zero is rejected", value: "0", wantErr: true},
		{name: "negative is rejected", value: "-3", wantErr: true},
		{name: "non-numeric is rejected", value: "abc", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/v1/authors/"+tc.value, nil)
			r = withParams(r, httprouter.Params{{Key: "id", Value: tc.value}})

			id, err := app.readIDParam(r)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.want, id)
			}
		})
	}
}

func TestReadUUIDParam(t *testing.T) {
	app := newTestApp()

	r := httptest.NewRequest(http.MethodGet, "/v1/instances/x", nil)
	r = withParams(r, httprouter.Params{{Key: "id", Value: "0b5fd791-9d5c-4b28-92df-0d454e4894c1"}})
	id, err := app.readUUIDParam(r)
	require.NoError(t, err)
	assert.Equal(t, "0b5fd791-9d5c-4b28-92df-0d454e4894c1", id.String())

	r = httptest.NewRequest(http.MethodGet, "/v1/instances/x", nil)
	r = withParams(r, httprouter.Params{{Key: "id", Value: "not-a-uuid"}})
	_, err = app.readUUIDParam(r)
	assert.Error(t, err)
}

func TestReadStringAndInt(t *testing.T) {
	app := newTestApp()
	qs := url.Values{}
	qs.Set("title", "dune")
	qs.Set("page", "3")
	qs.Set("page_size", "oops")

	assert.Equal(t, "dune", app.readString(qs, "title", ""))
	assert.Equal(t, "fallback", app.readString(qs, "missing", "fallback"))
	assert.Equal(t, 3, app.readInt(qs, "page", 1))
	assert.Equal(t, 20, app.readInt(qs, "page_size", 20))
	assert.Equal(t, 1, app.readInt(qs, "missing", 1))
}

func TestWriteJSON(t *testing.T) {
	app := newTestApp()
	w := httptest.NewRecorder()

	err := app.writeJSON(w, http.StatusCreated, envelope{"message": "created"}, http.Header{"Location": []string{"/v1/books/dune"}})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "/v1/books/dune", w.Header().Get("Location"))
	assert.Contains(t, w.Body.String(), `"message": "created"`)
}

func TestReadJSON(t *testing.T) {
	app := newTestApp()

	type input struct {
		Title string `json:"title"`
	}

	testCases := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid body", body: `{"title": "Dune"}`},
		{name: "unknown field rejected", body: `{"title": "Dune", "extra": 1}`, wantErr: true},
		{name: "trailing value rejected", body: `{"title": "Dune"}{"title": "Emma"}`, wantErr: true},
		{name: "malformed json rejected", body: `{"title":`, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/v1/books", strings.NewReader(tc.body))

			var dst input
			err := app.readJSON(w, r, &dst)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "Dune", dst.Title)
			}
		})
	}
}

func TestErrorResponses(t *testing.T) {
	app := newTestApp()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/books/missing", nil)
	app.notFoundResponse(w, r)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "could not be found")

	w = httptest.NewRecorder()
	app.notPermittedResponse(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	app.authenticationRequiredResponse(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	app.failedValidationResponse(w, r, map[string]string{"due_back": "invalid date - renewal in past"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "renewal in past")
}
