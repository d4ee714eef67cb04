// cmd/api/genres.go
// HTTP request handlers for the genres resource. Genres only need list and
// create endpoints; they are attached to books through the books resource.
package main

import (
	"net/http"

	"github.com/avelichko/locallibrary/internal/data"
	"github.com/avelichko/locallibrary/internal/validator"
)

// listGenresHandler handles GET /v1/genres.
func (app *applicationDependencies) listGenresHandler(w http.ResponseWriter, r *http.Request) {
	genres, err := app.models.Genres.GetAll()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"genres": genres}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// createGenreHandler handles POST /v1/genres (librarian only).
func (app *applicationDependencies) createGenreHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name string `json:"name"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	genre := &data.Genre{Name: input.Name}

	v := validator.New()
	if data.ValidateGenre(v, genre); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	err = app.models.Genres.Insert(genre)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"genre": genre}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
