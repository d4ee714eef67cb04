// cmd/api/languages.go
// HTTP request handlers for the languages resource.
package main

import (
	"net/http"

	"github.com/avelichko/locallibrary/internal/data"
	"github.com/avelichko/locallibrary/internal/validator"
)

// listLanguagesHandler handles GET /v1/languages.
func (app *applicationDependencies) listLanguagesHandler(w http.ResponseWriter, r *http.Request) {
	languages, err := app.models.Languages.GetAll()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"languages": languages}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// createLanguageHandler handles POST /v1/languages (librarian only).
func (app *applicationDependencies) createLanguageHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name string `json:"name"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	language := &data.Language{Name: input.Name}

	v := validator.New()
	if data.ValidateLanguage(v, language); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	err = app.models.Languages.Insert(language)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"language": language}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
