// cmd/api/dashboard.go
// The dashboard endpoint returns the aggregate counts shown on the catalog's
// landing page: totals for each entity, the number of copies available right
// now, and two substring-probe counts. The probes default to the classic
// "1"-in-title and "roman"-in-genre searches but can be overridden with the
// title_contains and genre_contains query parameters.
package main

import (
	"net/http"

	"github.com/avelichko/locallibrary/internal/data"
)

// dashboardHandler handles GET /v1/dashboard.
func (app *applicationDependencies) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	titleProbe := app.readString(qs, "title_contains", "1")
	genreProbe := app.readString(qs, "genre_contains", "roman")

	numBooks, err := app.models.Books.Count()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	numInstances, err := app.models.Instances.Count()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	numAvailable, err := app.models.Instances.CountByStatus(data.StatusAvailable)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	numAuthors, err := app.models.Authors.Count()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	numTitleMatches, err := app.models.Books.CountTitleContains(titleProbe)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	numGenreMatches, err := app.models.Genres.CountNameContains(genreProbe)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	dashboard := envelope{
		"num_books":                numBooks,
		"num_instances":            numInstances,
		"num_instances_available":  numAvailable,
		"num_authors":              numAuthors,
		"title_contains":           titleProbe,
		"num_books_title_contains": numTitleMatches,
		"genre_contains":           genreProbe,
		"num_genres_name_contains": numGenreMatches,
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"dashboard": dashboard}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
