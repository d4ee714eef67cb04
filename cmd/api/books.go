// cmd/api/books.go
// This file contains the HTTP request handlers for the books resource.
// Each handler is a method on *applicationDependencies so it has access
// to the logger and database models. Books are addressed by slug, not id.
package main

import (
	"errors"
	"net/http"

	"github.com/avelichko/locallibrary/internal/data"
	"github.com/avelichko/locallibrary/internal/validator"
)

// createBookHandler handles POST /v1/books (librarian only).
// It reads a JSON body containing the new book's details, inserts a record
// into the database, and responds with the created book (including its
// database-assigned ID and generated slug) and a 201 Created status.
func (app *applicationDependencies) createBookHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Title      string  `json:"title"`
		AuthorID   *int64  `json:"author_id"`
		Summary    string  `json:"summary"`
		ISBN       string  `json:"isbn"`
		GenreIDs   []int64 `json:"genre_ids"`
		LanguageID *int64  `json:"language_id"`
	}

	// Decode the incoming JSON body using the safe readJSON helper.
	// readJSON enforces a 1MB limit, rejects unknown fields, and ensures a single value.
	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// Map the input fields onto a new Book struct. The slug is left empty so
	// Insert derives a unique one from the title.
	book := &data.Book{
		Title:      input.Title,
		AuthorID:   input.AuthorID,
		Summary:    input.Summary,
		ISBN:       input.ISBN,
		GenreIDs:   input.GenreIDs,
		LanguageID: input.LanguageID,
	}

	v := validator.New()
	if data.ValidateBook(v, book); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	// Persist the book. Uniqueness conflicts come back as sentinel errors and
	// are surfaced as field-level validation failures, leaving the store unchanged.
	err = app.models.Books.Insert(book)
	if err != nil {
		app.handleBookWriteError(w, r, v, err)
		return
	}

	// Respond with the fully-populated book and a 201 Created status.
	err = app.writeJSON(w, http.StatusCreated, envelope{"book": book}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// handleBookWriteError maps the errors a book insert/update can produce onto
// the right HTTP responses.
func (app *applicationDependencies) handleBookWriteError(w http.ResponseWriter, r *http.Request, v *validator.Validator, err error) {
	switch {
	case errors.Is(err, data.ErrDuplicateISBN):
		v.AddError("isbn", "a book with this ISBN already exists")
		app.failedValidationResponse(w, r, v.Errors)
	case errors.Is(err, data.ErrDuplicateSlug), errors.Is(err, data.ErrSlugGeneration):
		v.AddError("slug", "a unique slug could not be assigned, try a different title")
		app.failedValidationResponse(w, r, v.Errors)
	case errors.Is(err, data.ErrInvalidReference):
		v.AddError("book", "referenced author, language or genre does not exist")
		app.failedValidationResponse(w, r, v.Errors)
	case errors.Is(err, data.ErrRecordNotFound):
		app.notFoundResponse(w, r)
	default:
		app.serverErrorResponse(w, r, err)
	}
}

// showBookHandler handles GET /v1/books/:slug.
// The response includes the count of currently available copies.
// Responds 404 if no book with that slug exists.
func (app *applicationDependencies) showBookHandler(w http.ResponseWriter, r *http.Request) {
	slug, err := app.readSlugParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	book, err := app.models.Books.GetBySlug(slug)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	// Attach the availability display helper's count.
	available, err := app.models.Instances.AvailableCount(book.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	book.Available = &available

	err = app.writeJSON(w, http.StatusOK, envelope{"book": book}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// listBooksHandler handles GET /v1/books.
// Supports ?title= substring filtering plus the standard page, page_size and
// sort query parameters.
func (app *applicationDependencies) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	title := app.readString(qs, "title", "")

	var filters data.Filters
	filters.Page = app.readInt(qs, "page", 1)
	filters.PageSize = app.readInt(qs, "page_size", 20)
	filters.Sort = app.readString(qs, "sort", "title")
	filters.SortSafeList = []string{"title", "-title", "id", "-id", "created_at", "-created_at"}

	v := validator.New()
	if data.ValidateFilters(v, filters); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	books, metadata, err := app.models.Books.GetAll(title, filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"books": books, "metadata": metadata}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateBookHandler handles PATCH /v1/books/:slug (librarian only).
// It reads a partial JSON body, finds the existing book, applies only the
// provided fields, and saves the changes. The slug itself may be changed
// explicitly; it is never regenerated on update.
// Responds 404 if the book does not exist.
func (app *applicationDependencies) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	slug, err := app.readSlugParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	book, err := app.models.Books.GetBySlug(slug)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	// Every field is a pointer; nil means "not provided, leave as-is".
	// The author and language references cannot be cleared through PATCH;
	// they become null when the referenced record is deleted.
	var input struct {
		Title      *string  `json:"title"`
		AuthorID   *int64   `json:"author_id"`
		Summary    *string  `json:"summary"`
		ISBN       *string  `json:"isbn"`
		GenreIDs   *[]int64 `json:"genre_ids"`
		LanguageID *int64   `json:"language_id"`
		Slug       *string  `json:"slug"`
	}

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if input.Title != nil {
		book.Title = *input.Title
	}
	if input.AuthorID != nil {
		book.AuthorID = input.AuthorID
	}
	if input.Summary != nil {
		book.Summary = *input.Summary
	}
	if input.ISBN != nil {
		book.ISBN = *input.ISBN
	}
	if input.GenreIDs != nil {
		book.GenreIDs = *input.GenreIDs
	}
	if input.LanguageID != nil {
		book.LanguageID = input.LanguageID
	}
	if input.Slug != nil {
		book.Slug = *input.Slug
	}

	v := validator.New()
	data.ValidateBook(v, book)
	v.Check(book.Slug != "", "slug", "must not be empty")
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	err = app.models.Books.Update(book)
	if err != nil {
		app.handleBookWriteError(w, r, v, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"book": book}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deleteBookHandler handles DELETE /v1/books/:slug (librarian only).
// Copies referencing the book are kept; their book reference becomes null.
// Responds 404 if no book with that slug exists.
func (app *applicationDependencies) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	slug, err := app.readSlugParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.models.Books.Delete(slug)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "book successfully deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
