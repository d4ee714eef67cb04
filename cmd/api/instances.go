// cmd/api/instances.go
// HTTP request handlers for book copies (BookInstance records) and the loan
// workflows built on top of them: a patron's own-loans view, the librarian
// all-loans view, and due-date renewal.
package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/avelichko/locallibrary/internal/data"
	"github.com/avelichko/locallibrary/internal/validator"
)

// createInstanceHandler handles POST /v1/instances (librarian only).
// A copy created without an explicit status starts in maintenance.
func (app *applicationDependencies) createInstanceHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		BookID     *int64              `json:"book_id"`
		Imprint    string              `json:"imprint"`
		DueBack    *data.Date          `json:"due_back"`
		BorrowerID *int64              `json:"borrower_id"`
		Status     data.InstanceStatus `json:"status"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	instance := &data.BookInstance{
		BookID:     input.BookID,
		Imprint:    input.Imprint,
		DueBack:    input.DueBack,
		BorrowerID: input.BorrowerID,
		Status:     input.Status,
	}

	v := validator.New()
	// An omitted status is allowed on creation; it defaults to maintenance
	// inside Insert. Validate against the defaulted value.
	if instance.Status == "" {
		instance.Status = data.StatusMaintenance
	}
	if data.ValidateBookInstance(v, instance); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	err = app.models.Instances.Insert(instance)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrInvalidReference):
			v.AddError("instance", "referenced book or borrower does not exist")
			app.failedValidationResponse(w, r, v.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"instance": instance}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showInstanceHandler handles GET /v1/instances/:id.
// Responds 404 if no copy with that UUID exists.
func (app *applicationDependencies) showInstanceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readUUIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	instance, err := app.models.Instances.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"instance": instance}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateInstanceHandler handles PATCH /v1/instances/:id (librarian only).
// This is how a librarian moves a copy through its lifecycle: lending it out
// (status on-loan with borrower and due date) and marking it returned
// (status available, which clears the borrower and due date).
func (app *applicationDependencies) updateInstanceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readUUIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	instance, err := app.models.Instances.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	var input struct {
		BookID     *int64               `json:"book_id"`
		Imprint    *string              `json:"imprint"`
		DueBack    *data.Date           `json:"due_back"`
		BorrowerID *int64               `json:"borrower_id"`
		Status     *data.InstanceStatus `json:"status"`
	}

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if input.BookID != nil {
		instance.BookID = input.BookID
	}
	if input.Imprint != nil {
		instance.Imprint = *input.Imprint
	}
	if input.DueBack != nil {
		instance.DueBack = input.DueBack
	}
	if input.BorrowerID != nil {
		instance.BorrowerID = input.BorrowerID
	}
	if input.Status != nil {
		instance.Status = *input.Status
	}

	// Leaving the on-loan status clears the loan bookkeeping: a returned or
	// shelved copy has no borrower and no due date.
	if instance.Status != data.StatusOnLoan {
		instance.DueBack = nil
		instance.BorrowerID = nil
	}

	v := validator.New()
	if data.ValidateBookInstance(v, instance); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	err = app.models.Instances.Update(instance)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, data.ErrInvalidReference):
			v.AddError("instance", "referenced book or borrower does not exist")
			app.failedValidationResponse(w, r, v.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"instance": instance}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deleteInstanceHandler handles DELETE /v1/instances/:id (librarian only).
// Responds 404 if no copy with that UUID exists.
func (app *applicationDependencies) deleteInstanceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readUUIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.models.Instances.Delete(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "instance successfully deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// listMyBooksHandler handles GET /v1/mybooks (authenticated users).
// It lists the copies currently on loan to the requesting user, ordered by
// due-back date. The filter is always the requester's own identity; there is
// no way to view another user's loans through this endpoint.
func (app *applicationDependencies) listMyBooksHandler(w http.ResponseWriter, r *http.Request) {
	user := app.contextGetUser(r)

	instances, err := app.models.Instances.OnLoanToUser(user.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"instances": instances}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// listLoansHandler handles GET /v1/loans (librarian only).
// It lists every copy currently on loan to any borrower, ordered by due-back date.
func (app *applicationDependencies) listLoansHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	var filters data.Filters
	filters.Page = app.readInt(qs, "page", 1)
	filters.PageSize = app.readInt(qs, "page_size", 20)
	// The all-loans listing is always ordered by due-back date.
	filters.Sort = "due_back"
	filters.SortSafeList = []string{"due_back"}

	v := validator.New()
	if data.ValidateFilters(v, filters); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	instances, metadata, err := app.models.Instances.AllOnLoan(filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"instances": instances, "metadata": metadata}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showRenewalHandler handles GET /v1/instances/:id/renew (librarian only).
// It returns the copy together with the proposed default renewal date
// (three weeks from today), mirroring a pre-filled renewal form.
func (app *applicationDependencies) showRenewalHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readUUIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	instance, err := app.models.Instances.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	proposed := data.ProposedRenewalDate(data.DateOf(time.Now()))

	err = app.writeJSON(w, http.StatusOK, envelope{
		"instance":          instance,
		"proposed_due_back": proposed,
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// renewInstanceHandler handles PUT /v1/instances/:id/renew (librarian only).
// It validates the submitted due-back date against the renewal window
// (not in the past, at most four weeks ahead) and persists it.
func (app *applicationDependencies) renewInstanceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readUUIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	instance, err := app.models.Instances.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	var input struct {
		DueBack data.Date `json:"due_back"`
	}

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// The same validation function serves every entry point that accepts a
	// renewal date, so the rules cannot drift apart.
	v := validator.New()
	v.Check(!input.DueBack.IsZero(), "due_back", "must be provided")
	if v.Valid() {
		data.ValidateRenewalDate(v, data.DateOf(time.Now()), input.DueBack)
	}
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	instance.DueBack = &input.DueBack
	err = app.models.Instances.Update(instance)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"instance": instance}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
