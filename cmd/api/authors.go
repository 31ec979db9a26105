package main

import (
	"fmt"
	"net/http"

	"github.com/aoideee/publishing-api/internal/data"
	"github.com/aoideee/publishing-api/internal/validator"
)

// createAuthorHandler handles POST /authors/.
func (app *applicationDependencies) createAuthorHandler(w http.ResponseWriter, r *http.Request) {
	var input data.AuthorInput

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	if data.ValidateAuthor(v, &input); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	author, err := app.models.Authors.Insert(r.Context(), &input)
	if err != nil {
		app.modelErrorResponse(w, r, err)
		return
	}

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/authors/%d", author.ID))

	err = app.writeJSON(w, http.StatusCreated, envelope{"author": author}, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// listAuthorsHandler handles GET /authors/?skip=&limit=.
func (app *applicationDependencies) listAuthorsHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	v := validator.New()

	filters := data.Filters{
		Skip:  app.readInt(qs, "skip", 0, v),
		Limit: app.readInt(qs, "limit", data.DefaultLimit, v),
	}

	if data.ValidateFilters(v, filters); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	authors, err := app.models.Authors.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"authors": authors}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showAuthorHandler handles GET /authors/:id.
func (app *applicationDependencies) showAuthorHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	author, err := app.models.Authors.Get(r.Context(), id)
	if err != nil {
		app.modelErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"author": author}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateAuthorHandler handles PUT /authors/:id. Every field is replaced;
// omitted optional fields become null.
func (app *applicationDependencies) updateAuthorHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	var input data.AuthorInput

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	if data.ValidateAuthor(v, &input); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	author, err := app.models.Authors.Update(r.Context(), id, &input)
	if err != nil {
		app.modelErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"author": author}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deleteAuthorHandler handles DELETE /authors/:id. Books that point at the
// author keep their author_id.
func (app *applicationDependencies) deleteAuthorHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	err = app.models.Authors.Delete(r.Context(), id)
	if err != nil {
		app.modelErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": fmt.Sprintf("Author %d deleted successfully", id)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
