package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/aoideee/publishing-api/internal/data"
	"github.com/aoideee/publishing-api/internal/validator"
)

// envelope names the top-level key of every response body, e.g.
// {"author": {...}} or {"books": [...]}.
type envelope map[string]any

const maxBodyBytes = 1_048_576

// readIDParam parses the ":id" path parameter. Any integer is accepted; ids
// that match no row are reported by the repository.
func (app *applicationDependencies) readIDParam(r *http.Request) (int64, error) {
	params := httprouter.ParamsFromContext(r.Context())
	id, err := strconv.ParseInt(params.ByName("id"), 10, 64)
	if err != nil {
		return 0, errors.New("invalid id parameter")
	}
	return id, nil
}

// readInt returns defaultValue when key is absent and records a validation
// error when it is not an integer.
func (app *applicationDependencies) readInt(qs url.Values, key string, defaultValue int, v *validator.Validator) int {
	s := qs.Get(key)
	if s == "" {
		return defaultValue
	}

	i, err := strconv.Atoi(s)
	if err != nil {
		v.AddError(key, "must be an integer value")
		return defaultValue
	}
	return i
}

// readOptionalInt64 returns nil when key is absent from the query string.
func (app *applicationDependencies) readOptionalInt64(qs url.Values, key string, v *validator.Validator) *int64 {
	if !qs.Has(key) {
		return nil
	}

	i, err := strconv.ParseInt(qs.Get(key), 10, 64)
	if err != nil {
		v.AddError(key, "must be an integer value")
		return nil
	}
	return &i
}

// readOptionalString returns nil when key is absent. A key given with an
// empty value yields a pointer to "".
func (app *applicationDependencies) readOptionalString(qs url.Values, key string) *string {
	if !qs.Has(key) {
		return nil
	}
	s := qs.Get(key)
	return &s
}

func (app *applicationDependencies) writeJSON(w http.ResponseWriter, status int, body envelope, headers http.Header) error {
	js, err := json.MarshalIndent(body, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

// readJSON decodes exactly one JSON value from the body into dst and turns
// decoder failures into messages fit for a 400 response.
func (app *applicationDependencies) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var (
			syntaxError           *json.SyntaxError
			unmarshalTypeError    *json.UnmarshalTypeError
			invalidUnmarshalError *json.InvalidUnmarshalError
			maxBytesError         *http.MaxBytesError
		)

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)

		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")

		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)

		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")

		case errors.Is(err, data.ErrInvalidDateFormat):
			return err

		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)

		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)

		case errors.As(err, &invalidUnmarshalError):
			panic(err)

		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}
