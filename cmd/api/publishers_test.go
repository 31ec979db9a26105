package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisherHandlers(t *testing.T) {
	app := newTestApp(t)
	h := app.routes()

	res := do(t, h, http.MethodPost, "/publishers/", `{"name":"Faber & Faber","phone":"555-0000"}`)
	require.Equal(t, http.StatusCreated, res.status)
	assert.Equal(t, "/publishers/3", res.header.Get("Location"))
	assert.Nil(t, res.object(t, "publisher")["email"])

	res = do(t, h, http.MethodPut, "/publishers/3", `{"name":"Faber","email":"info@prh.com"}`)
	assert.Equal(t, http.StatusConflict, res.status)
	assert.Equal(t, "Publisher with this email already exists", res.body["error"])

	res = do(t, h, http.MethodPut, "/publishers/3", `{"name":"Faber","email":"hello@faber.co.uk"}`)
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "hello@faber.co.uk", res.object(t, "publisher")["email"])
	assert.Nil(t, res.object(t, "publisher")["phone"])

	res = do(t, h, http.MethodGet, "/publishers/?skip=2", "")
	require.Equal(t, http.StatusOK, res.status)
	publishers := res.list(t, "publishers")
	require.Len(t, publishers, 1)
	assert.Equal(t, "Faber", publishers[0]["name"])

	res = do(t, h, http.MethodDelete, "/publishers/3", "")
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "Publisher 3 deleted successfully", res.body["message"])

	res = do(t, h, http.MethodDelete, "/publishers/3", "")
	assert.Equal(t, http.StatusNotFound, res.status)
	assert.Equal(t, map[string]any{"error": "Publisher not found", "id": float64(3)}, res.body)

	res = do(t, h, http.MethodPost, "/publishers/", `{"address":"nowhere"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, res.status)
	assert.Equal(t, map[string]any{"name": "must be provided"}, res.body["error"])
}
