package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aoideee/publishing-api/internal/config"
	"github.com/aoideee/publishing-api/internal/data"
)

// newTestApp returns an application backed by a freshly seeded SQLite file
// with the rate limiter switched off.
func newTestApp(t *testing.T) *applicationDependencies {
	t.Helper()

	db, err := sql.Open(string(data.SQLite), filepath.Join(t.TempDir(), "publishing.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = data.Bootstrap(context.Background(), db, data.SQLite)
	require.NoError(t, err)

	return &applicationDependencies{
		config: &config.Config{
			Port: 4000,
			Env:  "development",
			DB:   config.DBConfig{Driver: string(data.SQLite)},
			Log:  config.LogConfig{Level: "info", Format: "text"},
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		db:     db,
		models: data.NewModels(db),
	}
}

type testResponse struct {
	status int
	header http.Header
	body   map[string]any
}

// do sends one request through the full middleware chain and decodes the
// JSON body.
func do(t *testing.T, h http.Handler, method, target, body string) testResponse {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, target, rd))

	res := testResponse{status: rr.Code, header: rr.Header()}
	if rr.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res.body), rr.Body.String())
	}
	return res
}

// object returns body[key] as a JSON object.
func (res testResponse) object(t *testing.T, key string) map[string]any {
	t.Helper()

	obj, ok := res.body[key].(map[string]any)
	require.Truef(t, ok, "%q is not an object in %v", key, res.body)
	return obj
}

// list returns body[key] as a JSON array of objects.
func (res testResponse) list(t *testing.T, key string) []map[string]any {
	t.Helper()

	raw, ok := res.body[key].([]any)
	require.Truef(t, ok, "%q is not an array in %v", key, res.body)

	items := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		obj, ok := item.(map[string]any)
		require.True(t, ok)
		items = append(items, obj)
	}
	return items
}
