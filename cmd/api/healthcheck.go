package main

import (
	"context"
	"net/http"
	"time"
)

// healthcheckHandler handles GET /healthcheck. It answers 503 when the
// database does not respond to a ping within two seconds.
func (app *applicationDependencies) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status, code := "available", http.StatusOK
	if err := app.db.PingContext(ctx); err != nil {
		app.logError(r, err)
		status, code = "unavailable", http.StatusServiceUnavailable
	}

	env := envelope{
		"status": status,
		"system_info": map[string]string{
			"environment": app.config.Env,
			"version":     appVersion,
		},
	}

	err := app.writeJSON(w, code, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
