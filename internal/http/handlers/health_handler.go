package handlers

import (
	"net/http"
)

// NewHealthHandler returns the GET / liveness handler. The payload is static:
// the probe reports process liveness only, never the state of the poll loop.
func NewHealthHandler(service string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"service": service,
		})
	}
}
