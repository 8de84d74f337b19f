package handlers

import (
	"log/slog"
	"net/http"
)

// respondWithError answers with a plain-text error. A non-nil err is logged
// against the request under userMsg.
func respondWithError(w http.ResponseWriter, r *http.Request, status int, userMsg string, err error) {
	if err != nil {
		slog.ErrorContext(r.Context(), userMsg,
			"error", err,
			"status", status,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", GetRequestID(r.Context()),
		)
	}
	http.Error(w, userMsg, status)
}
