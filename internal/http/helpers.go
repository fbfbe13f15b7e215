package httphandler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"cookie4/internal/game"
)

// statusFor maps a board error to the response status
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, game.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrGameOver), errors.Is(err, game.ErrColFull):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeText sends a plain text body with the given status
func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// parseColumn reads a 1-based column from a path segment
func parseColumn(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: column %q", game.ErrColOutOfRange, s)
	}
	return n, nil
}

// NotFound answers unknown routes with an empty 404
func NotFound(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusNotFound, "")
}
