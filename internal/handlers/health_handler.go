package handlers

import (
	"net/http"
)

// HealthHandler reports whether the database can be reached
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Health acquires the request's connection and pings it
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	conn, ok := acquire(w, r)
	if !ok {
		return
	}

	if err := conn.PingContext(r.Context()); err != nil {
		respondWithError(w, r, http.StatusServiceUnavailable, ErrDatabaseUnavailable, "Health check ping failed", err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}
