package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"quizzy/internal/database"
)

// respondWithError writes msg with status. A non-nil err is logged with the
// request ID so it lines up with the access log entry.
func respondWithError(w http.ResponseWriter, r *http.Request, status int, msg, logMsg string, err error) {
	if err != nil {
		log.Printf("[%s] %s %s: %s: %v", GetRequestID(r.Context()), r.Method, r.URL.Path, logMsg, err)
	}
	http.Error(w, msg, status)
}

// respondStorageError answers 503 when the database could not be reached and
// 500 for any other storage failure
func respondStorageError(w http.ResponseWriter, r *http.Request, logMsg string, err error) {
	if errors.Is(err, database.ErrUnavailable) {
		respondWithError(w, r, http.StatusServiceUnavailable, ErrDatabaseUnavailable, logMsg, err)
		return
	}
	respondWithError(w, r, http.StatusInternalServerError, ErrInternalServerError, logMsg, err)
}

// acquire returns the request's connection, answering 503 when there is none
func acquire(w http.ResponseWriter, r *http.Request) (*database.Conn, bool) {
	conn, err := database.Acquire(r.Context())
	if err != nil {
		respondStorageError(w, r, "Error acquiring connection", err)
		return nil, false
	}
	return conn, true
}

// pathID parses the {id} path value, answering 400 when it is not a number
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, r, http.StatusBadRequest, ErrInvalidID, "", nil)
		return 0, false
	}
	return id, true
}
