package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"quizzy/internal/database"
	"quizzy/internal/models"
	"quizzy/internal/security"
	"quizzy/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	UserContextKey      ContextKey = "user"
	RequestIDContextKey ContextKey = "request_id"
)

// Middleware holds dependencies for middleware functions
type Middleware struct {
	db       *database.DB
	sessions *security.SessionManager
	csrf     *security.CSRFGenerator
	limiter  *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(db *database.DB, sessions *security.SessionManager, csrf *security.CSRFGenerator, limiter *security.RateLimiter) *Middleware {
	return &Middleware{
		db:       db,
		sessions: sessions,
		csrf:     csrf,
		limiter:  limiter,
	}
}

// WithConnection attaches a connection provider to every request and
// releases whatever it acquired once the handler returns
func (m *Middleware) WithConnection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		provider := database.NewProvider(m.db)
		defer func() {
			if err := provider.Release(); err != nil {
				log.Printf("Error releasing connection: %v", err)
			}
		}()

		next.ServeHTTP(w, r.WithContext(database.WithProvider(r.Context(), provider)))
	})
}

// RequireAuth is middleware that requires a signed-in user
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := m.resolveUser(w, r)
		if !ok {
			return
		}
		if user == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// LoadUser adds the signed-in user to the context when there is one
func (m *Middleware) LoadUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := m.resolveUser(w, r)
		if !ok {
			return
		}
		if user != nil {
			r = r.WithContext(context.WithValue(r.Context(), UserContextKey, user))
		}
		next(w, r)
	}
}

// resolveUser maps the session to a user, re-syncing the stored name.
// A session naming a user that no longer exists resolves to nil. ok is false
// when an error response has already been written.
func (m *Middleware) resolveUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	name := m.sessions.Username(r)
	if name == "" {
		return nil, true
	}

	conn, ok := acquire(w, r)
	if !ok {
		return nil, false
	}

	user, err := service.NewAuthService(conn).CurrentIdentity(r.Context(), name)
	if err != nil {
		respondStorageError(w, r, "Error resolving session", err)
		return nil, false
	}
	if user == nil {
		return nil, true
	}

	if err := m.sessions.Refresh(w, r, user.Name); err != nil {
		log.Printf("Error refreshing session for %s: %v", user.Name, err)
	}
	return user, true
}

// CSRFProtect rejects form posts without the signed-in user's CSRF token.
// It must run inside RequireAuth.
func (m *Middleware) CSRFProtect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := GetUserFromContext(r.Context())
		if user == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
			return
		}

		if !m.csrf.ValidateToken(m.sessions.CSRFKey(r), r.FormValue(CSRFFieldName)) {
			log.Printf("Rejected CSRF token for %s %s (user %s)", r.Method, r.URL.Path, user.Name)
			http.Error(w, ErrInvalidCSRFToken, http.StatusForbidden)
			return
		}

		next(w, r)
	}
}

// RateLimit limits how often one client may call next
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return m.limiter.Limit(next)
}

// CSRFToken returns the token forms must echo back for the request's session
func (m *Middleware) CSRFToken(r *http.Request) string {
	key := m.sessions.CSRFKey(r)
	if key == "" {
		return ""
	}
	token, err := m.csrf.GenerateToken(key)
	if err != nil {
		log.Printf("Error generating CSRF token: %v", err)
		return ""
	}
	return token
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Logging middleware logs HTTP requests, tagging each with a request ID
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)

		// Call next handler
		next.ServeHTTP(rec, r.WithContext(ctx))

		// Log request
		log.Printf("%s %s %d %s [%s]", r.Method, r.URL.Path, rec.status, time.Since(start), requestID)
	})
}

// GetUserFromContext retrieves the user from the request context
func GetUserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// GetRequestID returns the ID Logging assigned to the request, or "-"
func GetRequestID(ctx context.Context) string {
	id, ok := ctx.Value(RequestIDContextKey).(string)
	if !ok || id == "" {
		return "-"
	}
	return id
}
