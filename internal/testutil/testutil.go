package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"quizzy/internal/database"
)

// MigrationsPath returns the repository's migrations directory
func MigrationsPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "migrations")
}

// TemplatesPath returns the repository's templates directory
func TemplatesPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "templates")
}

// SetupTestDB creates a fresh SQLite database with the full schema.
// It is closed automatically when the test finishes.
func SetupTestDB(t *testing.T) *database.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}

	db, err := database.Initialize(filepath.Join(t.TempDir(), "quizzy_test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations(MigrationsPath()); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

// RequestContext returns a context carrying a connection provider for db,
// released when the test finishes
func RequestContext(t *testing.T, db *database.DB) context.Context {
	t.Helper()

	provider := database.NewProvider(db)
	t.Cleanup(func() { provider.Release() })
	return database.WithProvider(context.Background(), provider)
}

// Conn acquires a request-scoped connection for db
func Conn(t *testing.T, db *database.DB) (context.Context, *database.Conn) {
	t.Helper()

	ctx := RequestContext(t, db)
	conn, err := database.Acquire(ctx)
	if err != nil {
		t.Fatalf("Failed to acquire connection: %v", err)
	}
	return ctx, conn
}

// CreateTestUser inserts a user row directly and returns its ID
func CreateTestUser(t *testing.T, db *database.DB, name string, teacher bool) int64 {
	t.Helper()

	id, err := db.ExecReturningID(context.Background(),
		"INSERT INTO users (name, password_hash, teacher, admin) VALUES (?, ?, ?, ?)",
		name, "pbkdf2:sha256:1$c2FsdA$00", teacher, false)
	if err != nil {
		t.Fatalf("Failed to create test user %s: %v", name, err)
	}
	return id
}

// FormRequest builds a url-encoded form request
func FormRequest(method, path string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}
