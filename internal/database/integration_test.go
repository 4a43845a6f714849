package database_test

import (
	"context"
	"sync"
	"testing"

	"quizzy/internal/database"
	"quizzy/internal/testutil"
)

// TestDatabaseIntegration tests the complete database lifecycle
func TestDatabaseIntegration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("Failed to ping database: %v", err)
	}

	// Test that tables were created by migrations
	for _, table := range []string{"users", "questions", "migrations"} {
		query := "SELECT name FROM sqlite_master WHERE type='table' AND name=?"
		var name string
		if err := db.QueryRowContext(ctx, query, table).Scan(&name); err != nil {
			t.Errorf("Table %s not found: %v", table, err)
		}
	}

	// Running migrations again is a no-op
	if err := db.RunMigrations(testutil.MigrationsPath()); err != nil {
		t.Fatalf("Second migration run failed: %v", err)
	}
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM migrations").Scan(&count); err != nil {
		t.Fatalf("Failed to count migrations: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 recorded migration, got %d", count)
	}
}

// TestDatabaseTransactions tests transaction support
func TestDatabaseTransactions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	tx, err := db.Begin(ctx)
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}
	if _, err := tx.ExecReturningID(ctx, "INSERT INTO users (name, password_hash) VALUES (?, ?)", "committed", "hash"); err != nil {
		tx.Rollback()
		t.Fatalf("Failed to insert in transaction: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Failed to commit transaction: %v", err)
	}

	tx2, err := db.Begin(ctx)
	if err != nil {
		t.Fatalf("Failed to begin second transaction: %v", err)
	}
	if _, err := tx2.ExecContext(ctx, "INSERT INTO users (name, password_hash) VALUES (?, ?)", "rolledback", "hash"); err != nil {
		tx2.Rollback()
		t.Fatalf("Failed to insert in second transaction: %v", err)
	}
	if err := tx2.Rollback(); err != nil {
		t.Fatalf("Failed to rollback transaction: %v", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		t.Fatalf("Failed to count users: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 user after commit and rollback, got %d", count)
	}
}

func TestUniqueNameViolationIsDetected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	insert := "INSERT INTO users (name, password_hash) VALUES (?, ?)"
	if _, err := db.ExecContext(ctx, insert, "alice", "hash"); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}

	_, err := db.ExecContext(ctx, insert, "alice", "hash")
	if err == nil {
		t.Fatal("Expected duplicate insert to fail")
	}
	if !db.Dialect.IsUniqueViolation(err) {
		t.Errorf("IsUniqueViolation(%v) = false, want true", err)
	}
}

// TestConcurrentProviders gives each goroutine its own provider, the way
// concurrent requests do
func TestConcurrentProviders(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.CreateTestUser(t, db, "concurrent", false)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			provider := database.NewProvider(db)
			defer provider.Release()

			conn, err := provider.Acquire(context.Background())
			if err != nil {
				t.Errorf("Acquire failed: %v", err)
				return
			}
			var name string
			if err := conn.QueryRowContext(context.Background(), "SELECT name FROM users WHERE name = ?", "concurrent").Scan(&name); err != nil {
				t.Errorf("Concurrent read failed: %v", err)
			}
		}()
	}
	wg.Wait()
}
