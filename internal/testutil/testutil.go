package testutil

import (
	"database/sql"
	"io/fs"
	"sort"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pratik-mahalle/streamvault/internal/domain/account"
	"github.com/pratik-mahalle/streamvault/internal/pkg/logger"
	"github.com/pratik-mahalle/streamvault/migrations"
)

// NewTestDB creates an in-memory SQLite database with the streaming_accounts schema
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Every pooled connection to :memory: would otherwise get its own empty database
	db.SetMaxOpenConns(1)

	schema, err := migrations.GetFS("sqlite")
	if err != nil {
		t.Fatalf("Failed to load sqlite migrations: %v", err)
	}

	files, err := fs.Glob(schema, "*.sql")
	if err != nil {
		t.Fatalf("Failed to list migrations: %v", err)
	}
	sort.Strings(files)

	for _, name := range files {
		content, err := fs.ReadFile(schema, name)
		if err != nil {
			t.Fatalf("Failed to read %s: %v", name, err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			t.Fatalf("Failed to create test schema from %s: %v", name, err)
		}
	}

	t.Cleanup(func() { CleanupDB(db) })
	return db
}

// CleanupDB closes the test database
func CleanupDB(db *sql.DB) {
	if db != nil {
		db.Close()
	}
}

// NewTestLogger returns a logger that only reports errors
func NewTestLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}

// FixedClock returns a clock frozen at t
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// NewAccount builds a valid account expiring on the given date
func NewAccount(client, platform string, expiration account.Date) *account.Account {
	return &account.Account{
		ClientName:     client,
		Platform:       platform,
		AccountType:    "Perfil",
		DeliveryDate:   expiration.AddDays(-30),
		ExpirationDate: expiration,
		Status:         account.StatusActive,
	}
}
