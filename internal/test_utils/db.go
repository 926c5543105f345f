package test_utils

import (
	"path/filepath"
	"testing"

	"github.com/pocketledger/pocketledger/internal/storage"
)

// NewTestStore creates a SQLite-backed store in a per-test temp directory,
// with all migrations applied. Each store is completely isolated from others.
func NewTestStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "pocketledger_test.db")
	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	t.Cleanup(func() {
		store.Close()
	})

	return store
}
