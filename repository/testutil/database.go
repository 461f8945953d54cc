package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"harvester/database"
)

// SetupTestDatabase opens a migrated SQLite database under a temp directory.
// The database is closed when the test finishes.
func SetupTestDatabase(t *testing.T) *database.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	if err := database.MigrateUp(path); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db, err := database.NewConnection(context.Background(), path)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}
