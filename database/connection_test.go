package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConnection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "test.db")

	db, err := NewConnection(context.Background(), path)
	require.NoError(t, err)
	defer db.Close()

	// The file and its parent directory were created
	_, err = os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, db.Ping())

	// Foreign keys are enforced
	var fkEnabled int
	require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&fkEnabled))
	assert.Equal(t, 1, fkEnabled)
}

func TestMigrateUpAndDown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	require.NoError(t, MigrateUp(path))

	db, err := NewConnection(context.Background(), path)
	require.NoError(t, err)
	defer db.Close()

	// Both tables exist after migrating up
	for _, table := range []string{"summoners", "collection_runs"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}

	// MigrateUp is idempotent
	require.NoError(t, MigrateUp(path))

	// Rolling back one step drops collection_runs but keeps summoners
	require.NoError(t, MigrateDown(path, "1"))
	var name string
	err = db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='collection_runs'").Scan(&name)
	assert.Error(t, err)
	err = db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='summoners'").Scan(&name)
	assert.NoError(t, err)
}

func TestMigrateDown_InvalidSteps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	assert.Error(t, MigrateDown(path, "not-a-number"))
}
