package database

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultPath is where the collector keeps its database relative to the
// working directory
const DefaultPath = "db/data.db"

// ResolvePath turns a database path into an absolute one and makes sure the
// parent directory exists. An empty path resolves to DefaultPath under the
// current working directory.
func ResolvePath(path string) (string, error) {
	if path == "" {
		path = DefaultPath
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to resolve working directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create database directory: %w", err)
	}

	return path, nil
}
