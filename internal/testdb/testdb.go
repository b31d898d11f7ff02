// Package testdb opens throwaway in-memory databases for tests.
package testdb

import (
	"context"
	"testing"

	"github.com/assistant-mcp/knowd/infrastructure/persistence"
	"github.com/assistant-mcp/knowd/internal/database"
)

// New opens an in-memory SQLite database with the order schema
// migrated, closing it when the test finishes. Each call returns an
// isolated database, so parallel tests never share state.
func New(t *testing.T) database.Database {
	t.Helper()

	db, err := database.NewDatabase(context.Background(), "sqlite://:memory:")
	if err != nil {
		t.Fatalf("testdb: open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := persistence.AutoMigrate(db); err != nil {
		t.Fatalf("testdb: auto migrate: %v", err)
	}
	return db
}
