// Package testutil holds shared test fixtures: an in-memory database and
// canonical domain values.
package testutil

import (
	"database/sql"
	"testing"

	"github.com/averhoef/thesisflow/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations
// applied, closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUOW creates a UnitOfWork backed by the given test database.
func NewTestUOW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
