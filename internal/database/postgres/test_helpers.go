package postgres

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devjjun/commu/internal/database/schema"
)

var (
	testDBConnString string
	testPool         *pgxpool.Pool
	schemaApplied    bool
	schemaMux        sync.Mutex
)

// ensureSchema applies the schema once for all tests in the package
func ensureSchema(t *testing.T) {
	t.Helper()

	schemaMux.Lock()
	defer schemaMux.Unlock()

	if schemaApplied {
		return
	}

	if _, err := testPool.Exec(context.Background(), schema.SchemaSQL); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}
	schemaApplied = true
}

// requireDB skips the test when no database container is available
func requireDB(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testDBConnString == "" {
		t.Skip("Skipping integration test: database not available")
	}
	ensureSchema(t)
}

// createTestUser inserts a user row and returns its ID
func createTestUser(t *testing.T, username string) string {
	t.Helper()

	var userID string
	err := testPool.QueryRow(context.Background(),
		`INSERT INTO users (username, email) VALUES ($1, $2) RETURNING user_id`,
		username, fmt.Sprintf("%s@example.com", username)).Scan(&userID)
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return userID
}

// createTestItem inserts a catalog item and returns its ID
func createTestItem(t *testing.T, name, category string, price int, listed bool) int {
	t.Helper()

	var itemID int
	err := testPool.QueryRow(context.Background(),
		`INSERT INTO items (item_name, category, price, listed) VALUES ($1, $2, $3, $4) RETURNING item_id`,
		name, category, price, listed).Scan(&itemID)
	if err != nil {
		t.Fatalf("failed to create test item: %v", err)
	}
	return itemID
}
