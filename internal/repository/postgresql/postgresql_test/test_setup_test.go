package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/agent-hours-go/internal/pkg/database"
)

// TestDatabaseSetup holds a connection to the database named by TEST_DATABASE_URL.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL, skipping the test when it is unset.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(context.Background(), dsn)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	setup := &TestDatabaseSetup{DB: db}
	t.Cleanup(setup.Close)
	return setup
}

// Reset recreates the dataset tables. withLocation controls whether agent_activity has a location column.
func (s *TestDatabaseSetup) Reset(ctx context.Context, withLocation bool) error {
	location := ""
	if withLocation {
		location = ", location TEXT"
	}

	statements := []string{
		"DROP TABLE IF EXISTS manager_agents",
		"DROP TABLE IF EXISTS agent_activity",
		`CREATE TABLE manager_agents (
			id SERIAL PRIMARY KEY,
			manager TEXT,
			agent TEXT
		)`,
		fmt.Sprintf(`CREATE TABLE agent_activity (
			id SERIAL PRIMARY KEY,
			date DATE,
			agent TEXT,
			alerts INTEGER,
			manual_alerts INTEGER,
			marked INTEGER%s
		)`, location),
	}

	for _, stmt := range statements {
		if _, err := s.DB.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run %q: %w", stmt, err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *TestDatabaseSetup) Close() {
	s.DB.Close()
}
