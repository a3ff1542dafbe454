// Package postgres provides PostgreSQL repository implementations with integration tests
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PostgresTestHelper provides utilities for PostgreSQL integration tests
type PostgresTestHelper struct {
	db        *sql.DB
	container testcontainers.Container
	ctx       context.Context
}

// NewPostgresTestHelper creates and starts a PostgreSQL container for testing
func NewPostgresTestHelper(ctx context.Context, t *testing.T) *PostgresTestHelper {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "ppoc_gen_test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	connStr := fmt.Sprintf("postgres://test:test@%s:%s/ppoc_gen_test?sslmode=disable",
		host, port.Port())

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("Failed to open database connection: %v", err)
	}

	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("Failed to ping database: %v", err)
	}

	if err := createTestTables(ctx, db); err != nil {
		t.Fatalf("Failed to create test tables: %v", err)
	}

	return &PostgresTestHelper{
		db:        db,
		container: container,
		ctx:       ctx,
	}
}

// Close stops the PostgreSQL container and closes the database connection
func (h *PostgresTestHelper) Close(t *testing.T) {
	if err := h.db.Close(); err != nil {
		t.Logf("Warning: failed to close database: %v", err)
	}
	if err := h.container.Terminate(h.ctx); err != nil {
		t.Logf("Warning: failed to terminate container: %v", err)
	}
}

// DB returns the database connection
func (h *PostgresTestHelper) DB() *sql.DB {
	return h.db
}

// ClearTables truncates all tables (useful for test isolation)
func (h *PostgresTestHelper) ClearTables(ctx context.Context, t *testing.T) {
	tables := []string{
		"shifts",
		"relationships",
		"availability",
		"absences",
		"schedules",
		"publishers",
	}

	for _, table := range tables {
		if _, err := h.db.ExecContext(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			t.Logf("Warning: failed to truncate table %s: %v", table, err)
		}
	}
}

// createTestTables creates all necessary tables for testing
func createTestTables(ctx context.Context, db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS publishers (
		id BIGINT PRIMARY KEY,
		first_name VARCHAR(255) NOT NULL,
		last_name VARCHAR(255) NOT NULL,
		gender VARCHAR(10) NOT NULL,
		is_shift_manager BOOLEAN NOT NULL DEFAULT false,
		priority INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS schedules (
		id BIGINT PRIMARY KEY,
		location VARCHAR(255) NOT NULL,
		start_hour VARCHAR(5) NOT NULL,
		end_hour VARCHAR(5) NOT NULL,
		weekday INTEGER NOT NULL,
		num_publishers INTEGER NOT NULL,
		num_shift_managers INTEGER NOT NULL DEFAULT 0,
		num_brothers INTEGER NOT NULL DEFAULT 0,
		num_sisters INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS absences (
		id BIGSERIAL PRIMARY KEY,
		publisher_id BIGINT NOT NULL REFERENCES publishers(id),
		start_date TIMESTAMP NOT NULL,
		end_date TIMESTAMP NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS availability (
		publisher_id BIGINT NOT NULL REFERENCES publishers(id),
		schedule_id BIGINT NOT NULL REFERENCES schedules(id),
		PRIMARY KEY (publisher_id, schedule_id)
	);

	CREATE TABLE IF NOT EXISTS relationships (
		id BIGSERIAL PRIMARY KEY,
		publisher_a BIGINT NOT NULL REFERENCES publishers(id),
		publisher_b BIGINT NOT NULL REFERENCES publishers(id),
		kind VARCHAR(20) NOT NULL,
		UNIQUE (publisher_a, publisher_b)
	);

	CREATE TABLE IF NOT EXISTS shifts (
		id BIGSERIAL PRIMARY KEY,
		schedule_id BIGINT NOT NULL REFERENCES schedules(id),
		start_datetime TIMESTAMP NOT NULL,
		end_datetime TIMESTAMP NOT NULL,
		location VARCHAR(255) NOT NULL,
		publishers BIGINT[] NOT NULL,
		warning VARCHAR(64) NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);
	`

	_, err := db.ExecContext(ctx, schema)
	return err
}
