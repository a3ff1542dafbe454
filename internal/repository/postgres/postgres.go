package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/MarckFp/ppoc-gen-v2/internal/repository"
)

// DB wraps a SQL database connection for all PostgreSQL operations
type DB struct {
	*sql.DB

	publishers    *PublisherRepository
	schedules     *ScheduleRepository
	absences      *AbsenceRepository
	availability  *AvailabilityRepository
	relationships *RelationshipRepository
	shifts        *ShiftRepository
}

// New creates a new PostgreSQL database connection
func New(connString string) (*DB, error) {
	sqldb, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqldb.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{DB: sqldb}
	db.publishers = NewPublisherRepository(sqldb)
	db.schedules = NewScheduleRepository(sqldb)
	db.absences = NewAbsenceRepository(sqldb)
	db.availability = NewAvailabilityRepository(sqldb)
	db.relationships = NewRelationshipRepository(sqldb)
	db.shifts = NewShiftRepository(sqldb)

	return db, nil
}

func (db *DB) PublisherRepository() repository.PublisherRepository       { return db.publishers }
func (db *DB) ScheduleRepository() repository.ScheduleRepository         { return db.schedules }
func (db *DB) AbsenceRepository() repository.AbsenceRepository           { return db.absences }
func (db *DB) AvailabilityRepository() repository.AvailabilityRepository { return db.availability }
func (db *DB) RelationshipRepository() repository.RelationshipRepository { return db.relationships }
func (db *DB) ShiftRepository() repository.ShiftRepository               { return db.shifts }

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// Health checks database connectivity
func (db *DB) Health(ctx context.Context) error {
	return db.PingContext(ctx)
}

// BeginTx opens a transaction scoped to a single unit of work, such as
// persisting every shift produced by one generation run atomically.
func (db *DB) BeginTx(ctx context.Context) (repository.Transaction, error) {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &Tx{tx: tx, shifts: NewShiftRepository(tx)}, nil
}

// Tx is a repository.Transaction backed by a single *sql.Tx.
type Tx struct {
	tx     *sql.Tx
	shifts *ShiftRepository
}

func (t *Tx) ShiftRepository() repository.ShiftRepository { return t.shifts }

func (t *Tx) Commit() error   { return t.tx.Commit() }
func (t *Tx) Rollback() error { return t.tx.Rollback() }
