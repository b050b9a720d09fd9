// Package sqlstore keeps the launch table in PostgreSQL or SQLite.
//
// The dashboard still reads the table once at startup; the database is only an
// alternative to shipping a CSV next to the binary.
package sqlstore

import (
	"context"
	"embed"
	"fmt"
	"log"
	"strings"

	"launchdash/domain/launch"
	"launchdash/internal/errors"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Store reads and replaces the launches table
type Store struct {
	db      *sqlx.DB
	dialect string
}

// normalizeDriver maps user-facing driver names to the sql driver and goose dialect
func normalizeDriver(driver string) (string, goose.Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "postgres", "postgresql", "pq":
		return "postgres", goose.DialectPostgres, nil
	case "sqlite", "sqlite3":
		return "sqlite", goose.DialectSQLite3, nil
	default:
		return "", "", errors.ConfigInvalid(fmt.Sprintf("unsupported database driver %q", driver))
	}
}

// Open connects to the database and applies all pending migrations
func Open(driver, dsn string) (*Store, error) {
	sqlDriver, dialect, err := normalizeDriver(driver)
	if err != nil {
		return nil, err
	}
	if dsn == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required when DATABASE_DRIVER is set")
	}

	db, err := sqlx.Connect(sqlDriver, dsn)
	if err != nil {
		return nil, errors.DatabaseError("failed to connect to database", err)
	}
	if sqlDriver == "sqlite" {
		db.SetMaxOpenConns(1)
	}

	if err := migrate(db, dialect); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, dialect: string(dialect)}, nil
}

func migrate(db *sqlx.DB, dialect goose.Dialect) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(string(dialect)); err != nil {
		return errors.DatabaseError("setting dialect for migrations", err)
	}
	if err := goose.Up(db.DB, "migrations"); err != nil {
		return errors.DatabaseError("applying migrations", err)
	}
	return nil
}

// Close terminates the database connection
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing store: %w", err)
	}
	return nil
}

// Describe implements ports.LaunchSource
func (s *Store) Describe() string {
	return "database:" + s.dialect
}

// Load implements ports.LaunchSource, returning records in import order
func (s *Store) Load(ctx context.Context) (*launch.Dataset, error) {
	var records []launch.Record
	query := `
		SELECT flight_number, site, payload_mass_kg, booster_version, booster_category, outcome
		FROM launches
		ORDER BY seq`
	if err := s.db.SelectContext(ctx, &records, query); err != nil {
		return nil, errors.DatasetLoad("failed to read launches table", err)
	}
	if len(records) == 0 {
		return nil, errors.DatasetLoad("launches table is empty", nil)
	}

	ds, err := launch.NewDataset(records)
	if err != nil {
		return nil, errors.DatasetLoad("invalid launch data in database", err)
	}
	log.Printf("[Store] Loaded %d launches from %s", ds.Len(), s.dialect)
	return ds, nil
}

// ReplaceAll implements ports.LaunchWriter; the table is swapped in one transaction
func (s *Store) ReplaceAll(ctx context.Context, records []launch.Record) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("failed to begin import", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM launches"); err != nil {
		return errors.DatabaseError("failed to clear launches", err)
	}

	insert := tx.Rebind(`
		INSERT INTO launches (seq, flight_number, site, payload_mass_kg, booster_version, booster_category, outcome)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return errors.InvalidInput(fmt.Sprintf("record %d: %v", i+1, err))
		}
		if _, err := tx.ExecContext(ctx, insert,
			i+1, r.FlightNumber, r.Site, r.PayloadMassKg, r.BoosterVersion, r.BoosterCategory, int(r.Outcome),
		); err != nil {
			return errors.DatabaseError(fmt.Sprintf("failed to insert record %d", i+1), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.DatabaseError("failed to commit import", err)
	}
	log.Printf("[Store] Imported %d launches", len(records))
	return nil
}

// Count returns the number of stored launches
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM launches"); err != nil {
		return 0, errors.DatabaseError("failed to count launches", err)
	}
	return n, nil
}
