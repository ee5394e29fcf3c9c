package dbload

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Loader applies generated SQL to a database
type Loader struct {
	db *sql.DB
}

// Open connects to the destination database. Supported drivers are
// "postgres" (lib/pq) and "sqlite" (modernc.org/sqlite).
func Open(ctx context.Context, driver, dsn string) (*Loader, error) {
	switch driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
	if dsn == "" {
		return nil, fmt.Errorf("database DSN is required")
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database not available: %w", err)
	}

	return &Loader{db: db}, nil
}

// New wraps an existing connection
func New(db *sql.DB) *Loader {
	return &Loader{db: db}
}

// Close closes the underlying connection
func (l *Loader) Close() error {
	return l.db.Close()
}

// Apply runs every statement in a single transaction and returns the number
// executed. Nothing is committed if any statement fails.
func (l *Loader) Apply(ctx context.Context, statements []string) (int, error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				slog.Error("Rollback failed", "err", rbErr)
			}
			return 0, fmt.Errorf("statement %d failed: %w", i+1, err)
		}
		slog.Debug("Executed statement", "index", i+1, "total", len(statements))
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}

	return len(statements), nil
}
