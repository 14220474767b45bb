// Package sqlstore implements store.Store on database/sql for SQLite and
// Postgres.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/Paintersrp/promptorg/internal/store"
)

// Options selects and locates the database.
type Options struct {
	// Driver is "sqlite" (default) or "postgres".
	Driver string
	// Path is the SQLite database file. ":memory:" is accepted for tests.
	Path string
	// DSN is the Postgres connection string.
	DSN string
	// Logger receives migration and query diagnostics. Nil disables logging.
	Logger *zap.Logger
}

// Store is a store.Store backed by database/sql.
type Store struct {
	db  *sql.DB
	d   dialect
	log *zap.Logger
}

var _ store.Store = (*Store)(nil)

// Open connects to the configured database and applies the schema.
func Open(ctx context.Context, opts Options) (*Store, error) {
	d, err := dialectFor(opts.Driver)
	if err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	dsn, err := dataSource(d, opts)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(d.driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", d.name, err)
	}

	if d.name == DriverSQLite {
		// SQLite allows a single writer; one connection avoids SQLITE_BUSY
		// between our own statements.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s database: %w", d.name, err)
	}

	s := &Store{db: db, d: d, log: log.Named("store")}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	s.log.Debug("database ready", zap.String("driver", d.name))
	return s, nil
}

func dataSource(d dialect, opts Options) (string, error) {
	switch d.name {
	case DriverPostgres:
		if strings.TrimSpace(opts.DSN) == "" {
			return "", errors.New("postgres driver requires a dsn")
		}
		return opts.DSN, nil
	default:
		path := strings.TrimSpace(opts.Path)
		if path == "" {
			return "", errors.New("sqlite driver requires a database path")
		}
		if path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return "", fmt.Errorf("create database directory: %w", err)
			}
		}
		return path + "?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000", nil
	}
}

func (s *Store) migrate(ctx context.Context) error {
	for _, stmt := range s.d.schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	var roots int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM folders WHERE parent_id IS NULL`).Scan(&roots); err != nil {
		return fmt.Errorf("count root folders: %w", err)
	}
	if roots == 0 {
		if _, err := s.CreateFolder(ctx, "Root", 0); err != nil {
			return fmt.Errorf("create root folder: %w", err)
		}
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Driver reports the active dialect name.
func (s *Store) Driver() string {
	return s.d.name
}

func (s *Store) exec(ctx context.Context, q string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, s.d.rebind(q), args...)
}

func (s *Store) query(ctx context.Context, q string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, s.d.rebind(q), args...)
}

func (s *Store) queryRow(ctx context.Context, q string, args ...any) *sql.Row {
	return s.db.QueryRowContext(ctx, s.d.rebind(q), args...)
}

// insert runs an INSERT ... RETURNING id statement.
func (s *Store) insert(ctx context.Context, tx *sql.Tx, q string, args ...any) (int64, error) {
	q = s.d.rebind(q + " RETURNING id")

	var row *sql.Row
	if tx != nil {
		row = tx.QueryRowContext(ctx, q, args...)
	} else {
		row = s.db.QueryRowContext(ctx, q, args...)
	}

	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *Store) txExec(ctx context.Context, tx *sql.Tx, q string, args ...any) (sql.Result, error) {
	return tx.ExecContext(ctx, s.d.rebind(q), args...)
}

func nullID(id int64) sql.NullInt64 {
	if id <= 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: id, Valid: true}
}

func affected(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
