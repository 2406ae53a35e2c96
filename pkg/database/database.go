// Package database is the storage gateway: it owns the one Postgres store of
// the process, guarantees the schema exists, and hands out scoped connections
// and transactions to repositories.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ghuser/usedmarket/pkg/logger"
	"github.com/ghuser/usedmarket/pkg/migrator"
)

// ErrStoreUnavailable marks failures to open, reach or prepare the store.
// Callers at startup treat it as fatal.
var ErrStoreUnavailable = errors.New("store unavailable")

const (
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
	connMaxIdleTime = 5 * time.Minute
	pingTimeout     = 5 * time.Second
)

// Database wraps the pgx-backed *sql.DB pool.
type Database struct {
	db  *sql.DB
	log logger.Logger
}

// NewPool opens a connection pool to url and verifies it with a ping.
// Every failure is wrapped with ErrStoreUnavailable.
func NewPool(ctx context.Context, url string, log logger.Logger) (*Database, error) {
	sqlDB, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("%w: open: %w", ErrStoreUnavailable, err)
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%w: ping: %w", ErrStoreUnavailable, err)
	}

	return &Database{db: sqlDB, log: log}, nil
}

// New wraps an already opened pool.
func New(sqlDB *sql.DB, log logger.Logger) *Database {
	return &Database{db: sqlDB, log: log}
}

// InitializeSchema applies the embedded migrations. Idempotent.
func (d *Database) InitializeSchema(ctx context.Context, files fs.FS) error {
	if err := migrator.Up(ctx, d.db, files); err != nil {
		return fmt.Errorf("%w: initialize schema: %w", ErrStoreUnavailable, err)
	}
	d.log.InfoContext(ctx, "database schema ready")
	return nil
}

// DB returns the underlying pool.
func (d *Database) DB() *sql.DB {
	return d.db
}

// WithConn acquires a dedicated connection for the duration of fn and
// releases it on every exit path, including panics.
func (d *Database) WithConn(ctx context.Context, fn func(conn *sql.Conn) error) error {
	conn, err := d.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close() //nolint:errcheck

	return fn(conn)
}

// WithTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back otherwise. A panic in fn rolls back and re-panics.
func (d *Database) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			d.log.WarnContext(ctx, "rollback failed", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Ping checks the store is reachable.
func (d *Database) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping: %w", err)
	}
	return nil
}

// Close releases all pooled connections.
func (d *Database) Close() {
	if err := d.db.Close(); err != nil {
		d.log.Error("database close", "error", err)
	}
}
