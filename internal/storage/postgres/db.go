package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// database/sql driver for pgx
	_ "github.com/jackc/pgx/v4/stdlib"

	"github.com/XxArDy/hotels/internal/logger"
)

type Config struct {
	L   *logger.Logger
	DSN string
}

const (
	maxOpenConns    = 10
	maxIdleConns    = 5
	connMaxLifetime = 5 * time.Minute
)

type DB struct {
	l   *logger.Logger
	sql *sql.DB
}

// New opens a pgx-backed pool, verifies connectivity and applies the schema.
func New(ctx context.Context, conf Config) (*DB, error) {
	d, err := sql.Open("pgx", conf.DSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}

	d.SetMaxOpenConns(maxOpenConns)
	d.SetMaxIdleConns(maxIdleConns)
	d.SetConnMaxLifetime(connMaxLifetime)

	if err := d.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	db := &DB{l: conf.L, sql: d}

	if err := db.applySchema(ctx); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return db, nil
}

func (db *DB) Close() error {
	return db.sql.Close()
}

// querier is satisfied by both *sql.DB and *sql.Tx, so queries transparently
// join the transaction carried by the context.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (db *DB) querier(ctx context.Context) querier {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}

	return db.sql
}

func (db *DB) BeginTransaction(ctx context.Context, level string) (context.Context, error) {
	isolation := sql.LevelReadCommitted
	if level == "SERIALIZABLE" {
		isolation = sql.LevelSerializable
	}

	//nolint:exhaustruct
	tx, err := db.sql.BeginTx(ctx, &sql.TxOptions{Isolation: isolation})
	if err != nil {
		return nil, fmt.Errorf("begin postgres transaction: %w", err)
	}

	return withTx(ctx, tx), nil
}

func (db *DB) CommitTransaction(ctx context.Context) error {
	tx, ok := txFromContext(ctx)
	if !ok {
		return ErrTxNotFoundInCtx
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit postgres transaction: %w", err)
	}

	return nil
}

func (db *DB) RollbackTransaction(ctx context.Context) error {
	tx, ok := txFromContext(ctx)
	if !ok {
		return ErrTxNotFoundInCtx
	}

	if err := tx.Rollback(); err != nil {
		return fmt.Errorf("rollback postgres transaction: %w", err)
	}

	return nil
}

// IDGen allocates entity ids from the shared sequence, giving the manager
// the same id-generator contract the counter generator provides in-memory.
type IDGen struct {
	db *DB
}

func NewIDGen(db *DB) *IDGen {
	return &IDGen{db: db}
}

func (g *IDGen) GetID(ctx context.Context) (int, error) {
	var id int64

	if err := g.db.sql.QueryRowContext(ctx, `SELECT nextval('hotels_id_seq')`).Scan(&id); err != nil {
		return 0, fmt.Errorf("next id from sequence: %w", err)
	}

	return int(id), nil
}
