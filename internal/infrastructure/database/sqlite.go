package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/extra/bundebug"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// SQLiteConfig configures the embedded SQLite store.
type SQLiteConfig struct {
	// Path is a file path or a SQLite URI; ":memory:" keeps everything in RAM.
	Path string
	// Debug logs every query through bundebug.
	Debug bool
}

// SQLiteDB wraps a bun handle over the pure-Go sqlite driver.
type SQLiteDB struct {
	DB     *bun.DB
	Config *SQLiteConfig
}

// OpenSQLite opens the database and applies the connection pragmas.
//
// The pool is pinned to one connection: sqlite serialises writers anyway,
// and an in-memory database only lives as long as its connection.
func OpenSQLite(ctx context.Context, cfg *SQLiteConfig) (*SQLiteDB, error) {
	log.Printf("[DATABASE] Opening SQLite database %s", cfg.Path)

	sqldb, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqldb.SetMaxOpenConns(1)
	sqldb.SetMaxIdleConns(1)
	sqldb.SetConnMaxLifetime(0)
	sqldb.SetConnMaxIdleTime(0)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	return &SQLiteDB{DB: db, Config: cfg}, nil
}

// CreateTables creates the tables for the given bun models, in order.
func (s *SQLiteDB) CreateTables(ctx context.Context, models ...TableModel) error {
	for _, m := range models {
		q := s.DB.NewCreateTable().Model(m.Model).IfNotExists()
		for _, fk := range m.ForeignKeys {
			q = q.ForeignKey(fk)
		}
		if _, err := q.Exec(ctx); err != nil {
			return fmt.Errorf("create table for %T: %w", m.Model, err)
		}
	}
	return nil
}

// TableModel describes one table to create: a bun model plus raw foreign key clauses.
type TableModel struct {
	Model       any
	ForeignKeys []string
}

// HealthCheck pings the database.
func (s *SQLiteDB) HealthCheck(ctx context.Context) error {
	if err := s.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite ping failed: %w", err)
	}
	return nil
}

// Close closes the underlying handle.
func (s *SQLiteDB) Close() error {
	return s.DB.Close()
}
