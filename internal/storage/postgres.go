package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gds_translator/internal/lookup"
)

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

// PostgresDB wraps a PostgreSQL connection pool holding code directories.
type PostgresDB struct {
	pool *pgxpool.Pool
}

// OpenPostgres opens a connection pool to PostgreSQL.
func OpenPostgres(ctx context.Context, cfg PostgresConfig) (*PostgresDB, error) {
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database)

	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 1
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &PostgresDB{pool: pool}, nil
}

// Close closes the PostgreSQL connection pool.
func (d *PostgresDB) Close() error {
	d.pool.Close()
	return nil
}

// CreateSchema creates the directory table.
func (d *PostgresDB) CreateSchema(ctx context.Context) error {
	_, err := d.pool.Exec(ctx, `
	CREATE TABLE IF NOT EXISTS directory_entries (
		kind        TEXT NOT NULL,
		code        TEXT NOT NULL,
		name        TEXT NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (kind, code)
	);
	`)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// ImportDirectory upserts every entry of dir under kind in one transaction
// and returns the number of rows written.
func (d *PostgresDB) ImportDirectory(ctx context.Context, kind lookup.Kind, dir lookup.Directory) (int, error) {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for code, name := range dir {
		batch.Queue(`
			INSERT INTO directory_entries (kind, code, name)
			VALUES ($1, $2, $3)
			ON CONFLICT (kind, code) DO UPDATE SET
				name = EXCLUDED.name,
				updated_at = NOW()
		`, string(kind), code, name)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("upsert %s: %w", kind, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(dir), nil
}

// LoadDirectory reads every entry of kind.
func (d *PostgresDB) LoadDirectory(ctx context.Context, kind lookup.Kind) (lookup.Directory, error) {
	rows, err := d.pool.Query(ctx,
		`SELECT code, name FROM directory_entries WHERE kind = $1`, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dir := make(lookup.Directory)
	for rows.Next() {
		var code, name string
		if err := rows.Scan(&code, &name); err != nil {
			return nil, err
		}
		dir[code] = name
	}
	return dir, rows.Err()
}

// Name returns the stored name for one code. ok is false when the code is
// not in the directory.
func (d *PostgresDB) Name(ctx context.Context, kind lookup.Kind, code string) (name string, ok bool, err error) {
	err = d.pool.QueryRow(ctx,
		`SELECT name FROM directory_entries WHERE kind = $1 AND code = $2`, string(kind), code).Scan(&name)
	if err == pgx.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return name, true, nil
}

// DeleteDirectory removes every entry of kind.
func (d *PostgresDB) DeleteDirectory(ctx context.Context, kind lookup.Kind) (int64, error) {
	tag, err := d.pool.Exec(ctx, `DELETE FROM directory_entries WHERE kind = $1`, string(kind))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
