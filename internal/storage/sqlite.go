// Package storage persists code directories and the translation audit log.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"gds_translator/internal/lookup"
)

// SQLiteDB wraps a SQLite database holding code directories.
type SQLiteDB struct {
	db *sql.DB
}

// OpenSQLite opens or creates a SQLite database at the given path.
// ":memory:" gives a private in-memory database.
func OpenSQLite(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if path == ":memory:" {
		// Every connection would otherwise see its own empty database.
		db.SetMaxOpenConns(1)
	} else if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if err := createSQLiteSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

// Close closes the database connection.
func (d *SQLiteDB) Close() error {
	return d.db.Close()
}

func createSQLiteSchema(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS directory_entries (
		kind        TEXT NOT NULL,
		code        TEXT NOT NULL,
		name        TEXT NOT NULL,
		updated_at  TEXT DEFAULT (datetime('now')),
		PRIMARY KEY (kind, code)
	);

	CREATE INDEX IF NOT EXISTS idx_directory_entries_kind ON directory_entries(kind);
	`)
	return err
}

// ImportDirectory upserts every entry of dir under kind in one transaction
// and returns the number of rows written.
func (d *SQLiteDB) ImportDirectory(ctx context.Context, kind lookup.Kind, dir lookup.Directory) (int, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO directory_entries (kind, code, name)
		VALUES (?, ?, ?)
		ON CONFLICT(kind, code) DO UPDATE SET
			name = excluded.name,
			updated_at = datetime('now')
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	n := 0
	for code, name := range dir {
		if _, err := stmt.ExecContext(ctx, string(kind), code, name); err != nil {
			return 0, fmt.Errorf("insert %s %s: %w", kind, code, err)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return n, nil
}

// LoadDirectory reads every entry of kind.
func (d *SQLiteDB) LoadDirectory(ctx context.Context, kind lookup.Kind) (lookup.Directory, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT code, name FROM directory_entries WHERE kind = ?`, string(kind))
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
func (d *SQLiteDB) Name(ctx context.Context, kind lookup.Kind, code string) (name string, ok bool, err error) {
	err = d.db.QueryRowContext(ctx,
		`SELECT name FROM directory_entries WHERE kind = ? AND code = ?`, string(kind), code).Scan(&name)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return name, true, nil
}

// CountByKind returns the number of stored entries per directory kind.
func (d *SQLiteDB) CountByKind(ctx context.Context) (map[lookup.Kind]int, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT kind, COUNT(*) FROM directory_entries GROUP BY kind`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[lookup.Kind]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		counts[lookup.Kind(kind)] = n
	}
	return counts, rows.Err()
}

// DeleteDirectory removes every entry of kind.
func (d *SQLiteDB) DeleteDirectory(ctx context.Context, kind lookup.Kind) (int64, error) {
	res, err := d.db.ExecContext(ctx, `DELETE FROM directory_entries WHERE kind = ?`, string(kind))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
