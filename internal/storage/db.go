package storage

import (
	"context"
	"errors"
	"fmt"

	"gds_translator/internal/lookup"
)

// Directory sources.
const (
	SourceFile     = "file"
	SourceSQLite   = "sqlite"
	SourcePostgres = "postgres"
)

// ErrUnknownSource is returned for a directory source outside the list above.
var ErrUnknownSource = errors.New("unknown directory source")

// Config holds the settings for every backing store.
type Config struct {
	Source       string // Where code directories are read from.
	AirlinesFile string
	AirportsFile string
	SQLitePath   string
	Postgres     PostgresConfig
	ClickHouse   ClickHouseConfig
}

// DefaultConfig returns a configuration with default local development settings.
func DefaultConfig() Config {
	return Config{
		Source:       SourceFile,
		AirlinesFile: "data/airlines.yaml",
		AirportsFile: "data/airports.yaml",
		SQLitePath:   "directories.db",
		ClickHouse: ClickHouseConfig{
			Host:     "localhost",
			Port:     9000,
			Database: "gds",
			User:     "default",
			Password: "",
		},
		Postgres: PostgresConfig{
			Host:     "localhost",
			Port:     5432,
			Database: "gds_directories",
			User:     "gds",
			Password: "gds",
		},
	}
}

// DirectoryStore is a database holding airline and airport directories.
type DirectoryStore interface {
	ImportDirectory(ctx context.Context, kind lookup.Kind, dir lookup.Directory) (int, error)
	LoadDirectory(ctx context.Context, kind lookup.Kind) (lookup.Directory, error)
	DeleteDirectory(ctx context.Context, kind lookup.Kind) (int64, error)
	Close() error
}

// OpenDirectoryStore opens the database named by cfg.Source and makes sure
// its schema exists.
func OpenDirectoryStore(ctx context.Context, cfg Config) (DirectoryStore, error) {
	switch cfg.Source {
	case SourceSQLite:
		db, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("sqlite: %w", err)
		}
		return db, nil
	case SourcePostgres:
		pg, err := OpenPostgres(ctx, cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		if err := pg.CreateSchema(ctx); err != nil {
			_ = pg.Close()
			return nil, fmt.Errorf("postgres schema: %w", err)
		}
		return pg, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Source)
	}
}

// LoadDirectories reads both directories from the configured source.
func LoadDirectories(ctx context.Context, cfg Config) (airlines, airports lookup.Directory, err error) {
	if cfg.Source == SourceFile {
		if airlines, err = loadOptionalFile(cfg.AirlinesFile); err != nil {
			return nil, nil, fmt.Errorf("airlines: %w", err)
		}
		if airports, err = loadOptionalFile(cfg.AirportsFile); err != nil {
			return nil, nil, fmt.Errorf("airports: %w", err)
		}
		return airlines, airports, nil
	}

	store, err := OpenDirectoryStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	defer store.Close()

	if airlines, err = store.LoadDirectory(ctx, lookup.Airlines); err != nil {
		return nil, nil, fmt.Errorf("airlines: %w", err)
	}
	if airports, err = store.LoadDirectory(ctx, lookup.Airports); err != nil {
		return nil, nil, fmt.Errorf("airports: %w", err)
	}
	return airlines, airports, nil
}

// loadOptionalFile treats an unset path as an empty directory.
func loadOptionalFile(path string) (lookup.Directory, error) {
	if path == "" {
		return lookup.Directory{}, nil
	}
	return lookup.LoadFile(path)
}
