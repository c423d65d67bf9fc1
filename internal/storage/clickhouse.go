package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/google/uuid"
)

// ClickHouseConfig holds ClickHouse connection settings.
type ClickHouseConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

// ClickHouseDB wraps a ClickHouse connection for the translation audit log.
type ClickHouseDB struct {
	conn driver.Conn
}

// OpenClickHouse opens a connection to ClickHouse.
func OpenClickHouse(ctx context.Context, cfg ClickHouseConfig) (*ClickHouseDB, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.User,
			Password: cfg.Password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		DialTimeout:     10 * time.Second,
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Hour,
	})
	if err != nil {
		return nil, fmt.Errorf("open clickhouse: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping clickhouse: %w", err)
	}

	return &ClickHouseDB{conn: conn}, nil
}

// Close closes the ClickHouse connection.
func (d *ClickHouseDB) Close() error {
	return d.conn.Close()
}

// CreateSchema creates the audit table.
func (d *ClickHouseDB) CreateSchema(ctx context.Context) error {
	err := d.conn.Exec(ctx, `CREATE TABLE IF NOT EXISTS translation_events (
		id              UUID,
		recorded_at     DateTime64(3),
		batch_id        String,
		item_id         String,
		gds_format      LowCardinality(String),
		lines           UInt32,
		segments        UInt32,
		line_errors     UInt32,
		success         Bool,
		error           String
	)
	ENGINE = MergeTree()
	PARTITION BY toYYYYMM(recorded_at)
	ORDER BY (gds_format, recorded_at, id)`)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// TranslationEvent is one audited itinerary translation.
type TranslationEvent struct {
	ID         uuid.UUID
	RecordedAt time.Time
	BatchID    string // Empty outside a batch.
	ItemID     string
	Format     string
	Lines      uint32
	Segments   uint32
	LineErrors uint32
	Success    bool
	Error      string
}

// RecordTranslations appends events to the audit log in one batch.
func (d *ClickHouseDB) RecordTranslations(ctx context.Context, events []TranslationEvent) error {
	if len(events) == 0 {
		return nil
	}

	batch, err := d.conn.PrepareBatch(ctx, `
		INSERT INTO translation_events (id, recorded_at, batch_id, item_id, gds_format, lines, segments, line_errors, success, error)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, e := range events {
		err := batch.Append(e.ID, e.RecordedAt, e.BatchID, e.ItemID, e.Format, e.Lines, e.Segments, e.LineErrors, e.Success, e.Error)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

// FormatStats summarises audited translations for one GDS format.
type FormatStats struct {
	Format       string
	Translations uint64
	Failed       uint64
	Segments     uint64
	LineErrors   uint64
}

// StatsByFormat aggregates the audit log per GDS format.
func (d *ClickHouseDB) StatsByFormat(ctx context.Context) ([]FormatStats, error) {
	rows, err := d.conn.Query(ctx, `
		SELECT gds_format, count(), countIf(NOT success), sum(segments), sum(line_errors)
		FROM translation_events
		GROUP BY gds_format
		ORDER BY gds_format
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []FormatStats
	for rows.Next() {
		var s FormatStats
		if err := rows.Scan(&s.Format, &s.Translations, &s.Failed, &s.Segments, &s.LineErrors); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
