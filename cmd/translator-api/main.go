// Package main provides the translator-api server.
//
// This is a standalone REST API server that translates raw GDS itineraries
// (SABRE, AMADEUS, KIU) into readable Spanish segments and prices quotes.
// The same operations can be served over NATS request/reply, and every
// translation can be recorded in a ClickHouse audit table.
//
// Usage:
//
//	translator-api [options]
//
// Options:
//
//	-port N                HTTP port (default: 8081, env: PORT)
//	-auth                  Enable API key authentication (env: AUTH_ENABLED)
//	-api-keys KEYS         Comma-separated list of valid API keys (env: API_KEYS)
//	-directory-source SRC  file, sqlite or postgres (default: file, env: DIRECTORY_SOURCE)
//	-airlines FILE         Airline directory file (env: AIRLINES_FILE)
//	-airports FILE         Airport directory file (env: AIRPORTS_FILE)
//	-sqlite PATH           SQLite directory database (env: SQLITE_PATH)
//	-pg-host HOST ...      PostgreSQL connection (env: POSTGRES_*)
//	-audit                 Record translations in ClickHouse (env: AUDIT_ENABLED)
//	-ch-host HOST ...      ClickHouse connection (env: CLICKHOUSE_*)
//	-nats-url URL          Serve the NATS subjects too (env: NATS_URL)
//	-nats-queue NAME       NATS queue group (default: gds-translator)
//	-workers N             Batch items translated concurrently (default: 1)
//	-max-batch N           Maximum items per batch (default: 10)
//	-log-level LEVEL       Log level (default: info)
//
// API Endpoints:
//
//	GET  /api/v1/health
//	GET  /api/v1/formats
//	POST /api/v1/itineraries/parse   {"raw_itinerary": "...", "gds_format": "SABRE"}
//	POST /api/v1/itineraries/batch   {"items": [{"id": "...", "raw_itinerary": "...", "gds_format": "..."}]}
//	POST /api/v1/quotes              {"base_fare": "100", "consolidator_fee": "25", "internal_fee": "15", "margin_percent": "10"}
//	GET  /api/v1/directories/{airlines|airports}/{code}
//
// NATS subjects: gds.itinerary.parse, gds.itinerary.batch, gds.quote.calculate.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"gds_translator/internal/api"
	"gds_translator/internal/batch"
	"gds_translator/internal/bus"
	"gds_translator/internal/config"
	"gds_translator/internal/logger"
	"gds_translator/internal/service"
	"gds_translator/internal/storage"
)

func main() {
	opts, err := config.Parse("translator-api", os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	log, err := logger.New(opts.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(opts, log); err != nil {
		log.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(opts *config.Options, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	airlines, airports, err := storage.LoadDirectories(ctx, opts.Storage)
	if err != nil {
		return fmt.Errorf("load directories: %w", err)
	}
	log.Info("directories loaded",
		zap.String("source", opts.Storage.Source),
		zap.Int("airlines", len(airlines)),
		zap.Int("airports", len(airports)))

	svcOpts := []service.Option{
		service.WithLogger(log),
		service.WithBatchOptions(batch.WithWorkers(opts.Workers), batch.WithMaxItems(opts.MaxBatchItems)),
	}

	if opts.Audit {
		ch, err := storage.OpenClickHouse(ctx, opts.Storage.ClickHouse)
		if err != nil {
			return fmt.Errorf("open audit log: %w", err)
		}
		defer ch.Close()
		if err := ch.CreateSchema(ctx); err != nil {
			return fmt.Errorf("audit schema: %w", err)
		}
		svcOpts = append(svcOpts, service.WithAudit(ch))
		log.Info("audit log enabled", zap.String("clickhouse", opts.Storage.ClickHouse.Host))
	}

	svc := service.New(airlines, airports, svcOpts...)

	if opts.NATSURL != "" {
		nc, err := bus.Connect(opts.NATSURL, log)
		if err != nil {
			return err
		}
		defer nc.Drain()

		b := bus.New(nc, svc, opts.NATSQueue, log)
		if err := b.Start(); err != nil {
			return err
		}
		defer b.Stop()
	}

	server := api.NewServer(svc, api.Config{
		Port:        opts.Port,
		AuthEnabled: opts.AuthEnabled,
		APIKeys:     opts.APIKeys,
	}, log)

	return server.Run(ctx)
}
