// Package config collects the settings of the translator binaries from
// command-line flags, with environment variables as defaults.
package config

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"gds_translator/internal/storage"
)

// Options holds the configuration values for the binaries.
type Options struct {
	// Port is the HTTP listen port.
	Port int

	// AuthEnabled turns on API-key checks for the HTTP API.
	AuthEnabled bool
	APIKeys     []string

	// Storage holds the directory source and database settings.
	Storage storage.Config

	// NATSURL enables the request/reply bridge when set.
	NATSURL   string
	NATSQueue string

	// Audit enables the ClickHouse translation log.
	Audit bool

	// Workers bounds concurrent batch items; MaxBatchItems caps batch size.
	Workers       int
	MaxBatchItems int

	LogLevel string
}

// Register binds the options to fs. Defaults come from the environment when
// the variable is set.
func (o *Options) Register(fs *flag.FlagSet) {
	fs.IntVar(&o.Port, "port", envOrDefaultInt("PORT", 8081), "HTTP port for API server")
	fs.BoolVar(&o.AuthEnabled, "auth", envOrDefaultBool("AUTH_ENABLED", false), "Enable API key authentication")
	fs.Func("api-keys", "Comma-separated list of valid API keys (env: API_KEYS)", func(s string) error {
		o.APIKeys = splitList(s)
		return nil
	})
	o.APIKeys = splitList(os.Getenv("API_KEYS"))

	RegisterDirectory(fs, &o.Storage)

	fs.BoolVar(&o.Audit, "audit", envOrDefaultBool("AUDIT_ENABLED", false), "Record translations in ClickHouse")
	RegisterClickHouse(fs, &o.Storage.ClickHouse)

	fs.StringVar(&o.NATSURL, "nats-url", envOrDefault("NATS_URL", ""), "NATS server URL (empty disables the bus)")
	fs.StringVar(&o.NATSQueue, "nats-queue", envOrDefault("NATS_QUEUE", "gds-translator"), "NATS queue group")

	fs.IntVar(&o.Workers, "workers", envOrDefaultInt("BATCH_WORKERS", 1), "Batch items translated concurrently")
	fs.IntVar(&o.MaxBatchItems, "max-batch", envOrDefaultInt("BATCH_MAX_ITEMS", 10), "Maximum items per batch")

	fs.StringVar(&o.LogLevel, "log-level", envOrDefault("LOG_LEVEL", "info"), "Log level")
}

// RegisterDirectory binds the directory source flags, including the
// PostgreSQL connection, to cfg.
func RegisterDirectory(fs *flag.FlagSet, cfg *storage.Config) {
	def := storage.DefaultConfig()

	fs.StringVar(&cfg.Source, "directory-source", envOrDefault("DIRECTORY_SOURCE", def.Source), "Directory source: file, sqlite or postgres")
	fs.StringVar(&cfg.AirlinesFile, "airlines", envOrDefault("AIRLINES_FILE", def.AirlinesFile), "Airline directory file (YAML or JSON)")
	fs.StringVar(&cfg.AirportsFile, "airports", envOrDefault("AIRPORTS_FILE", def.AirportsFile), "Airport directory file (YAML or JSON)")
	fs.StringVar(&cfg.SQLitePath, "sqlite", envOrDefault("SQLITE_PATH", def.SQLitePath), "SQLite directory database")

	fs.StringVar(&cfg.Postgres.Host, "pg-host", envOrDefault("POSTGRES_HOST", def.Postgres.Host), "PostgreSQL host")
	fs.IntVar(&cfg.Postgres.Port, "pg-port", envOrDefaultInt("POSTGRES_PORT", def.Postgres.Port), "PostgreSQL port")
	fs.StringVar(&cfg.Postgres.User, "pg-user", envOrDefault("POSTGRES_USER", def.Postgres.User), "PostgreSQL user")
	fs.StringVar(&cfg.Postgres.Password, "pg-password", envOrDefault("POSTGRES_PASSWORD", def.Postgres.Password), "PostgreSQL password")
	fs.StringVar(&cfg.Postgres.Database, "pg-database", envOrDefault("POSTGRES_DATABASE", def.Postgres.Database), "PostgreSQL database")
}

// RegisterClickHouse binds the ClickHouse connection flags to cfg.
func RegisterClickHouse(fs *flag.FlagSet, cfg *storage.ClickHouseConfig) {
	def := storage.DefaultConfig().ClickHouse

	fs.StringVar(&cfg.Host, "ch-host", envOrDefault("CLICKHOUSE_HOST", def.Host), "ClickHouse host")
	fs.IntVar(&cfg.Port, "ch-port", envOrDefaultInt("CLICKHOUSE_PORT", def.Port), "ClickHouse native port")
	fs.StringVar(&cfg.User, "ch-user", envOrDefault("CLICKHOUSE_USER", def.User), "ClickHouse user")
	fs.StringVar(&cfg.Password, "ch-password", envOrDefault("CLICKHOUSE_PASSWORD", def.Password), "ClickHouse password")
	fs.StringVar(&cfg.Database, "ch-database", envOrDefault("CLICKHOUSE_DATABASE", def.Database), "ClickHouse database")
}

// Parse registers the options on a new FlagSet named name and parses args.
func Parse(name string, args []string) (*Options, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	o := &Options{}
	o.Register(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return o, nil
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func envOrDefaultBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
