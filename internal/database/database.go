// Package database opens the SQLite file that stores carousel images.
//
// The schema is a single table created on first start; there are no
// migrations.
package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/deppfellow/tacomemo/internal/config"
	"github.com/jmoiron/sqlx"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	// Registers the "sqlite" driver.
	_ "modernc.org/sqlite"
)

// CarouselTable is the only table managed by this service.
const CarouselTable = "carousel_images"

const schema = `CREATE TABLE IF NOT EXISTS carousel_images (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	image_path TEXT
)`

// DatabasePingTimeout is the number of seconds allowed for the startup ping.
const DatabasePingTimeout = 10

// Database wraps the sqlx handle and a logger.
type Database struct {
	DB  *sqlx.DB
	log *zerolog.Logger

	slowQueryThreshold time.Duration
}

// New opens (creating if needed) the SQLite file at cfg.Database.Path,
// verifies it answers and bootstraps the schema.
func New(cfg *config.Config, logger *zerolog.Logger) (*Database, error) {
	path := cfg.Database.Path

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)

	database := &Database{
		DB:  db,
		log: logger,
	}
	if cfg.Observability != nil {
		database.slowQueryThreshold = cfg.Observability.Logging.SlowQueryThreshold
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err = db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to bootstrap schema: %w", err)
	}

	logger.Info().Str("path", path).Msg("connected to the database")

	return database, nil
}

// Ping checks that the database still answers.
func (db *Database) Ping(ctx context.Context) error {
	return db.DB.PingContext(ctx)
}

// Segment times one store operation. The returned func must be called when
// the operation finishes: it ends the New Relic datastore segment (when ctx
// carries a transaction) and logs queries slower than the configured
// threshold.
func (db *Database) Segment(ctx context.Context, operation, query string) func() {
	start := time.Now()

	var seg *newrelic.DatastoreSegment
	if txn := newrelic.FromContext(ctx); txn != nil {
		seg = &newrelic.DatastoreSegment{
			StartTime:          txn.StartSegmentNow(),
			Product:            newrelic.DatastoreSQLite,
			Collection:         CarouselTable,
			Operation:          operation,
			ParameterizedQuery: query,
		}
	}

	return func() {
		if seg != nil {
			seg.End()
		}

		elapsed := time.Since(start)
		if db.slowQueryThreshold > 0 && elapsed > db.slowQueryThreshold {
			db.log.Warn().
				Str("operation", operation).
				Dur("duration", elapsed).
				Str("query", query).
				Msg("slow query")
		}
	}
}

// Close releases the underlying connections.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection")
	return db.DB.Close()
}
