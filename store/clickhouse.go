package store

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	breath "github.com/rcarcasses/challenge-biosignal"
)

// DB is the ClickHouse sink for live breathing-rate series.
type DB struct {
	conn driver.Conn
}

// Open connects to ClickHouse, verifies the connection, and bootstraps the
// schema.
func Open(addr, database, username, password string) (*DB, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: database,
			Username: username,
			Password: password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		DialTimeout: 5 * time.Second,
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("connect to ClickHouse: %w", err)
	}
	if err := conn.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("ping ClickHouse: %w", err)
	}
	log.Printf("Connected to ClickHouse at %s", addr)

	db := &DB{conn: conn}
	if err := db.InitSchema(context.Background()); err != nil {
		return nil, err
	}
	return db, nil
}

// InitSchema creates the tables if they do not exist.
func (db *DB) InitSchema(ctx context.Context) error {
	for _, tableSQL := range AllTables() {
		if err := db.conn.Exec(ctx, tableSQL); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

// SaveSession records the start of a capture session.
func (db *DB) SaveSession(ctx context.Context, sessionID string, startedAt time.Time, broker, topic string) error {
	query := `
		INSERT INTO capture_sessions (session_id, started_at, broker, topic)
		VALUES (?, ?, ?, ?)
	`
	if err := db.conn.Exec(ctx, query, sessionID, startedAt, broker, topic); err != nil {
		return fmt.Errorf("insert capture session: %w", err)
	}
	return nil
}

// SaveRates appends a batch of rate samples for a session. An empty batch
// is a no-op.
func (db *DB) SaveRates(ctx context.Context, sessionID, source string, rates []breath.RateSample) error {
	if len(rates) == 0 {
		return nil
	}
	batch, err := db.conn.PrepareBatch(ctx, "INSERT INTO breathing_rate (timestamp, session_id, bpm, source)")
	if err != nil {
		return fmt.Errorf("prepare rate batch: %w", err)
	}
	for _, r := range rates {
		ts := time.UnixMilli(int64(math.Round(r.Timestamp * 1000.0)))
		if err := batch.Append(ts, sessionID, r.BPM, source); err != nil {
			return fmt.Errorf("append rate sample: %w", err)
		}
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("send rate batch: %w", err)
	}
	return nil
}

// Close releases the connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
