package store

const (
	// BreathingRateTableSQL creates the breathing_rate series table.
	BreathingRateTableSQL = `
		CREATE TABLE IF NOT EXISTS breathing_rate (
			timestamp DateTime64(3),
			session_id String,
			bpm Float64,
			source String
		) ENGINE = MergeTree()
		ORDER BY (session_id, timestamp)
		PARTITION BY toYYYYMM(timestamp)
	`

	// CaptureSessionsTableSQL creates the capture_sessions table.
	CaptureSessionsTableSQL = `
		CREATE TABLE IF NOT EXISTS capture_sessions (
			session_id String,
			started_at DateTime64(3),
			broker String,
			topic String
		) ENGINE = ReplacingMergeTree(started_at)
		ORDER BY session_id
	`
)

// AllTables returns the DDL for every table the sink needs, in creation
// order.
func AllTables() []string {
	return []string{
		BreathingRateTableSQL,
		CaptureSessionsTableSQL,
	}
}
