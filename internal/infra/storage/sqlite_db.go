// Package storage persists the event log and derived player statistics in
// SQLite, and archives periodic world snapshots as zstd-compressed JSONL.
package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitSQLite opens (or creates) the audit database and ensures the schema.
func InitSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Single writer; the event stream is append-heavy.
	db.SetMaxOpenConns(1)

	schema := `
	CREATE TABLE IF NOT EXISTS game_events (
		id         TEXT PRIMARY KEY,
		timestamp  DATETIME NOT NULL,
		type       TEXT NOT NULL,
		actor_id   TEXT NOT NULL,
		target_id  TEXT,
		payload    TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_events_actor ON game_events(actor_id);
	CREATE INDEX IF NOT EXISTS idx_events_type  ON game_events(type);

	CREATE TABLE IF NOT EXISTS player_stats (
		actor_id  TEXT PRIMARY KEY,
		collected INTEGER NOT NULL DEFAULT 0,
		sold      INTEGER NOT NULL DEFAULT 0,
		stolen    INTEGER NOT NULL DEFAULT 0,
		upgrades  INTEGER NOT NULL DEFAULT 0,
		quests    INTEGER NOT NULL DEFAULT 0
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return db, nil
}
