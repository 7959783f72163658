package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/brainrot-tycoon/server/internal/events"
	"github.com/brainrot-tycoon/server/internal/platform/logger"
	"github.com/brainrot-tycoon/server/internal/platform/metrics"
)

// statColumns maps an event type to the player_stats column it bumps.
var statColumns = map[events.EventType]string{
	events.EventTypeDelivery:      "collected",
	events.EventTypeSell:          "sold",
	events.EventTypeSteal:         "stolen",
	events.EventTypeUpgrade:       "upgrades",
	events.EventTypeQuestComplete: "quests",
}

// SQLiteEventStore persists game events and keeps per-player counters
// derived from them. It implements events.EventPersister.
type SQLiteEventStore struct {
	db  *sql.DB
	log *logger.Logger
	met *metrics.Collector
}

// NewSQLiteEventStore wraps an initialized database.
func NewSQLiteEventStore(db *sql.DB, log *logger.Logger, met *metrics.Collector) *SQLiteEventStore {
	return &SQLiteEventStore{db: db, log: log, met: met}
}

// Append writes one event and bumps the derived stats row when the event
// type feeds one.
func (s *SQLiteEventStore) Append(ev events.GameEvent) error {
	payload, err := json.Marshal(ev.Payload)
	if err != nil {
		payload = []byte("null")
	}
	_, err = s.db.Exec(
		`INSERT INTO game_events (id, timestamp, type, actor_id, target_id, payload)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.Timestamp, string(ev.Type), ev.ActorID, ev.TargetID, string(payload),
	)
	if err != nil {
		s.met.RecordEventWriteError()
		s.log.Error.Printf("event write %s: %v", ev.Type, err)
		return fmt.Errorf("insert event: %w", err)
	}

	if col, ok := statColumns[ev.Type]; ok {
		// Column name comes from the fixed table above, never from input.
		q := fmt.Sprintf(
			`INSERT INTO player_stats (actor_id, %[1]s) VALUES (?, 1)
			 ON CONFLICT(actor_id) DO UPDATE SET %[1]s = %[1]s + 1`, col)
		if _, err := s.db.Exec(q, ev.ActorID); err != nil {
			s.met.RecordEventWriteError()
			s.log.Error.Printf("stats bump %s: %v", col, err)
		}
	}
	return nil
}

// EventsByActor loads the stored history for one actor, oldest first.
func (s *SQLiteEventStore) EventsByActor(actorID string) ([]events.GameEvent, error) {
	rows, err := s.db.Query(
		`SELECT id, timestamp, type, actor_id, target_id, payload
		 FROM game_events WHERE actor_id = ? ORDER BY timestamp`, actorID)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// EventsByType loads the stored history for one event type, oldest first.
func (s *SQLiteEventStore) EventsByType(t events.EventType) ([]events.GameEvent, error) {
	rows, err := s.db.Query(
		`SELECT id, timestamp, type, actor_id, target_id, payload
		 FROM game_events WHERE type = ? ORDER BY timestamp`, string(t))
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]events.GameEvent, error) {
	var out []events.GameEvent
	for rows.Next() {
		var ev events.GameEvent
		var typ, payload string
		var target sql.NullString
		if err := rows.Scan(&ev.ID, &ev.Timestamp, &typ, &ev.ActorID, &target, &payload); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.Type = events.EventType(typ)
		ev.TargetID = target.String
		if payload != "" && payload != "null" {
			var p any
			if err := json.Unmarshal([]byte(payload), &p); err == nil {
				ev.Payload = p
			}
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// PlayerStats is one row of the derived counters table.
type PlayerStats struct {
	ActorID   string `json:"actorId"`
	Collected int    `json:"collected"`
	Sold      int    `json:"sold"`
	Stolen    int    `json:"stolen"`
	Upgrades  int    `json:"upgrades"`
	Quests    int    `json:"quests"`
}

// Stats returns the derived counters for one actor. A player with no
// recorded actions gets a zero row.
func (s *SQLiteEventStore) Stats(actorID string) (PlayerStats, error) {
	st := PlayerStats{ActorID: actorID}
	err := s.db.QueryRow(
		`SELECT collected, sold, stolen, upgrades, quests
		 FROM player_stats WHERE actor_id = ?`, actorID,
	).Scan(&st.Collected, &st.Sold, &st.Stolen, &st.Upgrades, &st.Quests)
	if err == sql.ErrNoRows {
		return st, nil
	}
	if err != nil {
		return st, fmt.Errorf("query stats: %w", err)
	}
	return st, nil
}
