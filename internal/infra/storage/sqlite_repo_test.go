package storage

import (
	"path/filepath"
	"testing"

	"github.com/brainrot-tycoon/server/internal/events"
	"github.com/brainrot-tycoon/server/internal/platform/logger"
	"github.com/brainrot-tycoon/server/internal/platform/metrics"
)

func newTestStore(t *testing.T) *SQLiteEventStore {
	t.Helper()
	db, err := InitSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("init sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSQLiteEventStore(db, logger.NewLogger(), metrics.NewCollector())
}

func TestAppendAndQuery(t *testing.T) {
	s := newTestStore(t)

	evts := []events.GameEvent{
		events.New(events.EventTypeJoin, "p1", "", map[string]any{"base": 1}),
		events.New(events.EventTypeSteal, "p1", "p2", nil),
		events.New(events.EventTypeJoin, "p2", "", nil),
	}
	for _, ev := range evts {
		if err := s.Append(ev); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byActor, err := s.EventsByActor("p1")
	if err != nil {
		t.Fatalf("by actor: %v", err)
	}
	if len(byActor) != 2 {
		t.Errorf("actor p1 has %d events, want 2", len(byActor))
	}
	if byActor[1].TargetID != "p2" {
		t.Errorf("target = %q, want p2", byActor[1].TargetID)
	}

	byType, err := s.EventsByType(events.EventTypeJoin)
	if err != nil {
		t.Fatalf("by type: %v", err)
	}
	if len(byType) != 2 {
		t.Errorf("JOIN has %d events, want 2", len(byType))
	}
}

func TestPayloadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	if err := s.Append(events.New(events.EventTypeUpgrade, "p1", "", map[string]any{
		"type": "capacity", "level": 2,
	})); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := s.EventsByActor("p1")
	if err != nil || len(got) != 1 {
		t.Fatalf("load: %v, %d events", err, len(got))
	}
	payload, ok := got[0].Payload.(map[string]any)
	if !ok || payload["type"] != "capacity" {
		t.Errorf("payload = %#v", got[0].Payload)
	}
}

func TestStatsDerivedFromEvents(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 3; i++ {
		_ = s.Append(events.New(events.EventTypeDelivery, "p1", "", nil))
	}
	_ = s.Append(events.New(events.EventTypeSell, "p1", "", nil))
	_ = s.Append(events.New(events.EventTypeChat, "p1", "", nil)) // no stat column

	st, err := s.Stats("p1")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Collected != 3 || st.Sold != 1 || st.Stolen != 0 {
		t.Errorf("stats = %+v", st)
	}
}

func TestStatsUnknownActorIsZero(t *testing.T) {
	s := newTestStore(t)
	st, err := s.Stats("nobody")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Collected != 0 || st.Sold != 0 {
		t.Errorf("stats = %+v, want zeros", st)
	}
}
