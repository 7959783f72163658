package network

import (
	"encoding/json"
	"net/http"

	"github.com/brainrot-tycoon/server/internal/events"
)

// ReplayAPI exposes the event log over HTTP for debugging and audits.
type ReplayAPI struct {
	el *events.EventLog
}

// NewReplayAPI wraps an event log.
func NewReplayAPI(el *events.EventLog) *ReplayAPI {
	return &ReplayAPI{el: el}
}

// HandleReplay serves GET /api/replay. Optional query filters: actor, type.
func (a *ReplayAPI) HandleReplay(w http.ResponseWriter, r *http.Request) {
	var evts []events.GameEvent
	switch {
	case r.URL.Query().Get("actor") != "":
		evts = a.el.GetByActor(r.URL.Query().Get("actor"))
	case r.URL.Query().Get("type") != "":
		evts = a.el.GetByType(events.EventType(r.URL.Query().Get("type")))
	default:
		evts = a.el.Replay()
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"count":  len(evts),
		"events": evts,
	})
}

// HandleStats serves GET /api/replay/stats: per-type event counts.
func (a *ReplayAPI) HandleStats(w http.ResponseWriter, r *http.Request) {
	counts := make(map[events.EventType]int)
	for _, ev := range a.el.Replay() {
		counts[ev.Type]++
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"total":   a.el.Len(),
		"by_type": counts,
	})
}
