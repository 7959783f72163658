package engine

import (
	"time"

	"github.com/brainrot-tycoon/server/internal/events"
)

// adminEventActive reports whether the rarity boost is currently running.
func (e *Engine) adminEventActive() bool {
	return e.admin.Active && e.now().Before(e.admin.Until)
}

// HandleAdminEvent toggles the rarity boost. Only the owner of base 1 may
// trigger it. durationMs is clamped to the configured bounds; zero takes the
// default. Triggering while active restarts nothing: it toggles the event
// off. Must run on the engine goroutine.
func (e *Engine) HandleAdminEvent(playerID string, durationMs int) {
	p, ok := e.players[playerID]
	if !ok {
		return
	}
	if p.BaseNumber != 1 {
		e.bc.SendTo(playerID, EventAdminEventFailed, map[string]any{
			"reason": "only the base 1 owner can trigger events",
		})
		return
	}

	if e.adminEventActive() {
		e.admin = adminState{}
		e.record(events.New(events.EventTypeAdminEvent, playerID, "", map[string]any{
			"active": false,
		}))
		e.bc.Broadcast(EventAdminEvent, map[string]any{
			"active":      false,
			"triggeredBy": p.Username,
		})
		return
	}

	if durationMs == 0 {
		durationMs = e.cfg.AdminEventDefaultMs
	}
	if durationMs < e.cfg.AdminEventMinMs {
		durationMs = e.cfg.AdminEventMinMs
	}
	if durationMs > e.cfg.AdminEventMaxMs {
		durationMs = e.cfg.AdminEventMaxMs
	}
	d := time.Duration(durationMs) * time.Millisecond
	until := e.now().Add(d)
	e.admin = adminState{Active: true, TriggeredBy: p.Username, Until: until}

	e.log.Event("ADMIN_EVENT", "rarity boost by %s for %s", p.Username, d)
	e.record(events.New(events.EventTypeAdminEvent, playerID, "", map[string]any{
		"active":     true,
		"durationMs": durationMs,
	}))
	e.bc.Broadcast(EventAdminEvent, map[string]any{
		"active":      true,
		"duration":    durationMs,
		"triggeredBy": p.Username,
	})

	e.after(d, func() { e.expireAdminEvent(until) })
}

// expireAdminEvent ends the boost when its timer fires. The until comparison
// ignores timers from a boost that was already toggled off or replaced.
func (e *Engine) expireAdminEvent(until time.Time) {
	if !e.admin.Active || !e.admin.Until.Equal(until) {
		return
	}
	by := e.admin.TriggeredBy
	e.admin = adminState{}
	e.bc.Broadcast(EventAdminEvent, map[string]any{
		"active":      false,
		"triggeredBy": by,
	})
}
