package engine

import (
	"math/rand"
	"testing"
	"time"

	"github.com/brainrot-tycoon/server/internal/events"
	"github.com/brainrot-tycoon/server/internal/platform/logger"
	"github.com/brainrot-tycoon/server/internal/platform/metrics"
	"github.com/brainrot-tycoon/server/internal/platform/tuning"
)

// sent is one recorded outbound message.
type sent struct {
	To      string // empty for broadcasts
	Event   string
	Payload any
}

// recorder is a Broadcaster that captures everything for assertions.
type recorder struct {
	Broadcasts   []sent
	Unicasts     []sent
	Disconnected []string
}

func (r *recorder) Broadcast(event string, payload any) {
	r.Broadcasts = append(r.Broadcasts, sent{Event: event, Payload: payload})
}

func (r *recorder) SendTo(playerID, event string, payload any) {
	r.Unicasts = append(r.Unicasts, sent{To: playerID, Event: event, Payload: payload})
}

func (r *recorder) Disconnect(playerID string) {
	r.Disconnected = append(r.Disconnected, playerID)
}

// lastTo returns the most recent unicast of an event to a player.
func (r *recorder) lastTo(playerID, event string) (sent, bool) {
	for i := len(r.Unicasts) - 1; i >= 0; i-- {
		if r.Unicasts[i].To == playerID && r.Unicasts[i].Event == event {
			return r.Unicasts[i], true
		}
	}
	return sent{}, false
}

func (r *recorder) countBroadcast(event string) int {
	n := 0
	for _, s := range r.Broadcasts {
		if s.Event == event {
			n++
		}
	}
	return n
}

func (r *recorder) reset() {
	r.Broadcasts = nil
	r.Unicasts = nil
	r.Disconnected = nil
}

// fakeClock replaces the engine clock so tests control time.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// fakeTimers captures deferred callbacks instead of arming real timers.
type fakeTimers struct {
	scheduled []struct {
		D  time.Duration
		Fn func()
	}
}

func (ft *fakeTimers) after(d time.Duration, fn func()) {
	ft.scheduled = append(ft.scheduled, struct {
		D  time.Duration
		Fn func()
	}{d, fn})
}

// fireAll runs every captured callback once, in order.
func (ft *fakeTimers) fireAll() {
	pending := ft.scheduled
	ft.scheduled = nil
	for _, s := range pending {
		s.Fn()
	}
}

func newTestEngine(t *testing.T, mode Mode) (*Engine, *recorder, *fakeClock, *fakeTimers) {
	t.Helper()
	rec := &recorder{}
	clk := &fakeClock{t: time.Unix(1_000_000, 0)}
	ft := &fakeTimers{}
	e := New(tuning.Default(), logger.NewLogger(), events.NewEventLog(nil),
		rec, metrics.NewCollector(), mode)
	e.now = clk.Now
	e.after = ft.after
	e.rng = rand.New(rand.NewSource(1))
	return e, rec, clk, ft
}

// join is shorthand for admitting a player in tests, keeping the engine's
// configured mode.
func join(e *Engine, id, name string) {
	e.HandleJoin(id, name, "")
}
