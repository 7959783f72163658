package engine

import (
	"math"
	"testing"
	"time"
)

func TestMoveAccepted(t *testing.T) {
	e, rec, clk, _ := newTestEngine(t, ModeOnline)
	join(e, "p1", "alice")
	p := e.players["p1"]
	startX, startY := p.X, p.Y
	rec.reset()

	clk.Advance(50 * time.Millisecond)
	e.HandleMove("p1", 5, 3)

	if p.X != startX+5 || p.Y != startY+3 {
		t.Errorf("position (%v, %v), want (%v, %v)", p.X, p.Y, startX+5, startY+3)
	}
	if p.LastAcceptedX != p.X || p.LastAcceptedY != p.Y {
		t.Error("accepted anchor should track the applied position")
	}
	if rec.countBroadcast(EventUpdatePlayers) != 1 {
		t.Error("accepted move should broadcast players")
	}
}

func TestMoveRejectsMalformedInput(t *testing.T) {
	e, rec, clk, _ := newTestEngine(t, ModeOnline)
	join(e, "p1", "alice")
	p := e.players["p1"]
	x, y := p.X, p.Y

	for _, delta := range [][2]float64{
		{math.NaN(), 0},
		{math.Inf(1), 0},
		{0, 100},
		{-16, 0},
	} {
		rec.reset()
		clk.Advance(50 * time.Millisecond)
		e.HandleMove("p1", delta[0], delta[1])
		if p.X != x || p.Y != y {
			t.Fatalf("delta %v moved the player", delta)
		}
		msg, ok := rec.lastTo("p1", EventMoveRejected)
		if !ok {
			t.Fatalf("delta %v: no rejection sent", delta)
		}
		if msg.Payload.(map[string]any)["reason"] != "invalid movement input" {
			t.Errorf("delta %v: wrong reason %v", delta, msg.Payload)
		}
	}
}

func TestMoveRateLimitIsSilent(t *testing.T) {
	e, rec, clk, _ := newTestEngine(t, ModeOnline)
	join(e, "p1", "alice")
	p := e.players["p1"]

	clk.Advance(50 * time.Millisecond)
	e.HandleMove("p1", 5, 0)
	x := p.X
	rec.reset()

	clk.Advance(5 * time.Millisecond) // under the 20ms floor
	e.HandleMove("p1", 5, 0)

	if p.X != x {
		t.Error("flooded move should not apply")
	}
	if len(rec.Unicasts) != 0 || len(rec.Broadcasts) != 0 {
		t.Error("flooded move should be dropped silently")
	}
}

func TestMoveRejectsTeleport(t *testing.T) {
	e, rec, clk, _ := newTestEngine(t, ModeOnline)
	join(e, "p1", "alice")
	p := e.players["p1"]
	x, y := p.X, p.Y
	rec.reset()

	// Each component is inside the per-axis bound but the distance is not.
	clk.Advance(50 * time.Millisecond)
	e.HandleMove("p1", 10, 10)

	if p.X != x || p.Y != y {
		t.Error("teleport should not move the player")
	}
	msg, ok := rec.lastTo("p1", EventMoveRejected)
	if !ok {
		t.Fatal("no rejection sent")
	}
	if msg.Payload.(map[string]any)["reason"] != "movement too fast" {
		t.Errorf("wrong reason: %v", msg.Payload)
	}
}

func TestMoveClampsToMapAndAnchorsThere(t *testing.T) {
	e, _, clk, _ := newTestEngine(t, ModeOnline)
	join(e, "p1", "alice")
	p := e.players["p1"]
	p.X, p.Y = 2, 2
	p.LastAcceptedX, p.LastAcceptedY = 2, 2

	clk.Advance(50 * time.Millisecond)
	e.HandleMove("p1", -7, -7)

	if p.X != 0 || p.Y != 0 {
		t.Errorf("position (%v, %v), want clamped to (0, 0)", p.X, p.Y)
	}
	if p.LastAcceptedX != 0 || p.LastAcceptedY != 0 {
		t.Error("anchor should hold the clamped position")
	}
}

func TestMoveUnknownPlayerIgnored(t *testing.T) {
	e, rec, _, _ := newTestEngine(t, ModeOnline)
	e.HandleMove("ghost", 1, 1)
	if len(rec.Broadcasts) != 0 || len(rec.Unicasts) != 0 {
		t.Error("unknown player should be ignored")
	}
}
