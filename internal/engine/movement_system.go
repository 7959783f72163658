package engine

import (
	"github.com/brainrot-tycoon/server/internal/domain/catalog"
	"github.com/brainrot-tycoon/server/internal/domain/rules"
)

// HandleMove validates and applies a movement delta. Checks run in order:
// well-formed input, rate limit, teleport distance, then the map clamp. The
// clamped position becomes the new anchor for the next teleport check. Must
// run on the engine goroutine.
func (e *Engine) HandleMove(playerID string, dx, dy float64) {
	p, ok := e.players[playerID]
	if !ok {
		return
	}

	if !rules.ValidDelta(dx, dy, e.cfg.MaxMoveDelta) {
		e.met.RecordRejectedMove()
		e.bc.SendTo(playerID, EventMoveRejected, map[string]any{
			"reason": "invalid movement input",
			"x":      p.LastAcceptedX,
			"y":      p.LastAcceptedY,
		})
		return
	}

	now := e.now()
	if now.Sub(p.LastMoveTime) < e.cfg.MoveMinInterval() {
		// Flooding gets silently dropped; the client reconciles off the
		// next updatePlayers push.
		return
	}

	nx, ny := p.LastAcceptedX+dx, p.LastAcceptedY+dy
	if rules.Distance(p.LastAcceptedX, p.LastAcceptedY, nx, ny) > e.cfg.MaxMoveDistance {
		e.met.RecordRejectedMove()
		e.bc.SendTo(playerID, EventMoveRejected, map[string]any{
			"reason": "movement too fast",
			"x":      p.LastAcceptedX,
			"y":      p.LastAcceptedY,
		})
		return
	}

	nx, ny = rules.ClampPosition(nx, ny, catalog.MapWidth, catalog.MapHeight, catalog.AvatarSize)
	p.X, p.Y = nx, ny
	p.LastAcceptedX, p.LastAcceptedY = nx, ny
	p.LastMoveTime = now

	e.broadcastPlayers()
}
