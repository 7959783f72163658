package engine

import (
	"time"

	"github.com/brainrot-tycoon/server/internal/events"
)

// HandleLock engages the player's base lock, shielding their inventory from
// theft for the configured duration. The unlock is scheduled as a deferred
// command that re-checks state when it fires, so a player who left in the
// meantime never gets a ghost broadcast. Must run on the engine goroutine.
func (e *Engine) HandleLock(playerID string) {
	p, ok := e.players[playerID]
	if !ok {
		return
	}
	now := e.now()
	if p.LockEngaged(now) {
		if !p.IsBot {
			e.bc.SendTo(playerID, EventLockFailed, map[string]any{
				"reason": "base already locked",
			})
		}
		return
	}

	until := now.Add(e.cfg.BaseLockDuration())
	p.BaseLocked = true
	p.BaseLockUntil = until

	e.record(events.New(events.EventTypeBaseLock, playerID, "", map[string]any{
		"base": p.BaseNumber,
	}))
	e.bc.Broadcast(EventBaseLocked, map[string]any{
		"playerId": playerID,
		"baseId":   p.BaseID,
		"duration": e.cfg.BaseLockDuration().Milliseconds(),
	})
	e.broadcastBaseLocks()
	e.broadcastPlayers()

	e.after(e.cfg.BaseLockDuration(), func() {
		e.expireLock(playerID, until)
	})
}

// expireLock releases a lock when its timer fires. The until comparison
// guards against a newer lock armed after this timer was scheduled; only the
// matching timer broadcasts the unlock, so it fires exactly once.
func (e *Engine) expireLock(playerID string, until time.Time) {
	p, ok := e.players[playerID]
	if !ok {
		return
	}
	if !p.BaseLocked || !p.BaseLockUntil.Equal(until) {
		return
	}
	p.BaseLocked = false
	p.BaseLockUntil = time.Time{}

	e.record(events.New(events.EventTypeBaseUnlock, playerID, "", map[string]any{
		"base": p.BaseNumber,
	}))
	e.bc.Broadcast(EventBaseUnlocked, map[string]any{
		"playerId": playerID,
		"baseId":   p.BaseID,
	})
	e.broadcastBaseLocks()
	e.broadcastPlayers()
}
