package engine

import (
	"strings"

	"github.com/brainrot-tycoon/server/internal/domain/player"
	"github.com/brainrot-tycoon/server/internal/events"
)

// HandleJoin admits a connection into the world: assigns the lowest free
// base, seeds starting money and daily quests, and pushes the initial state
// slices. The first joiner's requested mode becomes the session mode. Must
// run on the engine goroutine.
func (e *Engine) HandleJoin(playerID, username, mode string) {
	if _, ok := e.players[playerID]; ok {
		return
	}
	username = strings.TrimSpace(username)
	if username == "" {
		username = "Player"
	}

	switch m := Mode(mode); m {
	case ModeOnline, ModeSolo, ModeAI:
		if len(e.players) == 0 {
			e.mode = m
		}
	}

	if e.mode == ModeSolo || e.mode == ModeAI {
		// Single-human modes: any second human is turned away.
		for _, p := range e.players {
			if !p.IsBot {
				e.bc.SendTo(playerID, EventServerFull, map[string]any{
					"message": "session is single player",
				})
				e.bc.Disconnect(playerID)
				return
			}
		}
	}

	baseNum, ok := e.bases.Acquire()
	if !ok {
		e.bc.SendTo(playerID, EventServerFull, map[string]any{
			"message": "all bases are taken",
		})
		e.bc.Disconnect(playerID)
		return
	}

	now := e.now()
	p := player.New(playerID, username, baseNum, e.cfg.StartMoney, now)
	e.players[playerID] = p
	e.assignQuests(p)

	e.log.Info.Printf("player joined: %s (%s) -> base %d", username, playerID, baseNum)
	e.record(events.New(events.EventTypeJoin, playerID, "", map[string]any{
		"username": username,
		"base":     baseNum,
	}))

	e.bc.SendTo(playerID, EventAssignBase, map[string]any{
		"baseId":       p.BaseID,
		"baseNumber":   baseNum,
		"playerId":     playerID,
		"isOwner":      baseNum == 1,
		"dataRestored": false,
	})
	e.broadcastPlayers()
	e.broadcastRots()
	e.sendMoney(p)

	// Clients race their scene setup against the first state push; a short
	// follow-up broadcast covers the ones that missed it.
	e.after(e.cfg.JoinRebroadcast(), func() {
		if _, still := e.players[playerID]; still {
			e.broadcastPlayers()
			e.broadcastRots()
		}
	})

	if e.mode == ModeAI && !p.IsBot {
		e.spawnBots()
	}
}

// HandleDisconnect removes a player, clears their base and releases their
// claimed collectibles. Must run on the engine goroutine.
func (e *Engine) HandleDisconnect(playerID string) {
	p, ok := e.players[playerID]
	if !ok {
		return
	}
	delete(e.players, playerID)

	removed := 0
	for id, r := range e.rots {
		if r.ClaimedBy == playerID {
			delete(e.rots, id)
			removed++
		}
	}

	e.bases.Release(p.BaseNumber)
	e.log.Info.Printf("player left: %s (%s), base %d freed, %d claimed rots removed",
		p.Username, playerID, p.BaseNumber, removed)
	e.record(events.New(events.EventTypeDisconnect, playerID, "", map[string]any{
		"base": p.BaseNumber,
	}))

	e.bc.Broadcast(EventClearBaseBrainrots, map[string]any{"baseId": p.BaseID})
	e.broadcastPlayers()
	e.broadcastRots()
}

// HandleHeartbeat refreshes the inactivity clock. Must run on the engine
// goroutine.
func (e *Engine) HandleHeartbeat(playerID string) {
	if p, ok := e.players[playerID]; ok {
		p.LastHeartbeat = e.now()
	}
}

// HandleChat relays a chat line, rate limited per player. Must run on the
// engine goroutine.
func (e *Engine) HandleChat(playerID, text string) {
	p, ok := e.players[playerID]
	if !ok {
		return
	}
	now := e.now()
	if now.Sub(p.LastChat) < e.cfg.ChatMinInterval() {
		e.bc.SendTo(playerID, EventChatError, map[string]any{
			"reason": "sending messages too fast",
		})
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	// Truncate on a rune boundary so a multi-byte character at the limit
	// never turns into invalid UTF-8.
	if r := []rune(text); len(r) > e.cfg.ChatMaxLen {
		text = string(r[:e.cfg.ChatMaxLen])
	}
	p.LastChat = now

	e.record(events.New(events.EventTypeChat, playerID, "", map[string]any{"len": len(text)}))
	e.bc.Broadcast(EventChatMessage, map[string]any{
		"playerId": playerID,
		"username": p.Username,
		"message":  text,
	})
}

// reapInactive drops players whose heartbeat went silent, freeing their base
// for the next joiner. Bots never heartbeat and are exempt.
func (e *Engine) reapInactive() {
	now := e.now()
	for id, p := range e.players {
		if p.IsBot {
			continue
		}
		if now.Sub(p.LastHeartbeat) <= e.cfg.HeartbeatTimeout() {
			continue
		}
		e.log.Warn.Printf("reaping inactive player %s (%s)", p.Username, id)
		e.met.RecordReapedPlayer()
		e.record(events.New(events.EventTypeReaped, id, "", nil))
		e.bc.Disconnect(id)
		e.HandleDisconnect(id)
	}
}
