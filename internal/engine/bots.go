package engine

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/brainrot-tycoon/server/internal/domain/catalog"
	"github.com/brainrot-tycoon/server/internal/domain/player"
	"github.com/brainrot-tycoon/server/internal/domain/rules"
)

// Bot behavior knobs. Bots move faster than the per-message human limit
// because their intent arrives once per bot tick, not per frame.
const (
	botSpeed       = 3.0
	botBuyRadius   = 100.0
	botStealChance = 0.3
)

var botNames = []string{"RotBot", "SigmaBot", "OhioBot", "RizzBot", "GyattBot"}

// spawnBots fills every remaining base with a bot player. Bots share the
// normal join path state: a base, starting money, quests and stats.
func (e *Engine) spawnBots() {
	i := 0
	for e.bases.Available() > 0 {
		baseNum, ok := e.bases.Acquire()
		if !ok {
			break
		}
		name := fmt.Sprintf("%s-%d", botNames[i%len(botNames)], baseNum)
		i++
		p := player.New(uuid.NewString(), name, baseNum, e.cfg.StartMoney, e.now())
		p.IsBot = true
		e.players[p.ID] = p
		e.assignQuests(p)
		e.log.Info.Printf("bot joined: %s -> base %d", name, baseNum)
	}
	e.broadcastPlayers()
}

// botTick runs one decision per bot: buy a nearby affordable collectible,
// occasionally rob an unlocked human, otherwise wander.
func (e *Engine) botTick() {
	if e.mode != ModeAI {
		return
	}
	moved := false
	for _, b := range e.players {
		if !b.IsBot {
			continue
		}
		if e.botBuy(b) {
			continue
		}
		if e.rng.Float64() < botStealChance && e.botSteal(b) {
			continue
		}
		e.botWander(b)
		moved = true
	}
	if moved {
		e.broadcastPlayers()
	}
}

// botBuy walks toward the nearest affordable unclaimed collectible and claims
// it when close enough to reach this tick.
func (e *Engine) botBuy(b *player.Player) bool {
	if b.InventoryFull() {
		return false
	}
	var best *Rot
	bestDist := botBuyRadius
	for _, r := range e.rots {
		if r.ClaimedBy != "" || r.Price > b.Money {
			continue
		}
		d := rules.Distance(b.X, b.Y, r.X, r.Y)
		if d < bestDist {
			best, bestDist = r, d
		}
	}
	if best == nil {
		return false
	}
	if bestDist <= botSpeed {
		e.HandlePickUp(b.ID, best.ID)
		return true
	}
	b.X += (best.X - b.X) / bestDist * botSpeed
	b.Y += (best.Y - b.Y) / bestDist * botSpeed
	e.clampBot(b)
	return true
}

// botSteal picks a random unlocked human with inventory and robs their first
// item.
func (e *Engine) botSteal(b *player.Player) bool {
	now := e.now()
	for _, v := range e.players {
		if v.IsBot || len(v.Inventory) == 0 || v.LockEngaged(now) {
			continue
		}
		e.HandleSteal(b.ID, v.ID, v.Inventory[0].ID)
		return true
	}
	return false
}

func (e *Engine) botWander(b *player.Player) {
	b.X += (e.rng.Float64()*2 - 1) * botSpeed * 2
	b.Y += (e.rng.Float64()*2 - 1) * botSpeed * 2
	e.clampBot(b)
}

func (e *Engine) clampBot(b *player.Player) {
	b.X, b.Y = rules.ClampPosition(b.X, b.Y, catalog.MapWidth, catalog.MapHeight, catalog.AvatarSize)
	b.LastAcceptedX, b.LastAcceptedY = b.X, b.Y
}
