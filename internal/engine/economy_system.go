package engine

import (
	"github.com/brainrot-tycoon/server/internal/domain/catalog"
	"github.com/brainrot-tycoon/server/internal/domain/player"
	"github.com/brainrot-tycoon/server/internal/domain/quest"
	"github.com/brainrot-tycoon/server/internal/events"
)

// economyTick pays each player the generation income of their delivered
// collection, scaled by their generation upgrade level.
func (e *Engine) economyTick() {
	changed := false
	for _, p := range e.players {
		income := 0.0
		for _, it := range p.Inventory {
			if t, ok := catalog.Item(it.ItemID); ok {
				income += t.GenerationRate
			}
		}
		if income <= 0 {
			continue
		}
		income *= p.GenerationMultiplier()
		p.Money += income
		p.Stats.MoneyEarned += income
		e.recordQuestProgress(p, quest.CategoryMoney, income)
		e.sendMoney(p)
		changed = true
	}
	if changed {
		e.broadcastPlayers()
	}
}

// HandleSell trades one held item for its sell price. Must run on the engine
// goroutine.
func (e *Engine) HandleSell(playerID, itemID string) {
	p, ok := e.players[playerID]
	if !ok {
		return
	}
	item, ok := p.RemoveItem(itemID)
	if !ok {
		if !p.IsBot {
			e.bc.SendTo(playerID, EventSellFailed, map[string]any{
				"itemId": itemID,
				"reason": "item not in inventory",
			})
		}
		return
	}
	t, _ := catalog.Item(item.ItemID)
	p.Money += t.SellPrice
	p.Stats.Sold++

	e.record(events.New(events.EventTypeSell, playerID, "", map[string]any{
		"itemId": int(item.ItemID),
		"name":   item.Name,
		"price":  t.SellPrice,
	}))
	e.recordQuestProgress(p, quest.CategorySell, 1)
	e.sendMoney(p)
	e.broadcastInventories()
	e.broadcastPlayers()
}

// HandleSteal moves one item from another player's inventory into the
// thief's. Checks run in order: valid target, not self, lock, thief
// capacity, item present. Must run on the engine goroutine.
func (e *Engine) HandleSteal(playerID, targetID, itemID string) {
	thief, ok := e.players[playerID]
	if !ok {
		return
	}
	victim, ok := e.players[targetID]
	if !ok {
		e.stealFailed(thief, "target not found")
		return
	}
	if targetID == playerID {
		e.stealFailed(thief, "cannot steal from yourself")
		return
	}
	if victim.LockEngaged(e.now()) {
		e.stealFailed(thief, "base is locked")
		return
	}
	if thief.InventoryFull() {
		e.stealFailed(thief, "inventory full")
		return
	}
	item, ok := victim.RemoveItem(itemID)
	if !ok {
		e.stealFailed(thief, "item not found")
		return
	}
	thief.AddItem(item)
	thief.Stats.Stolen++

	e.log.Info.Printf("steal: %s took %s from %s", thief.Username, item.Name, victim.Username)
	e.record(events.New(events.EventTypeSteal, playerID, targetID, map[string]any{
		"itemId": int(item.ItemID),
		"name":   item.Name,
	}))
	e.recordQuestProgress(thief, quest.CategorySteal, 1)

	e.bc.SendTo(playerID, EventStolen, map[string]any{
		"item": item, "from": victim.Username,
	})
	if !victim.IsBot {
		e.bc.SendTo(targetID, EventStolen, map[string]any{
			"item": item, "by": thief.Username, "lost": true,
		})
	}
	e.broadcastInventories()
	e.broadcastPlayers()
}

func (e *Engine) stealFailed(p *player.Player, reason string) {
	if p.IsBot {
		return
	}
	e.bc.SendTo(p.ID, EventStealFailed, map[string]any{"reason": reason})
}

// Upgrade type identifiers on the wire.
const (
	UpgradeCapacity   = "capacity"
	UpgradeGeneration = "generation"
)

// HandleUpgrade buys the next level of a base upgrade. baseNumber is
// optional; when supplied it must be the requester's own base. Must run on
// the engine goroutine.
func (e *Engine) HandleUpgrade(playerID, upgradeType string, baseNumber int) {
	p, ok := e.players[playerID]
	if !ok {
		return
	}
	if baseNumber != 0 && baseNumber != p.BaseNumber {
		e.upgradeFailed(p, upgradeType, "not your base")
		return
	}

	var ladder []catalog.UpgradeLevel
	var level *int
	switch upgradeType {
	case UpgradeCapacity:
		ladder, level = catalog.CapacityLadder, &p.CapacityLevel
	case UpgradeGeneration:
		ladder, level = catalog.GenerationLadder, &p.GenerationLevel
	default:
		e.upgradeFailed(p, upgradeType, "unknown upgrade type")
		return
	}

	next := *level + 1
	if next >= len(ladder) {
		e.upgradeFailed(p, upgradeType, "already at max level")
		return
	}
	cost := ladder[next].Cost
	if p.Money < cost {
		e.upgradeFailed(p, upgradeType, "insufficient funds")
		return
	}

	p.Money -= cost
	*level = next
	p.Stats.Upgrades++

	e.record(events.New(events.EventTypeUpgrade, playerID, "", map[string]any{
		"type":  upgradeType,
		"level": next,
		"cost":  cost,
	}))
	e.recordQuestProgress(p, quest.CategoryUpgrade, 1)

	if !p.IsBot {
		e.bc.SendTo(playerID, EventUpgradeSuccess, map[string]any{
			"upgradeType":    upgradeType,
			"newLevel":       next,
			"newValue":       ladder[next].Value,
			"remainingMoney": p.Money,
		})
	}
	e.sendMoney(p)
	e.broadcastPlayers()
}

func (e *Engine) upgradeFailed(p *player.Player, upgradeType, reason string) {
	if p.IsBot {
		return
	}
	e.bc.SendTo(p.ID, EventUpgradeFailed, map[string]any{
		"upgradeType": upgradeType,
		"reason":      reason,
	})
}
