package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/brainrot-tycoon/server/internal/domain/catalog"
	"github.com/brainrot-tycoon/server/internal/domain/player"
	"github.com/brainrot-tycoon/server/internal/domain/quest"
	"github.com/brainrot-tycoon/server/internal/domain/rules"
	"github.com/brainrot-tycoon/server/internal/events"
)

// Rot is one collectible instance on the map: drifting down the belt while
// unclaimed, homing toward its owner's base once claimed.
type Rot struct {
	ID         string         `json:"id"`
	ItemID     catalog.ItemID `json:"itemId"`
	Name       string         `json:"name"`
	Rarity     string         `json:"rarity"`
	Class      string         `json:"class"`
	X          float64        `json:"x"`
	Y          float64        `json:"y"`
	Price      float64        `json:"price"`
	Generation float64        `json:"generation"`
	ClaimedBy  string         `json:"claimedBy,omitempty"`
	TargetBase int            `json:"targetBase,omitempty"`

	SpawnedAt time.Time `json:"-"`
	ClaimedAt time.Time `json:"-"`
}

// spawnTick drops one new collectible onto the belt. Tier odds come from the
// normal table, or the boosted table while an admin rarity event is running.
func (e *Engine) spawnTick() {
	weights := catalog.NormalWeights[:]
	if e.adminEventActive() {
		weights = catalog.EventWeights[:]
	}
	tier := catalog.Tier(rules.PickTier(weights, e.rng.Float64()))
	ids := catalog.ItemsByTier(tier)
	it, _ := catalog.Item(ids[e.rng.Intn(len(ids))])

	r := &Rot{
		ID:         uuid.NewString(),
		ItemID:     it.ID,
		Name:       it.Name,
		Rarity:     it.Rarity,
		Class:      it.Class,
		X:          catalog.BeltX + e.rng.Float64()*(catalog.BeltWidth-catalog.ItemWidth),
		Y:          catalog.BeltY,
		Price:      it.Price,
		Generation: it.GenerationRate,
		SpawnedAt:  e.now(),
	}
	e.rots[r.ID] = r
	e.met.RecordSpawn()
}

// physicsTick advances every collectible and resolves deliveries, then pushes
// the full collectible slice to all clients.
func (e *Engine) physicsTick() {
	now := e.now()
	for id, r := range e.rots {
		if r.ClaimedBy == "" {
			r.Y += catalog.BeltSpeed
			if r.Y > catalog.MapHeight {
				delete(e.rots, id)
				e.met.RecordFellOff()
			}
			continue
		}

		owner, ok := e.players[r.ClaimedBy]
		if !ok || now.Sub(r.ClaimedAt) > e.cfg.StaleEntityAge() {
			// Orphaned or stuck in transit; the janitor clears it.
			delete(e.rots, id)
			e.met.RecordExpired()
			continue
		}

		target, _ := catalog.BasePosition(r.TargetBase)
		dist := rules.Distance(r.X, r.Y, target.X, target.Y)
		if dist < catalog.DeliveryRadius {
			e.deliver(r, owner)
			delete(e.rots, id)
			continue
		}
		r.X += (target.X - r.X) / dist * catalog.ClaimedSpeed
		r.Y += (target.Y - r.Y) / dist * catalog.ClaimedSpeed
	}
	e.broadcastRots()
}

// deliver lands a claimed collectible in the owner's inventory. A full
// inventory at arrival swallows the item with no refund; the price was paid
// at claim time and the overflow is the player's scheduling problem.
func (e *Engine) deliver(r *Rot, owner *player.Player) {
	item := player.InventoryItem{
		ID:     r.ID,
		ItemID: r.ItemID,
		Name:   r.Name,
		Rarity: r.Rarity,
		Class:  r.Class,
	}
	if !owner.AddItem(item) {
		e.log.Warn.Printf("delivery dropped, inventory full: %s -> %s", r.Name, owner.Username)
		e.met.RecordExpired()
		return
	}
	owner.Stats.Collected++
	e.met.RecordDelivery()
	e.record(events.New(events.EventTypeDelivery, owner.ID, "", map[string]any{
		"itemId": int(r.ItemID),
		"name":   r.Name,
	}))
	e.recordQuestProgress(owner, quest.CategoryCollect, 1)
	e.broadcastInventories()
	e.broadcastPlayers()
}

// HandlePickUp claims an unowned collectible for a player. Checks run in
// order: existence, ownership, funds, capacity. The price is charged up
// front; the item then travels to the base on its own. Must run on the
// engine goroutine.
func (e *Engine) HandlePickUp(playerID, rotID string) {
	p, ok := e.players[playerID]
	if !ok {
		return
	}
	r, ok := e.rots[rotID]
	if !ok {
		e.pickupFailed(p, rotID, "brainrot not found")
		return
	}
	if r.ClaimedBy != "" {
		e.pickupFailed(p, rotID, "already owned")
		return
	}
	if p.Money < r.Price {
		e.pickupFailed(p, rotID, "insufficient funds")
		return
	}
	if p.InventoryFull() {
		e.pickupFailed(p, rotID, "inventory full")
		return
	}

	p.Money -= r.Price
	r.ClaimedBy = playerID
	r.TargetBase = p.BaseNumber
	r.ClaimedAt = e.now()

	e.record(events.New(events.EventTypePickup, playerID, "", map[string]any{
		"itemId": int(r.ItemID),
		"name":   r.Name,
		"price":  r.Price,
	}))
	e.sendMoney(p)
	e.broadcastRots()
}

func (e *Engine) pickupFailed(p *player.Player, rotID, reason string) {
	if p.IsBot {
		return
	}
	e.bc.SendTo(p.ID, EventPickupFailed, map[string]any{
		"rotId":  rotID,
		"reason": reason,
	})
}
