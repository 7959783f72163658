package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/brainrot-tycoon/server/internal/domain/catalog"
	"github.com/brainrot-tycoon/server/internal/domain/player"
)

// addRot drops a collectible straight into the world for tests.
func addRot(e *Engine, id string, price float64) *Rot {
	r := &Rot{
		ID:        id,
		ItemID:    0,
		Name:      "Skibidi Toilet",
		Rarity:    "Comum",
		Class:     "common",
		X:         600,
		Y:         100,
		Price:     price,
		SpawnedAt: e.now(),
	}
	e.rots[id] = r
	return r
}

func TestSpawnTickCreatesRotOnBelt(t *testing.T) {
	e, _, _, _ := newTestEngine(t, ModeOnline)
	for i := 0; i < 50; i++ {
		e.spawnTick()
	}
	if len(e.rots) != 50 {
		t.Fatalf("spawned %d rots, want 50", len(e.rots))
	}
	for _, r := range e.rots {
		if r.X < catalog.BeltX || r.X > catalog.BeltX+catalog.BeltWidth {
			t.Errorf("rot spawned off the belt at x=%v", r.X)
		}
		if r.Y != catalog.BeltY {
			t.Errorf("rot spawned below the top edge at y=%v", r.Y)
		}
		if r.ClaimedBy != "" {
			t.Error("fresh rot should be unclaimed")
		}
	}
}

func TestPhysicsMovesUnclaimedDownTheBelt(t *testing.T) {
	e, rec, _, _ := newTestEngine(t, ModeOnline)
	r := addRot(e, "r1", 10)
	y := r.Y
	e.physicsTick()
	if r.Y != y+catalog.BeltSpeed {
		t.Errorf("y = %v, want %v", r.Y, y+catalog.BeltSpeed)
	}
	if rec.countBroadcast(EventUpdateBrainRots) != 1 {
		t.Error("physics tick should push the rot slice")
	}
}

func TestPhysicsRemovesFallenRots(t *testing.T) {
	e, _, _, _ := newTestEngine(t, ModeOnline)
	r := addRot(e, "r1", 10)
	r.Y = catalog.MapHeight + 1
	e.physicsTick()
	if _, ok := e.rots["r1"]; ok {
		t.Error("rot past the bottom edge should be removed")
	}
}

func TestPickUpHappyPath(t *testing.T) {
	e, rec, _, _ := newTestEngine(t, ModeOnline)
	join(e, "p1", "alice")
	p := e.players["p1"]
	r := addRot(e, "r1", 100)
	rec.reset()

	e.HandlePickUp("p1", "r1")

	if p.Money != 150 {
		t.Errorf("money = %v, want 150", p.Money)
	}
	if r.ClaimedBy != "p1" || r.TargetBase != p.BaseNumber {
		t.Errorf("claim not applied: %+v", r)
	}
	if _, ok := rec.lastTo("p1", EventUpdateMoney); !ok {
		t.Error("pickup should push the new balance")
	}
}

func TestPickUpFailureOrder(t *testing.T) {
	e, rec, _, _ := newTestEngine(t, ModeOnline)
	join(e, "p1", "alice")
	join(e, "p2", "bob")
	p := e.players["p1"]

	check := func(rotID, want string) {
		t.Helper()
		msg, ok := rec.lastTo("p1", EventPickupFailed)
		if !ok {
			t.Fatalf("%s: no failure sent", want)
		}
		pl := msg.Payload.(map[string]any)
		if pl["reason"] != want {
			t.Errorf("reason = %v, want %q", pl["reason"], want)
		}
		if pl["rotId"] != rotID {
			t.Errorf("rotId = %v, want %q", pl["rotId"], rotID)
		}
	}

	rec.reset()
	e.HandlePickUp("p1", "missing")
	check("missing", "brainrot not found")

	claimed := addRot(e, "r-claimed", 10)
	claimed.ClaimedBy = "p2"
	rec.reset()
	e.HandlePickUp("p1", "r-claimed")
	check("r-claimed", "already owned")

	addRot(e, "r-pricey", 300) // start money is 250
	rec.reset()
	e.HandlePickUp("p1", "r-pricey")
	check("r-pricey", "insufficient funds")
	if p.Money != 250 {
		t.Errorf("failed pickup touched money: %v", p.Money)
	}

	for i := 0; i < p.Capacity(); i++ {
		p.AddItem(inventoryItemForTest(i))
	}
	addRot(e, "r-cheap", 10)
	rec.reset()
	e.HandlePickUp("p1", "r-cheap")
	check("r-cheap", "inventory full")
}

func TestClaimIsAtomic(t *testing.T) {
	e, rec, _, _ := newTestEngine(t, ModeOnline)
	join(e, "p1", "alice")
	join(e, "p2", "bob")
	addRot(e, "r1", 10)

	e.HandlePickUp("p1", "r1")
	rec.reset()
	e.HandlePickUp("p2", "r1")

	if e.rots["r1"].ClaimedBy != "p1" {
		t.Error("second claim must not displace the first")
	}
	msg, ok := rec.lastTo("p2", EventPickupFailed)
	if !ok || msg.Payload.(map[string]any)["reason"] != "already owned" {
		t.Errorf("second claimant should get already owned, got %v", msg)
	}
	if e.players["p2"].Money != 250 {
		t.Error("failed claim must not charge")
	}
}

func TestClaimedRotHomesAndDelivers(t *testing.T) {
	e, _, _, _ := newTestEngine(t, ModeOnline)
	join(e, "p1", "alice")
	p := e.players["p1"]
	r := addRot(e, "r1", 10)
	e.HandlePickUp("p1", "r1")

	target, _ := catalog.BasePosition(p.BaseNumber)
	r.X, r.Y = target.X+3, target.Y // inside the delivery radius

	e.physicsTick()

	if _, ok := e.rots["r1"]; ok {
		t.Error("delivered rot should leave the world")
	}
	if len(p.Inventory) != 1 || p.Inventory[0].ID != "r1" {
		t.Errorf("inventory after delivery: %+v", p.Inventory)
	}
	if p.Stats.Collected != 1 {
		t.Errorf("collected stat = %d", p.Stats.Collected)
	}
}

func TestDeliveryToFullInventoryDropsSilently(t *testing.T) {
	e, _, _, _ := newTestEngine(t, ModeOnline)
	join(e, "p1", "alice")
	p := e.players["p1"]
	r := addRot(e, "r1", 10)
	e.HandlePickUp("p1", "r1")
	moneyAfterClaim := p.Money

	for i := 0; i < p.Capacity(); i++ {
		p.AddItem(inventoryItemForTest(i))
	}
	target, _ := catalog.BasePosition(p.BaseNumber)
	r.X, r.Y = target.X, target.Y+1

	e.physicsTick()

	if _, ok := e.rots["r1"]; ok {
		t.Error("overflow delivery should still consume the rot")
	}
	if len(p.Inventory) != p.Capacity() {
		t.Error("overflow delivery must not exceed capacity")
	}
	if p.Money != moneyAfterClaim {
		t.Error("overflow delivery must not refund")
	}
}

func TestJanitorClearsOrphanedAndStaleClaims(t *testing.T) {
	e, _, clk, _ := newTestEngine(t, ModeOnline)
	join(e, "p1", "alice")

	orphan := addRot(e, "orphan", 10)
	orphan.ClaimedBy = "long-gone"
	orphan.TargetBase = 2
	orphan.ClaimedAt = clk.Now()

	stale := addRot(e, "stale", 10)
	e.HandlePickUp("p1", "stale")
	stale.X, stale.Y = 600, 700 // far from the base so it cannot deliver

	clk.Advance(31 * time.Second)
	e.physicsTick()

	if _, ok := e.rots["orphan"]; ok {
		t.Error("rot claimed by a missing player should be removed")
	}
	if _, ok := e.rots["stale"]; ok {
		t.Error("rot stuck in transit past the stale age should be removed")
	}
}

// inventoryItemForTest pads an inventory with filler items.
func inventoryItemForTest(i int) player.InventoryItem {
	return player.InventoryItem{
		ID:     fmt.Sprintf("filler-%d", i),
		ItemID: 0,
		Name:   "Skibidi Toilet",
		Rarity: "Comum",
		Class:  "common",
	}
}
