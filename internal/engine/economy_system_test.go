package engine

import (
	"testing"
	"time"

	"github.com/brainrot-tycoon/server/internal/domain/catalog"
	"github.com/brainrot-tycoon/server/internal/domain/player"
)

// giveItem places a delivered collectible directly into an inventory.
func giveItem(p *player.Player, instanceID string, itemID catalog.ItemID) {
	it, _ := catalog.Item(itemID)
	p.AddItem(player.InventoryItem{
		ID:     instanceID,
		ItemID: itemID,
		Name:   it.Name,
		Rarity: it.Rarity,
		Class:  it.Class,
	})
}

func TestEconomyTickPaysGenerationIncome(t *testing.T) {
	e, _, _, _ := newTestEngine(t, ModeOnline)
	join(e, "p1", "alice")
	p := e.players["p1"]
	giveItem(p, "i1", 4) // NPC Streamer, generation 2
	giveItem(p, "i2", 2) // Cbum, generation 0.5

	e.economyTick()

	if p.Money != 250+2.5 {
		t.Errorf("money = %v, want 252.5", p.Money)
	}
	if p.Stats.MoneyEarned != 2.5 {
		t.Errorf("moneyEarned = %v", p.Stats.MoneyEarned)
	}
}

func TestEconomyTickAppliesGenerationMultiplier(t *testing.T) {
	e, _, _, _ := newTestEngine(t, ModeOnline)
	join(e, "p1", "alice")
	p := e.players["p1"]
	p.GenerationLevel = 3 // 2x
	giveItem(p, "i1", 4)  // generation 2

	e.economyTick()

	if p.Money != 250+4 {
		t.Errorf("money = %v, want 254", p.Money)
	}
}

func TestEconomyTickSkipsEmptyInventories(t *testing.T) {
	e, rec, _, _ := newTestEngine(t, ModeOnline)
	join(e, "p1", "alice")
	rec.reset()

	e.economyTick()

	if e.players["p1"].Money != 250 {
		t.Error("empty inventory should earn nothing")
	}
	if len(rec.Broadcasts) != 0 {
		t.Error("no income means no broadcast")
	}
}

func TestSell(t *testing.T) {
	e, rec, _, _ := newTestEngine(t, ModeOnline)
	join(e, "p1", "alice")
	p := e.players["p1"]
	giveItem(p, "i1", 2) // Cbum, sells for 25
	rec.reset()

	e.HandleSell("p1", "i1")

	if p.Money != 275 {
		t.Errorf("money = %v, want 275", p.Money)
	}
	if len(p.Inventory) != 0 {
		t.Error("sold item should leave the inventory")
	}
	if p.Stats.Sold != 1 {
		t.Errorf("sold stat = %d", p.Stats.Sold)
	}
}

func TestSellMissingItem(t *testing.T) {
	e, rec, _, _ := newTestEngine(t, ModeOnline)
	join(e, "p1", "alice")
	rec.reset()

	e.HandleSell("p1", "nope")

	if e.players["p1"].Money != 250 {
		t.Error("failed sell must not pay")
	}
	msg, ok := rec.lastTo("p1", EventSellFailed)
	if !ok || msg.Payload.(map[string]any)["reason"] != "item not in inventory" {
		t.Errorf("sell failure = %v", msg)
	}
}

func TestStealHappyPath(t *testing.T) {
	e, rec, _, _ := newTestEngine(t, ModeOnline)
	join(e, "thief", "mallory")
	join(e, "victim", "bob")
	giveItem(e.players["victim"], "loot", 2)
	rec.reset()

	e.HandleSteal("thief", "victim", "loot")

	if len(e.players["victim"].Inventory) != 0 {
		t.Error("victim should lose the item")
	}
	if len(e.players["thief"].Inventory) != 1 {
		t.Error("thief should gain the item")
	}
	if e.players["thief"].Stats.Stolen != 1 {
		t.Error("stolen stat not bumped")
	}
	if _, ok := rec.lastTo("victim", EventStolen); !ok {
		t.Error("victim should be notified")
	}
}

func TestStealFailures(t *testing.T) {
	e, rec, clk, _ := newTestEngine(t, ModeOnline)
	join(e, "thief", "mallory")
	join(e, "victim", "bob")
	victim := e.players["victim"]
	giveItem(victim, "loot", 2)

	check := func(want string) {
		t.Helper()
		msg, ok := rec.lastTo("thief", EventStealFailed)
		if !ok || msg.Payload.(map[string]any)["reason"] != want {
			t.Errorf("want failure %q, got %v", want, msg)
		}
		if len(victim.Inventory) != 1 {
			t.Error("victim inventory must be untouched")
		}
	}

	rec.reset()
	e.HandleSteal("thief", "ghost", "loot")
	check("target not found")

	rec.reset()
	e.HandleSteal("thief", "thief", "loot")
	check("cannot steal from yourself")

	e.HandleLock("victim")
	rec.reset()
	e.HandleSteal("thief", "victim", "loot")
	check("base is locked")

	// Lock lapses; a full thief still cannot steal.
	clk.Advance(2 * time.Minute)
	thief := e.players["thief"]
	for i := 0; i < thief.Capacity(); i++ {
		giveItem(thief, string(rune('a'+i)), 0)
	}
	rec.reset()
	e.HandleSteal("thief", "victim", "loot")
	check("inventory full")

	thief.Inventory = thief.Inventory[:0]
	rec.reset()
	e.HandleSteal("thief", "victim", "missing")
	check("item not found")
}

func TestUpgradeCapacity(t *testing.T) {
	e, rec, _, _ := newTestEngine(t, ModeOnline)
	join(e, "p1", "alice")
	p := e.players["p1"]
	p.Money = 600
	rec.reset()

	e.HandleUpgrade("p1", UpgradeCapacity, 0)

	if p.CapacityLevel != 1 || p.Capacity() != 8 {
		t.Errorf("level %d capacity %d", p.CapacityLevel, p.Capacity())
	}
	if p.Money != 100 {
		t.Errorf("money = %v, want 100", p.Money)
	}
	msg, ok := rec.lastTo("p1", EventUpgradeSuccess)
	if !ok {
		t.Fatal("no upgrade success sent")
	}
	pl := msg.Payload.(map[string]any)
	if pl["newLevel"] != 1 || pl["newValue"] != 8.0 || pl["remainingMoney"] != 100.0 {
		t.Errorf("success payload = %v", pl)
	}
}

func TestUpgradeFailures(t *testing.T) {
	e, rec, _, _ := newTestEngine(t, ModeOnline)
	join(e, "p1", "alice")
	p := e.players["p1"]

	check := func(want string) {
		t.Helper()
		msg, ok := rec.lastTo("p1", EventUpgradeFailed)
		if !ok || msg.Payload.(map[string]any)["reason"] != want {
			t.Errorf("want failure %q, got %v", want, msg)
		}
	}

	rec.reset()
	e.HandleUpgrade("p1", "turbo", 0)
	check("unknown upgrade type")

	rec.reset()
	e.HandleUpgrade("p1", UpgradeGeneration, 0) // costs 1000, has 250
	check("insufficient funds")
	if p.Money != 250 {
		t.Error("failed upgrade must not charge")
	}

	p.GenerationLevel = len(catalog.GenerationLadder) - 1
	p.Money = 10_000_000
	rec.reset()
	e.HandleUpgrade("p1", UpgradeGeneration, 0)
	check("already at max level")

	p.GenerationLevel = 0
	rec.reset()
	e.HandleUpgrade("p1", UpgradeGeneration, p.BaseNumber+1)
	check("not your base")
}

func TestMoneyNeverGoesNegative(t *testing.T) {
	e, _, _, _ := newTestEngine(t, ModeOnline)
	join(e, "p1", "alice")
	p := e.players["p1"]
	p.Money = 0

	addRot(e, "r1", 50)
	e.HandlePickUp("p1", "r1")
	e.HandleUpgrade("p1", UpgradeCapacity, 0)

	if p.Money < 0 {
		t.Errorf("money went negative: %v", p.Money)
	}
}
