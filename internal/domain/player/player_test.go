package player

import (
	"testing"
	"time"

	"github.com/brainrot-tycoon/server/internal/domain/catalog"
)

func newTestPlayer() *Player {
	return New("p1", "tester", 1, 250, time.Unix(1000, 0))
}

func TestNewPlayerDefaults(t *testing.T) {
	p := newTestPlayer()
	if p.Money != 250 {
		t.Errorf("money = %v", p.Money)
	}
	if p.Capacity() != 6 {
		t.Errorf("capacity = %d, want base 6", p.Capacity())
	}
	if p.GenerationMultiplier() != 1 {
		t.Errorf("multiplier = %v, want 1", p.GenerationMultiplier())
	}
	if p.BaseID != "base-1" {
		t.Errorf("baseId = %q", p.BaseID)
	}
}

func TestInventoryCapacity(t *testing.T) {
	p := newTestPlayer()
	for i := 0; i < p.Capacity(); i++ {
		if !p.AddItem(InventoryItem{ID: string(rune('a' + i))}) {
			t.Fatalf("add %d rejected below capacity", i)
		}
	}
	if !p.InventoryFull() {
		t.Error("inventory should be full")
	}
	if p.AddItem(InventoryItem{ID: "overflow"}) {
		t.Error("add beyond capacity should fail")
	}

	p.CapacityLevel = 1
	if p.InventoryFull() {
		t.Error("upgraded capacity should free a slot")
	}
}

func TestRemoveItemPreservesOrder(t *testing.T) {
	p := newTestPlayer()
	p.AddItem(InventoryItem{ID: "a"})
	p.AddItem(InventoryItem{ID: "b"})
	p.AddItem(InventoryItem{ID: "c"})

	it, ok := p.RemoveItem("b")
	if !ok || it.ID != "b" {
		t.Fatalf("RemoveItem(b) = %v, %v", it, ok)
	}
	if len(p.Inventory) != 2 || p.Inventory[0].ID != "a" || p.Inventory[1].ID != "c" {
		t.Errorf("inventory after removal: %+v", p.Inventory)
	}
	if _, ok := p.RemoveItem("b"); ok {
		t.Error("removing twice should fail")
	}
}

func TestLockEngaged(t *testing.T) {
	p := newTestPlayer()
	now := time.Unix(2000, 0)
	if p.LockEngaged(now) {
		t.Error("fresh player should be unlocked")
	}
	p.BaseLocked = true
	p.BaseLockUntil = now.Add(time.Minute)
	if !p.LockEngaged(now) {
		t.Error("lock should hold before expiry")
	}
	if p.LockEngaged(now.Add(2 * time.Minute)) {
		t.Error("lock should lapse after expiry")
	}
}

func TestSpawnInsideMap(t *testing.T) {
	p := newTestPlayer()
	if p.X < 0 || p.X > catalog.MapWidth-catalog.AvatarSize ||
		p.Y < 0 || p.Y > catalog.MapHeight-catalog.AvatarSize {
		t.Errorf("spawn (%v, %v) outside playable area", p.X, p.Y)
	}
}
