// Package player defines the core domain entity for connected players.
// This package is PURE and must NOT import any infrastructure packages
// (network, events, platform).
package player

import (
	"time"

	"github.com/brainrot-tycoon/server/internal/domain/catalog"
	"github.com/brainrot-tycoon/server/internal/domain/quest"
)

// InventoryItem is one held collectible instance. Name/Rarity/Class are
// denormalized wire fields so inventory snapshots serialize without catalog
// lookups on the client side; ItemID stays authoritative.
type InventoryItem struct {
	ID     string         `json:"id"`
	ItemID catalog.ItemID `json:"itemId"`
	Name   string         `json:"name"`
	Rarity string         `json:"rarity"`
	Class  string         `json:"class"`
}

// QuestState tracks a player's daily quests and per-category progress.
type QuestState struct {
	Assigned  []quest.Quest              `json:"assigned"`
	Progress  map[quest.Category]float64 `json:"progress"`
	Completed map[quest.ID]bool          `json:"completed"`
}

// Stats are lifetime counters, kept for the audit store and quest display.
type Stats struct {
	Collected   int     `json:"collected"`
	Sold        int     `json:"sold"`
	Stolen      int     `json:"stolen"`
	Upgrades    int     `json:"upgrades"`
	MoneyEarned float64 `json:"moneyEarned"`
}

// Player is the authoritative state of one connected session. It is owned by
// the world engine; only validated event handlers and tick jobs mutate it.
type Player struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`

	BaseID     string `json:"baseId"`
	BaseNumber int    `json:"baseNumber"`
	IsBot      bool   `json:"isBot,omitempty"`

	Inventory []InventoryItem `json:"inventory"`
	Money     float64         `json:"money"`

	BaseLocked    bool      `json:"baseLocked"`
	BaseLockUntil time.Time `json:"-"`

	// Movement bookkeeping. LastAcceptedX/Y hold the last position the
	// validator committed (post-clamp), which anchors the teleport check.
	LastMoveTime  time.Time `json:"-"`
	LastAcceptedX float64   `json:"-"`
	LastAcceptedY float64   `json:"-"`

	CapacityLevel   int `json:"capacityLevel"`
	GenerationLevel int `json:"generationLevel"`

	Quests QuestState `json:"quests"`
	Stats  Stats      `json:"stats"`

	LastHeartbeat time.Time `json:"-"`
	LastChat      time.Time `json:"-"`
}

// New creates a player at the spawn point with starting money and an empty
// inventory at upgrade level 0.
func New(id, username string, baseNumber int, startMoney float64, now time.Time) *Player {
	x := catalog.MapWidth / 4
	y := catalog.MapHeight / 2
	return &Player{
		ID:            id,
		Username:      username,
		X:             x,
		Y:             y,
		BaseID:        catalog.BaseID(baseNumber),
		BaseNumber:    baseNumber,
		Inventory:     make([]InventoryItem, 0, int(catalog.CapacityLadder[0].Value)),
		Money:         startMoney,
		LastMoveTime:  now,
		LastAcceptedX: x,
		LastAcceptedY: y,
		LastHeartbeat: now,
		Quests: QuestState{
			Progress:  make(map[quest.Category]float64),
			Completed: make(map[quest.ID]bool),
		},
	}
}

// Capacity returns the inventory limit at the player's capacity level.
func (p *Player) Capacity() int {
	return int(catalog.CapacityLadder[p.CapacityLevel].Value)
}

// GenerationMultiplier returns the passive income multiplier at the player's
// generation level.
func (p *Player) GenerationMultiplier() float64 {
	return catalog.GenerationLadder[p.GenerationLevel].Value
}

// InventoryFull reports whether the player can hold another item.
func (p *Player) InventoryFull() bool {
	return len(p.Inventory) >= p.Capacity()
}

// AddItem appends an item if capacity allows.
func (p *Player) AddItem(item InventoryItem) bool {
	if p.InventoryFull() {
		return false
	}
	p.Inventory = append(p.Inventory, item)
	return true
}

// RemoveItem takes an item instance out of the inventory by its entity ID,
// preserving order.
func (p *Player) RemoveItem(itemID string) (InventoryItem, bool) {
	for i, it := range p.Inventory {
		if it.ID == itemID {
			p.Inventory = append(p.Inventory[:i], p.Inventory[i+1:]...)
			return it, true
		}
	}
	return InventoryItem{}, false
}

// LockEngaged reports whether the base lock is actively repelling theft.
func (p *Player) LockEngaged(now time.Time) bool {
	return p.BaseLocked && now.Before(p.BaseLockUntil)
}

// AssignQuests replaces the daily quests and resets all progress counters.
func (p *Player) AssignQuests(quests []quest.Quest) {
	p.Quests = QuestState{
		Assigned:  quests,
		Progress:  make(map[quest.Category]float64),
		Completed: make(map[quest.ID]bool),
	}
}
