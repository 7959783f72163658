// Package engine owns the authoritative world state and runs the game loop.
//
// All world mutation happens on a single goroutine: handlers posted by the
// network layer, the tick cadences (physics, economy, spawn, bots) and any
// deferred callbacks are serialized through one command mailbox. Nothing
// outside this package touches players or collectibles directly.
package engine

import (
	"context"
	"math/rand"
	"time"

	"github.com/brainrot-tycoon/server/internal/domain/player"
	"github.com/brainrot-tycoon/server/internal/events"
	"github.com/brainrot-tycoon/server/internal/platform/logger"
	"github.com/brainrot-tycoon/server/internal/platform/metrics"
	"github.com/brainrot-tycoon/server/internal/platform/tuning"
)

// Wire event names pushed to clients.
const (
	EventUpdatePlayers      = "updatePlayers"
	EventUpdateBrainRots    = "updateBrainRots"
	EventUpdateInventories  = "updateInventories"
	EventUpdateBaseLocks    = "updateBaseLocks"
	EventUpdateMoney        = "updateMoney"
	EventAssignBase         = "assignBase"
	EventServerFull         = "serverFull"
	EventMoveRejected       = "moveRejected"
	EventPickupFailed       = "pickupFailed"
	EventSellFailed         = "sellFailed"
	EventStealFailed        = "stealFailed"
	EventStolen             = "itemStolen"
	EventUpgradeSuccess     = "upgradeSuccess"
	EventUpgradeFailed      = "upgradeFailed"
	EventBaseLocked         = "baseLocked"
	EventBaseUnlocked       = "baseUnlocked"
	EventLockFailed         = "lockFailed"
	EventQuestAssigned      = "questAssigned"
	EventQuestCompleted     = "questCompleted"
	EventAdminEvent         = "adminEvent"
	EventAdminEventFailed   = "adminEventFailed"
	EventClearBaseBrainrots = "clearBaseBrainrots"
	EventChatMessage        = "chatMessage"
	EventChatError          = "chatError"
	EventServerError        = "serverError"
)

// Mode selects how the session fills its bases.
type Mode string

const (
	ModeOnline Mode = "online" // up to MaxPlayers humans
	ModeSolo   Mode = "solo"   // one human, no bots
	ModeAI     Mode = "ai"     // one human, bots fill the remaining bases
)

// Broadcaster pushes events out to connected clients. The websocket hub
// implements it; tests substitute a recorder.
type Broadcaster interface {
	// Broadcast sends an event to every connected client.
	Broadcast(event string, payload any)
	// SendTo sends an event to one client by player ID.
	SendTo(playerID, event string, payload any)
	// Disconnect forcibly closes one client's connection.
	Disconnect(playerID string)
}

// adminState tracks the rarity event toggle.
type adminState struct {
	Active      bool
	TriggeredBy string
	Until       time.Time
}

// Engine is the authoritative game world.
type Engine struct {
	cfg tuning.Tuning
	log *logger.Logger
	el  *events.EventLog
	bc  Broadcaster
	met *metrics.Collector
	rng *rand.Rand

	mode    Mode
	players map[string]*player.Player
	rots    map[string]*Rot
	bases   *BasePool
	admin   adminState

	commands chan func()

	// Clock and timer injection points. Production uses the real clock;
	// tests substitute both to drive deferred callbacks deterministically.
	now   func() time.Time
	after func(d time.Duration, fn func())
}

// New wires an engine. The broadcaster may deliver to zero clients; the
// engine never blocks on it.
func New(cfg tuning.Tuning, log *logger.Logger, el *events.EventLog, bc Broadcaster, met *metrics.Collector, mode Mode) *Engine {
	e := &Engine{
		cfg:      cfg,
		log:      log,
		el:       el,
		bc:       bc,
		met:      met,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		mode:     mode,
		players:  make(map[string]*player.Player),
		rots:     make(map[string]*Rot),
		bases:    NewBasePool(),
		commands: make(chan func(), 256),
		now:      time.Now,
	}
	e.after = func(d time.Duration, fn func()) {
		time.AfterFunc(d, func() { e.post(fn) })
	}
	return e
}

// post queues a command for the engine goroutine.
func (e *Engine) post(fn func()) {
	e.commands <- fn
}

// Do runs fn on the engine goroutine. It is the entry point for the network
// layer; a panic inside a handler is contained to the offending command.
func (e *Engine) Do(playerID string, fn func()) {
	e.post(func() {
		defer func() {
			if r := recover(); r != nil {
				e.log.Error.Printf("handler panic (player=%s): %v", playerID, r)
				e.bc.SendTo(playerID, EventServerError, map[string]any{
					"message": "internal server error",
				})
			}
		}()
		fn()
	})
}

// Run drives the world until ctx is cancelled. It owns all state mutation;
// call it from exactly one goroutine.
func (e *Engine) Run(ctx context.Context) {
	physics := time.NewTicker(e.cfg.PhysicsTick())
	economy := time.NewTicker(e.cfg.EconomyTick())
	spawner := time.NewTicker(e.cfg.SpawnInterval())
	bots := time.NewTicker(e.cfg.BotTick())
	defer physics.Stop()
	defer economy.Stop()
	defer spawner.Stop()
	defer bots.Stop()

	e.log.Info.Printf("engine running: mode=%s physics=%s economy=%s spawn=%s",
		e.mode, e.cfg.PhysicsTick(), e.cfg.EconomyTick(), e.cfg.SpawnInterval())

	for {
		select {
		case <-ctx.Done():
			e.log.Info.Println("engine stopped")
			return
		case fn := <-e.commands:
			fn()
		case <-physics.C:
			start := time.Now()
			e.physicsTick()
			e.met.RecordPhysicsTick(time.Since(start))
		case <-economy.C:
			e.economyTick()
			e.reapInactive()
		case <-spawner.C:
			e.spawnTick()
		case <-bots.C:
			e.botTick()
		}
	}
}

// playerSnapshot is the public view of a player pushed on updatePlayers.
type playerSnapshot struct {
	ID              string                 `json:"id"`
	Username        string                 `json:"username"`
	X               float64                `json:"x"`
	Y               float64                `json:"y"`
	BaseID          string                 `json:"baseId"`
	BaseNumber      int                    `json:"baseNumber"`
	IsBot           bool                   `json:"isBot,omitempty"`
	Inventory       []player.InventoryItem `json:"inventory"`
	Money           float64                `json:"money"`
	BaseLocked      bool                   `json:"baseLocked"`
	CapacityLevel   int                    `json:"capacityLevel"`
	GenerationLevel int                    `json:"generationLevel"`
}

func (e *Engine) snapshotPlayers() []playerSnapshot {
	out := make([]playerSnapshot, 0, len(e.players))
	for _, p := range e.players {
		// Inventory is copied so snapshots handed to other goroutines
		// never alias the live slice.
		inv := make([]player.InventoryItem, len(p.Inventory))
		copy(inv, p.Inventory)
		out = append(out, playerSnapshot{
			ID:              p.ID,
			Username:        p.Username,
			X:               p.X,
			Y:               p.Y,
			BaseID:          p.BaseID,
			BaseNumber:      p.BaseNumber,
			IsBot:           p.IsBot,
			Inventory:       inv,
			Money:           p.Money,
			BaseLocked:      p.LockEngaged(e.now()),
			CapacityLevel:   p.CapacityLevel,
			GenerationLevel: p.GenerationLevel,
		})
	}
	return out
}

func (e *Engine) broadcastPlayers() {
	e.bc.Broadcast(EventUpdatePlayers, e.snapshotPlayers())
}

func (e *Engine) snapshotRots() []*Rot {
	out := make([]*Rot, 0, len(e.rots))
	for _, r := range e.rots {
		out = append(out, r)
	}
	return out
}

func (e *Engine) broadcastRots() {
	e.bc.Broadcast(EventUpdateBrainRots, e.snapshotRots())
}

// broadcastInventories pushes every player's held items, keyed by player ID.
func (e *Engine) broadcastInventories() {
	out := make(map[string][]player.InventoryItem, len(e.players))
	for id, p := range e.players {
		inv := make([]player.InventoryItem, len(p.Inventory))
		copy(inv, p.Inventory)
		out[id] = inv
	}
	e.bc.Broadcast(EventUpdateInventories, out)
}

// broadcastBaseLocks pushes the lock state of every base, keyed by base ID.
func (e *Engine) broadcastBaseLocks() {
	now := e.now()
	out := make(map[string]bool, len(e.players))
	for _, p := range e.players {
		out[p.BaseID] = p.LockEngaged(now)
	}
	e.bc.Broadcast(EventUpdateBaseLocks, out)
}

// sendMoney unicasts the player's balance after any economy mutation.
func (e *Engine) sendMoney(p *player.Player) {
	if p.IsBot {
		return
	}
	e.bc.SendTo(p.ID, EventUpdateMoney, map[string]any{"money": p.Money})
}

func (e *Engine) record(ev events.GameEvent) {
	e.el.Append(ev)
}

// WorldSnapshot is the archived view of the whole world at one instant.
type WorldSnapshot struct {
	Timestamp        time.Time        `json:"timestamp"`
	Players          []playerSnapshot `json:"players"`
	BrainRots        []Rot            `json:"brainrots"`
	AdminEventActive bool             `json:"adminEventActive"`
}

// Snapshot captures the world state for archiving. Safe to call from any
// goroutine: it runs on the engine goroutine and hands the copy back, so it
// must not be called from inside a handler.
func (e *Engine) Snapshot() WorldSnapshot {
	ch := make(chan WorldSnapshot, 1)
	e.post(func() {
		// Rots are copied by value so the marshal outside the engine
		// goroutine never races a physics tick.
		rots := make([]Rot, 0, len(e.rots))
		for _, r := range e.rots {
			rots = append(rots, *r)
		}
		ch <- WorldSnapshot{
			Timestamp:        e.now(),
			Players:          e.snapshotPlayers(),
			BrainRots:        rots,
			AdminEventActive: e.adminEventActive(),
		}
	})
	return <-ch
}
