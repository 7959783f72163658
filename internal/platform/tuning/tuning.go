// Package tuning holds the runtime parameters of the game server.
// Defaults match the original balance; a YAML file can override them
// per deployment without a rebuild.
package tuning

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Tuning is the full set of server knobs.
type Tuning struct {
	ListenAddr string `yaml:"listen_addr"`

	// Simulation cadences.
	PhysicsTickMs   int `yaml:"physics_tick_ms"`
	EconomyTickMs   int `yaml:"economy_tick_ms"`
	SpawnIntervalMs int `yaml:"spawn_interval_ms"`
	BotTickMs       int `yaml:"bot_tick_ms"`

	// Movement anti-cheat.
	MoveMinIntervalMs int     `yaml:"move_min_interval_ms"`
	MaxMoveDelta      float64 `yaml:"max_move_delta"`
	MaxMoveDistance   float64 `yaml:"max_move_distance"`

	// Chat rate limits.
	ChatMinIntervalMs int `yaml:"chat_min_interval_ms"`
	ChatMaxLen        int `yaml:"chat_max_len"`

	// Timers.
	BaseLockSeconds         int `yaml:"base_lock_seconds"`
	StaleEntitySeconds      int `yaml:"stale_entity_seconds"`
	HeartbeatTimeoutSeconds int `yaml:"heartbeat_timeout_seconds"`
	JoinRebroadcastMs       int `yaml:"join_rebroadcast_ms"`

	// Admin rarity event bounds (milliseconds, as sent on the wire).
	AdminEventDefaultMs int `yaml:"admin_event_default_ms"`
	AdminEventMinMs     int `yaml:"admin_event_min_ms"`
	AdminEventMaxMs     int `yaml:"admin_event_max_ms"`

	// Economy.
	StartMoney float64 `yaml:"start_money"`

	MaxPlayers int `yaml:"max_players"`
}

// Default returns the compiled-in balance.
func Default() Tuning {
	return Tuning{
		ListenAddr: ":8080",

		PhysicsTickMs:   16, // ~60 Hz
		EconomyTickMs:   1000,
		SpawnIntervalMs: 1500,
		BotTickMs:       2000,

		MoveMinIntervalMs: 20,
		MaxMoveDelta:      15,
		MaxMoveDistance:   10,

		ChatMinIntervalMs: 1000,
		ChatMaxLen:        200,

		BaseLockSeconds:         60,
		StaleEntitySeconds:      30,
		HeartbeatTimeoutSeconds: 30,
		JoinRebroadcastMs:       100,

		AdminEventDefaultMs: 30000,
		AdminEventMinMs:     10000,
		AdminEventMaxMs:     300000,

		StartMoney: 250,

		MaxPlayers: 6,
	}
}

// Load reads a YAML override file on top of the defaults.
func Load(path string) (Tuning, error) {
	t := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

// PhysicsTick returns the physics cadence as a duration.
func (t Tuning) PhysicsTick() time.Duration { return time.Duration(t.PhysicsTickMs) * time.Millisecond }

// EconomyTick returns the economy cadence as a duration.
func (t Tuning) EconomyTick() time.Duration { return time.Duration(t.EconomyTickMs) * time.Millisecond }

// SpawnInterval returns the spawn cadence as a duration.
func (t Tuning) SpawnInterval() time.Duration {
	return time.Duration(t.SpawnIntervalMs) * time.Millisecond
}

// BotTick returns the bot behavior cadence as a duration.
func (t Tuning) BotTick() time.Duration { return time.Duration(t.BotTickMs) * time.Millisecond }

// BaseLockDuration returns how long a base lock holds.
func (t Tuning) BaseLockDuration() time.Duration {
	return time.Duration(t.BaseLockSeconds) * time.Second
}

// StaleEntityAge returns the janitor threshold for abandoned collectibles.
func (t Tuning) StaleEntityAge() time.Duration {
	return time.Duration(t.StaleEntitySeconds) * time.Second
}

// JoinRebroadcast returns the delay before the post-join state re-push.
func (t Tuning) JoinRebroadcast() time.Duration {
	return time.Duration(t.JoinRebroadcastMs) * time.Millisecond
}

// ChatMinInterval returns the per-player chat rate limit.
func (t Tuning) ChatMinInterval() time.Duration {
	return time.Duration(t.ChatMinIntervalMs) * time.Millisecond
}

// MoveMinInterval returns the per-player movement rate limit.
func (t Tuning) MoveMinInterval() time.Duration {
	return time.Duration(t.MoveMinIntervalMs) * time.Millisecond
}

// HeartbeatTimeout returns the inactivity reaper threshold.
func (t Tuning) HeartbeatTimeout() time.Duration {
	return time.Duration(t.HeartbeatTimeoutSeconds) * time.Second
}
