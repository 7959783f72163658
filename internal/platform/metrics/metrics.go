// Package metrics provides a lightweight, atomic metrics collector for the
// game server, exposed as JSON for dashboards and in Prometheus text format
// for scrapers.
package metrics

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"
)

// Collector accumulates server counters. All fields are updated atomically so
// systems can record from any goroutine without coordination.
type Collector struct {
	startTime time.Time

	// Simulation.
	physicsTicks   atomic.Int64
	tickLatencyUs  atomic.Int64 // last physics tick duration, microseconds
	spawned        atomic.Int64
	delivered      atomic.Int64
	fellOff        atomic.Int64
	expired        atomic.Int64
	reapedPlayers  atomic.Int64
	rejectedMoves  atomic.Int64
	questsComplete atomic.Int64

	// Transport.
	connectionsOpened atomic.Int64
	connectionsClosed atomic.Int64
	messagesIn        atomic.Int64
	messagesOut       atomic.Int64
	schemaRejects     atomic.Int64

	// Persistence.
	eventWriteErrors atomic.Int64
}

// NewCollector creates a collector anchored at the current time.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

func (c *Collector) RecordPhysicsTick(d time.Duration) {
	c.physicsTicks.Add(1)
	c.tickLatencyUs.Store(d.Microseconds())
}

func (c *Collector) RecordSpawn()          { c.spawned.Add(1) }
func (c *Collector) RecordDelivery()       { c.delivered.Add(1) }
func (c *Collector) RecordFellOff()        { c.fellOff.Add(1) }
func (c *Collector) RecordExpired()        { c.expired.Add(1) }
func (c *Collector) RecordReapedPlayer()   { c.reapedPlayers.Add(1) }
func (c *Collector) RecordRejectedMove()   { c.rejectedMoves.Add(1) }
func (c *Collector) RecordQuestComplete()  { c.questsComplete.Add(1) }
func (c *Collector) RecordConnectionOpen() { c.connectionsOpened.Add(1) }
func (c *Collector) RecordConnectionClose() {
	c.connectionsClosed.Add(1)
}
func (c *Collector) RecordMessageIn()       { c.messagesIn.Add(1) }
func (c *Collector) RecordMessageOut()      { c.messagesOut.Add(1) }
func (c *Collector) RecordSchemaReject()    { c.schemaRejects.Add(1) }
func (c *Collector) RecordEventWriteError() { c.eventWriteErrors.Add(1) }

// Snapshot is the JSON view of the collector.
type Snapshot struct {
	UptimeSeconds float64 `json:"uptime_seconds"`

	PhysicsTicks    int64 `json:"physics_ticks"`
	TickLatencyUs   int64 `json:"tick_latency_us"`
	Spawned         int64 `json:"brainrots_spawned"`
	Delivered       int64 `json:"brainrots_delivered"`
	FellOff         int64 `json:"brainrots_fell_off"`
	Expired         int64 `json:"brainrots_expired"`
	ReapedPlayers   int64 `json:"players_reaped"`
	RejectedMoves   int64 `json:"moves_rejected"`
	QuestsCompleted int64 `json:"quests_completed"`

	ConnectionsOpened int64 `json:"connections_opened"`
	ConnectionsClosed int64 `json:"connections_closed"`
	MessagesIn        int64 `json:"messages_in"`
	MessagesOut       int64 `json:"messages_out"`
	SchemaRejects     int64 `json:"schema_rejects"`

	EventWriteErrors int64 `json:"event_write_errors"`
}

// Current captures a consistent-enough snapshot for reporting.
func (c *Collector) Current() Snapshot {
	return Snapshot{
		UptimeSeconds:     time.Since(c.startTime).Seconds(),
		PhysicsTicks:      c.physicsTicks.Load(),
		TickLatencyUs:     c.tickLatencyUs.Load(),
		Spawned:           c.spawned.Load(),
		Delivered:         c.delivered.Load(),
		FellOff:           c.fellOff.Load(),
		Expired:           c.expired.Load(),
		ReapedPlayers:     c.reapedPlayers.Load(),
		RejectedMoves:     c.rejectedMoves.Load(),
		QuestsCompleted:   c.questsComplete.Load(),
		ConnectionsOpened: c.connectionsOpened.Load(),
		ConnectionsClosed: c.connectionsClosed.Load(),
		MessagesIn:        c.messagesIn.Load(),
		MessagesOut:       c.messagesOut.Load(),
		SchemaRejects:     c.schemaRejects.Load(),
		EventWriteErrors:  c.eventWriteErrors.Load(),
	}
}

// Handler serves the snapshot as JSON.
func (c *Collector) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(c.Current())
	}
}

// PrometheusHandler serves the snapshot in Prometheus text exposition format.
func (c *Collector) PrometheusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := c.Current()
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		fmt.Fprintf(w, "# TYPE rot_uptime_seconds gauge\nrot_uptime_seconds %f\n", s.UptimeSeconds)
		fmt.Fprintf(w, "# TYPE rot_physics_ticks_total counter\nrot_physics_ticks_total %d\n", s.PhysicsTicks)
		fmt.Fprintf(w, "# TYPE rot_tick_latency_us gauge\nrot_tick_latency_us %d\n", s.TickLatencyUs)
		fmt.Fprintf(w, "# TYPE rot_brainrots_spawned_total counter\nrot_brainrots_spawned_total %d\n", s.Spawned)
		fmt.Fprintf(w, "# TYPE rot_brainrots_delivered_total counter\nrot_brainrots_delivered_total %d\n", s.Delivered)
		fmt.Fprintf(w, "# TYPE rot_brainrots_fell_off_total counter\nrot_brainrots_fell_off_total %d\n", s.FellOff)
		fmt.Fprintf(w, "# TYPE rot_brainrots_expired_total counter\nrot_brainrots_expired_total %d\n", s.Expired)
		fmt.Fprintf(w, "# TYPE rot_players_reaped_total counter\nrot_players_reaped_total %d\n", s.ReapedPlayers)
		fmt.Fprintf(w, "# TYPE rot_moves_rejected_total counter\nrot_moves_rejected_total %d\n", s.RejectedMoves)
		fmt.Fprintf(w, "# TYPE rot_quests_completed_total counter\nrot_quests_completed_total %d\n", s.QuestsCompleted)
		fmt.Fprintf(w, "# TYPE rot_connections_opened_total counter\nrot_connections_opened_total %d\n", s.ConnectionsOpened)
		fmt.Fprintf(w, "# TYPE rot_connections_closed_total counter\nrot_connections_closed_total %d\n", s.ConnectionsClosed)
		fmt.Fprintf(w, "# TYPE rot_messages_in_total counter\nrot_messages_in_total %d\n", s.MessagesIn)
		fmt.Fprintf(w, "# TYPE rot_messages_out_total counter\nrot_messages_out_total %d\n", s.MessagesOut)
		fmt.Fprintf(w, "# TYPE rot_schema_rejects_total counter\nrot_schema_rejects_total %d\n", s.SchemaRejects)
		fmt.Fprintf(w, "# TYPE rot_event_write_errors_total counter\nrot_event_write_errors_total %d\n", s.EventWriteErrors)
	}
}
