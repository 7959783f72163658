// Package network carries the websocket transport: the hub that fans events
// out to clients, the per-connection pumps, inbound payload validation and
// the replay HTTP API.
package network

import (
	"encoding/json"
	"sync"

	"github.com/brainrot-tycoon/server/internal/platform/logger"
	"github.com/brainrot-tycoon/server/internal/platform/metrics"
)

// Envelope is the wire frame for every message in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Hub tracks connected clients and fans out events. It implements
// engine.Broadcaster; the engine goroutine and the connection goroutines both
// call in, so the client table is mutex guarded.
type Hub struct {
	log *logger.Logger
	met *metrics.Collector

	mu      sync.RWMutex
	clients map[string]*Client // keyed by player/session ID
}

// NewHub creates an empty hub.
func NewHub(log *logger.Logger, met *metrics.Collector) *Hub {
	return &Hub{
		log:     log,
		met:     met,
		clients: make(map[string]*Client),
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c.ID] = c
	h.mu.Unlock()
	h.met.RecordConnectionOpen()
	h.log.Info.Printf("client connected: %s (%d online)", c.ID, h.Count())
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if cur, ok := h.clients[c.ID]; ok && cur == c {
		delete(h.clients, c.ID)
	}
	h.mu.Unlock()
	h.met.RecordConnectionClose()
	h.log.Info.Printf("client disconnected: %s (%d online)", c.ID, h.Count())
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func marshalEnvelope(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: data})
}

// Broadcast sends an event to every connected client. Slow clients are
// dropped rather than allowed to stall the world.
func (h *Hub) Broadcast(event string, payload any) {
	raw, err := marshalEnvelope(event, payload)
	if err != nil {
		h.log.Error.Printf("broadcast marshal %s: %v", event, err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		c.trySend(raw)
		h.met.RecordMessageOut()
	}
}

// SendTo sends an event to one client. Unknown IDs (bots, the just
// disconnected) are ignored.
func (h *Hub) SendTo(playerID, event string, payload any) {
	raw, err := marshalEnvelope(event, payload)
	if err != nil {
		h.log.Error.Printf("send marshal %s: %v", event, err)
		return
	}
	h.mu.RLock()
	c, ok := h.clients[playerID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	c.trySend(raw)
	h.met.RecordMessageOut()
}

// Disconnect forcibly closes one client's connection. The client leaves the
// table in the same critical section, so later fan-outs never see it; the
// read pump's deferred unregister handles the bookkeeping when the pumps
// wind down.
func (h *Hub) Disconnect(playerID string) {
	h.mu.Lock()
	c, ok := h.clients[playerID]
	if ok {
		delete(h.clients, playerID)
	}
	h.mu.Unlock()
	if ok {
		c.close()
	}
}
