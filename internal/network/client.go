package network

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/brainrot-tycoon/server/internal/engine"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The game client is served from arbitrary origins during development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one websocket session. Its ID doubles as the player ID inside
// the engine.
type Client struct {
	ID   string
	hub  *Hub
	eng  *engine.Engine
	conn *websocket.Conn

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

// ServeWS upgrades an HTTP request into a game session and starts its pumps.
func (h *Hub) ServeWS(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.log.Error.Printf("ws upgrade: %v", err)
			return
		}
		c := &Client{
			ID:   uuid.NewString(),
			hub:  h,
			eng:  eng,
			conn: conn,
			send: make(chan []byte, sendBuffer),
		}
		h.register(c)
		go c.writePump()
		go c.readPump()
	}
}

// trySend queues a frame without blocking; a full buffer means the client
// cannot keep up and gets cut off. The closed flag is checked under the same
// mutex that closes the channel, so a frame can never land on a closed send
// channel no matter how the disconnect raced the fan-out.
func (c *Client) trySend(raw []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- raw:
	default:
		c.hub.log.Warn.Printf("client %s send buffer full, dropping connection", c.ID)
		c.closeLocked()
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
}

func (c *Client) closeLocked() {
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// readPump consumes inbound frames, validates them and posts the matching
// handler onto the engine goroutine. It owns the disconnect path: when the
// read loop exits for any reason the player is removed from the world.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.eng.Do(c.ID, func() { c.eng.HandleDisconnect(c.ID) })
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.log.Warn.Printf("client %s read: %v", c.ID, err)
			}
			return
		}
		c.hub.met.RecordMessageIn()
		c.dispatch(raw)
	}
}

// validationFailures maps each inbound message to the failure event a
// schema-invalid payload earns.
var validationFailures = map[string]string{
	MsgMove:       engine.EventMoveRejected,
	MsgPickUp:     engine.EventPickupFailed,
	MsgSell:       engine.EventSellFailed,
	MsgSteal:      engine.EventStealFailed,
	MsgUpgrade:    engine.EventUpgradeFailed,
	MsgLockBase:   engine.EventLockFailed,
	MsgAdminEvent: engine.EventAdminEventFailed,
	MsgChat:       engine.EventChatError,
}

// rejectInvalid tells the client its frame was thrown away. Known messages
// get their own failure event; everything else gets serverError.
func (c *Client) rejectInvalid(event string) {
	failure, ok := validationFailures[event]
	if !ok {
		failure = engine.EventServerError
	}
	raw, err := marshalEnvelope(failure, map[string]any{"reason": "invalid payload"})
	if err != nil {
		return
	}
	c.trySend(raw)
	c.hub.met.RecordMessageOut()
}

// dispatch validates a frame against its schema and routes it to the engine.
// Malformed frames are rejected with a failure event; the connection
// survives.
func (c *Client) dispatch(raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.hub.met.RecordSchemaReject()
		c.rejectInvalid("")
		return
	}
	if err := ValidatePayload(env.Event, env.Data); err != nil {
		c.hub.met.RecordSchemaReject()
		c.hub.log.Warn.Printf("client %s invalid %q payload: %v", c.ID, env.Event, err)
		c.rejectInvalid(env.Event)
		return
	}

	id := c.ID
	switch env.Event {
	case MsgJoin:
		var in struct {
			Username string `json:"username"`
			Mode     string `json:"mode"`
		}
		_ = json.Unmarshal(env.Data, &in)
		c.eng.Do(id, func() { c.eng.HandleJoin(id, in.Username, in.Mode) })
	case MsgMove:
		var in struct {
			DX float64 `json:"dx"`
			DY float64 `json:"dy"`
		}
		_ = json.Unmarshal(env.Data, &in)
		c.eng.Do(id, func() { c.eng.HandleMove(id, in.DX, in.DY) })
	case MsgPickUp:
		var in struct {
			RotID string `json:"rotId"`
		}
		_ = json.Unmarshal(env.Data, &in)
		c.eng.Do(id, func() { c.eng.HandlePickUp(id, in.RotID) })
	case MsgSell:
		var in struct {
			RotID string `json:"rotId"`
		}
		_ = json.Unmarshal(env.Data, &in)
		c.eng.Do(id, func() { c.eng.HandleSell(id, in.RotID) })
	case MsgSteal:
		var in struct {
			TargetPlayerID string `json:"targetPlayerId"`
			RotID          string `json:"rotId"`
		}
		_ = json.Unmarshal(env.Data, &in)
		c.eng.Do(id, func() { c.eng.HandleSteal(id, in.TargetPlayerID, in.RotID) })
	case MsgUpgrade:
		var in struct {
			UpgradeType string `json:"upgradeType"`
			BaseNumber  int    `json:"baseNumber"`
		}
		_ = json.Unmarshal(env.Data, &in)
		c.eng.Do(id, func() { c.eng.HandleUpgrade(id, in.UpgradeType, in.BaseNumber) })
	case MsgLockBase:
		c.eng.Do(id, func() { c.eng.HandleLock(id) })
	case MsgAdminEvent:
		var in struct {
			Duration int `json:"duration"`
		}
		_ = json.Unmarshal(env.Data, &in)
		c.eng.Do(id, func() { c.eng.HandleAdminEvent(id, in.Duration) })
	case MsgChat:
		var in struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(env.Data, &in)
		c.eng.Do(id, func() { c.eng.HandleChat(id, in.Message) })
	case MsgHeartbeat:
		c.eng.Do(id, func() { c.eng.HandleHeartbeat(id) })
	}
}

// writePump drains the send queue onto the socket and keeps the connection
// alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case raw, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
