// Command agitator is a load generator: it connects a swarm of fake players
// that join, wander, claim collectibles and chat, to shake bugs out of the
// server under concurrent traffic.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/brainrot-tycoon/server/internal/platform/logger"
)

type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

var (
	sent     atomic.Int64
	received atomic.Int64
	errs     atomic.Int64
)

func main() {
	var (
		url      = flag.String("url", "ws://localhost:8080/ws", "server websocket URL")
		players  = flag.Int("players", 4, "number of fake players")
		duration = flag.Duration("duration", 30*time.Second, "how long to run")
		rate     = flag.Duration("rate", 50*time.Millisecond, "delay between actions per player")
	)
	flag.Parse()

	log := logger.NewLogger()
	log.Info.Printf("agitating %s with %d players for %s", *url, *players, *duration)

	var wg sync.WaitGroup
	deadline := time.Now().Add(*duration)
	for i := 0; i < *players; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			agitate(log, *url, n, deadline, *rate)
		}(i)
		time.Sleep(100 * time.Millisecond) // stagger joins
	}
	wg.Wait()

	log.Info.Printf("done: sent=%d received=%d errors=%d",
		sent.Load(), received.Load(), errs.Load())
}

func agitate(log *logger.Logger, url string, n int, deadline time.Time, rate time.Duration) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		errs.Add(1)
		log.Error.Printf("player %d dial: %v", n, err)
		return
	}
	defer conn.Close()

	rng := rand.New(rand.NewSource(int64(n) + time.Now().UnixNano()))

	// Drain inbound frames and remember collectible IDs to claim.
	var mu sync.Mutex
	var rotIDs []string
	go func() {
		for {
			var env envelope
			if err := conn.ReadJSON(&env); err != nil {
				return
			}
			received.Add(1)
			if env.Event != "updateBrainRots" {
				continue
			}
			var rots []struct {
				ID        string `json:"id"`
				ClaimedBy string `json:"claimedBy"`
			}
			if json.Unmarshal(env.Data, &rots) != nil {
				continue
			}
			ids := make([]string, 0, len(rots))
			for _, r := range rots {
				if r.ClaimedBy == "" {
					ids = append(ids, r.ID)
				}
			}
			mu.Lock()
			rotIDs = ids
			mu.Unlock()
		}
	}()

	send := func(event string, data any) {
		raw, _ := json.Marshal(data)
		if err := conn.WriteJSON(envelope{Event: event, Data: raw}); err != nil {
			errs.Add(1)
			return
		}
		sent.Add(1)
	}

	send("joinGame", map[string]any{"username": fmt.Sprintf("agitator-%d", n)})

	heartbeat := time.NewTicker(5 * time.Second)
	defer heartbeat.Stop()

	for time.Now().Before(deadline) {
		select {
		case <-heartbeat.C:
			send("heartbeat", map[string]any{})
		default:
		}

		switch r := rng.Float64(); {
		case r < 0.7:
			send("playerMove", map[string]any{
				"dx": rng.Float64()*10 - 5,
				"dy": rng.Float64()*10 - 5,
			})
		case r < 0.9:
			mu.Lock()
			var id string
			if len(rotIDs) > 0 {
				id = rotIDs[rng.Intn(len(rotIDs))]
			}
			mu.Unlock()
			if id != "" {
				send("pickUpBrainRot", map[string]any{"rotId": id})
			}
		case r < 0.95:
			send("lockBase", map[string]any{})
		default:
			send("chatMessage", map[string]any{"message": fmt.Sprintf("agitation %d", rng.Intn(1000))})
		}
		time.Sleep(rate)
	}
}
