// Command rot-server runs the authoritative brainrot collector game server.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brainrot-tycoon/server/internal/engine"
	"github.com/brainrot-tycoon/server/internal/events"
	"github.com/brainrot-tycoon/server/internal/infra/storage"
	"github.com/brainrot-tycoon/server/internal/network"
	"github.com/brainrot-tycoon/server/internal/platform/logger"
	"github.com/brainrot-tycoon/server/internal/platform/metrics"
	"github.com/brainrot-tycoon/server/internal/platform/tuning"
)

func main() {
	var (
		configPath  = flag.String("config", "", "optional tuning YAML overriding the built-in balance")
		dbPath      = flag.String("db", "brainrot.db", "sqlite audit database path")
		archivePath = flag.String("archive", "", "optional world snapshot archive (.jsonl.zst)")
		archiveEvr  = flag.Duration("archive-interval", 30*time.Second, "world snapshot cadence")
		mode        = flag.String("mode", "online", "session mode: online, solo or ai")
		addr        = flag.String("addr", "", "listen address override")
	)
	flag.Parse()

	log := logger.NewLogger()

	cfg := tuning.Default()
	if *configPath != "" {
		var err error
		cfg, err = tuning.Load(*configPath)
		if err != nil {
			log.Error.Fatalf("load tuning: %v", err)
		}
		log.Info.Printf("tuning loaded from %s", *configPath)
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}

	gameMode := engine.Mode(*mode)
	switch gameMode {
	case engine.ModeOnline, engine.ModeSolo, engine.ModeAI:
	default:
		log.Error.Fatalf("unknown mode %q", *mode)
	}

	db, err := storage.InitSQLite(*dbPath)
	if err != nil {
		log.Error.Fatalf("init sqlite: %v", err)
	}
	defer db.Close()

	met := metrics.NewCollector()
	store := storage.NewSQLiteEventStore(db, log, met)
	eventLog := events.NewEventLog(store)
	defer eventLog.Close()
	hub := network.NewHub(log, met)
	eng := engine.New(cfg, log, eventLog, hub, met, gameMode)
	replay := network.NewReplayAPI(eventLog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go eng.Run(ctx)

	if *archivePath != "" {
		arch, err := storage.NewArchiver(*archivePath)
		if err != nil {
			log.Error.Fatalf("open archive: %v", err)
		}
		defer arch.Close()
		go func() {
			ticker := time.NewTicker(*archiveEvr)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if err := arch.WriteRecord(eng.Snapshot()); err != nil {
						log.Error.Printf("archive write: %v", err)
					}
				}
			}
		}()
		log.Info.Printf("archiving world snapshots to %s every %s", *archivePath, *archiveEvr)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS(eng))
	mux.HandleFunc("/metrics", met.Handler())
	mux.HandleFunc("/metrics/prometheus", met.PrometheusHandler())
	mux.HandleFunc("/api/replay", replay.HandleReplay)
	mux.HandleFunc("/api/replay/stats", replay.HandleStats)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info.Printf("listening on %s (mode=%s)", cfg.ListenAddr, gameMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error.Printf("shutdown: %v", err)
	}
}
