// Command arenad runs the match-core server: the WebSocket gateway, the
// matchmaking queue, and every live match's tick loop. Process wiring and
// graceful shutdown: flag-based port, signal-triggered shutdown with a
// bounded grace period.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/shipcore/arena/internal/config"
	"github.com/shipcore/arena/internal/matchmaking"
	"github.com/shipcore/arena/internal/metrics"
	"github.com/shipcore/arena/internal/stats"
	"github.com/shipcore/arena/internal/transport"
)

func main() {
	cfg := config.Parse()
	log.Printf("starting arenad: %s", cfg.Summary())

	collectors := metrics.NewCollectors(prometheus.DefaultRegisterer)

	var sink stats.Sink = stats.LogSink{}
	mm := matchmaking.New(cfg.Matchmaking, sink, collectors)

	ctx, cancel := context.WithCancel(context.Background())
	gateway := transport.NewGateway(ctx, mm, transport.DefaultAuth)

	go mm.Run(ctx, gateway.StartMatch)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", gateway.HandleWS)
	mux.HandleFunc("/health", gateway.Health)
	mux.HandleFunc("/api/matches", gateway.Matches)
	mux.Handle("/metrics", transport.MetricsHandler())

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("arenad listening at http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("arenad: server failed to start: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Printf("arenad: shutting down (signal: %v)...", sig)

	// Stop accepting new matchmaking/match-loop work before closing HTTP
	// listeners, so in-flight matches get a chance to hit their own
	// context-cancellation abort path rather than being cut off mid-tick.
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("arenad: HTTP shutdown error: %v", err)
	}

	log.Println("arenad: stopped")
}
