package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"screener-api/internal/cli"
	"screener-api/internal/collector"
	"screener-api/internal/config"
	"screener-api/internal/svc"

	// Import for side-effects: registers the mexc market provider
	_ "screener-api/pkg/market/exchanges/mexc"
)

const shutdownTimeout = 10 * time.Second

var (
	configFile  = flag.String("f", "etc/screener.yaml", "the config file")
	seedOnStart = flag.Bool("seed", false, "backfill candle history before polling")
)

func main() {
	flag.Parse()
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	log.Println("[main] Starting price poller...")

	appCfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("[main] Failed to load app config: %v", err)
	}

	log.Printf("[main] Configuration loaded:")
	for _, line := range cli.ConfigSummaryLines(appCfg) {
		log.Printf("  - %s", line)
	}

	serviceCtx := svc.NewServiceContext(*appCfg)
	if serviceCtx.Collector == nil {
		log.Fatalf("[main] No market provider configured; set market.file in %s", *configFile)
	}
	log.Printf("  - Universe: %d pairs", len(serviceCtx.Universe))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *seedOnStart {
		log.Println("[main] Backfilling candle history...")
		symbols, candles, err := serviceCtx.Collector.LoadHistory(ctx, nil, collector.DefaultSeedTimeframes, appCfg.Screener.SeedBars)
		if err != nil {
			log.Printf("[main] Warning: history backfill incomplete: %v", err)
		}
		log.Printf("[main] Backfill done: %d symbols, %d candles", symbols, candles)
	}

	done := make(chan struct{})
	go func() {
		serviceCtx.Collector.Run(ctx)
		close(done)
	}()

	log.Println("[main] Poller started. Press Ctrl+C to stop.")
	<-ctx.Done()
	log.Println("[main] Shutdown signal received, stopping...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	select {
	case <-done:
		log.Println("[main] Poller stopped cleanly")
	case <-shutdownCtx.Done():
		log.Println("[main] Shutdown timeout exceeded, forcing exit")
	}
}
