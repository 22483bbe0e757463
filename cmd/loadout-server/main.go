// Package main runs the loadout randomizer HTTP server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ramonehamilton/helldivers-loadout/internal/api"
	"github.com/ramonehamilton/helldivers-loadout/internal/catalog"
	"github.com/ramonehamilton/helldivers-loadout/internal/config"
	"github.com/ramonehamilton/helldivers-loadout/internal/events"
	"github.com/ramonehamilton/helldivers-loadout/internal/metrics"
	"github.com/ramonehamilton/helldivers-loadout/internal/randomizer"
	"github.com/ramonehamilton/helldivers-loadout/internal/version"
)

var (
	configPath = flag.String("config", "config.toml", "Path to the TOML config file")
	port       = flag.Int("port", 0, "API server port (overrides config)")
	catalogDir = flag.String("catalog", "", "Catalog directory (overrides config)")
	debug      = flag.Bool("debug", false, "Log every roll")
)

func main() {
	flag.Parse()

	fmt.Printf("Helldivers Loadout Randomizer %s\n", version.GetVersion())
	fmt.Println("=================================")
	fmt.Println()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *catalogDir != "" {
		cfg.Catalog.Dir = *catalogDir
	}
	if *debug {
		cfg.App.DebugMode = true
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	initial, err := catalog.Load(cfg.Catalog.Dir)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	store := catalog.NewStore(initial)

	rollMetrics := metrics.NewRollMetrics()
	sampler := randomizer.NewSampler(randomizer.WithDebug(cfg.App.DebugMode))

	apiConfig, err := api.ConfigFromApp(cfg)
	if err != nil {
		log.Fatalf("Invalid server config: %v", err)
	}
	server := api.NewServer(apiConfig, api.Dependencies{
		Store:   store,
		Sampler: sampler,
		Metrics: rollMetrics,
	})

	dispatcher := events.NewEventDispatcher()
	dispatcher.Register(events.NewLoggingObserver(cfg.App.DebugMode))
	dispatcher.Register(events.NewMetricsObserver(rollMetrics))
	dispatcher.Register(server.NewWebSocketObserver())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watchDone := make(chan struct{})
	if cfg.Catalog.Watch {
		debounce, err := cfg.GetCatalogDebounce()
		if err != nil {
			log.Fatalf("Invalid catalog debounce: %v", err)
		}
		watcher := catalog.NewWatcher(store, catalog.WatcherConfig{
			Dir:      cfg.Catalog.Dir,
			Debounce: debounce,
			OnReload: func(c *catalog.Catalog) {
				dispatcher.Dispatch(events.NewCatalogReloaded(c, store.LoadedAt()))
			},
			OnError: func(err error) {
				dispatcher.Dispatch(events.NewCatalogReloadFailed(err))
			},
		})
		go func() {
			defer close(watchDone)
			if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("Catalog watcher stopped: %v", err)
			}
		}()
	} else {
		close(watchDone)
	}

	if err := server.Start(); err != nil {
		log.Fatalf("Failed to start API server: %v", err)
	}

	fmt.Println()
	fmt.Printf("Catalog: %s\n", cfg.Catalog.Dir)
	fmt.Printf("API server running at http://localhost:%d\n", cfg.Server.Port)
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

	<-ctx.Done()

	fmt.Println()
	fmt.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	<-watchDone

	fmt.Println("API server stopped.")
}
