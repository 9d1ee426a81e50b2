package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"macrodash/internal/cache"
	"macrodash/internal/collector"
	"macrodash/internal/config"
	"macrodash/internal/dashboard"
	"macrodash/internal/recorder"
	"macrodash/internal/scheduler"
	"macrodash/internal/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] macrodash starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init snapshot pipeline
	snapCache := cache.New(time.Duration(cfg.Cache.TTL))
	svc := dashboard.NewService(fetcher, cfg.Catalog, cfg.DetailLabel, snapCache)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init refresh scheduler
	sched := scheduler.NewScheduler(ctx, svc, rec, cfg.Lookback.DefaultYears)
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: warm the cache immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, warming snapshot cache now")
		go sched.RunNow()
	}

	// HTTP server
	srv := server.NewServer(cfg, svc)
	srvErr := make(chan error, 1)
	go func() { srvErr <- srv.Run(ctx) }()

	log.Println("[INFO] macrodash is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal or server failure
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Println("[INFO] shutdown signal received, stopping...")
		cancel()
		if err := <-srvErr; err != nil {
			log.Printf("[ERROR] http server shutdown: %v", err)
		}
	case err := <-srvErr:
		if err != nil {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}
	log.Println("[INFO] macrodash stopped")
}
