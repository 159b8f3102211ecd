package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"SIPCompare/internal/api"
	"SIPCompare/internal/collector"
	"SIPCompare/internal/compare"
	"SIPCompare/internal/config"
	"SIPCompare/internal/model"
	"SIPCompare/internal/recorder"
	"SIPCompare/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] SIPCompare starting...")

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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load datasets once; the catalog is read-only afterwards
	col := collector.NewCollector(
		entryFor(cfg.Instruments.Primary),
		entryFor(cfg.Instruments.Benchmark),
	)
	cat, err := col.Collect(ctx)
	if err != nil {
		log.Fatalf("[FATAL] load datasets: %v", err)
	}

	engine, err := compare.NewEngine(cat, cfg.Instruments.Primary.Symbol, cfg.Instruments.Benchmark.Symbol, cfg.Plan.MaxMonths)
	if err != nil {
		log.Fatalf("[FATAL] init engine: %v", err)
	}
	log.Printf("[INFO] comparing %s vs %s over up to %d months", cfg.Instruments.Primary.Symbol, cfg.Instruments.Benchmark.Symbol, engine.MaxTenure())

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

	// Init scheduler
	sched := scheduler.NewScheduler(engine, rec, model.InvestmentPlan{
		TenureMonths: cfg.Plan.DefaultMonths,
		Contribution: cfg.Plan.DefaultAmount,
	})
	if err := sched.RegisterAll(cfg.Schedule.DigestCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, running digest now")
		go func() {
			if _, err := sched.RunDigestNow(); err != nil {
				log.Printf("[ERROR] digest: %v", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.NewRouter(engine, rec, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("[INFO] listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()

	log.Println("[INFO] SIPCompare is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] http shutdown: %v", err)
	}
	cancel()
	log.Println("[INFO] SIPCompare stopped")
}

func entryFor(ic config.InstrumentConfig) collector.Entry {
	inst := model.Instrument{Symbol: ic.Symbol, Name: ic.Name, DisplayMultiplier: ic.Multiplier}
	if ic.DatasetPath != "" {
		return collector.Entry{Instrument: inst, Source: &collector.FileSource{Path: ic.DatasetPath}}
	}
	return collector.Entry{Instrument: inst, Source: &collector.EmbeddedSource{File: ic.Bundled}}
}
