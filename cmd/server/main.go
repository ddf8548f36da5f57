package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"SalesRadar/internal/config"
	"SalesRadar/internal/funnelcfg"
	"SalesRadar/internal/httpx"
	"SalesRadar/internal/notifier"
	"SalesRadar/internal/recorder"
	"SalesRadar/internal/report"
	"SalesRadar/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] SalesRadar starting...")

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

	// Init CRM fetcher
	var fetcher report.Fetcher
	if cfg.CRM.BaseURL != "" {
		fetcher = report.NewCRMFetcher(cfg.CRM.BaseURL, cfg.CRM.APIKey, cfg.Proxy)
	} else {
		log.Println("[WARN] crm.base_url not set, using mock fetcher")
		fetcher = &report.MockFetcher{}
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init template store
	var templates *funnelcfg.Store
	var resolver funnelcfg.Resolver
	if cfg.Database.TemplatePath != "" {
		ts, err := funnelcfg.Open(cfg.Database.TemplatePath)
		if err != nil {
			log.Printf("[WARN] open template store failed, using built-in default: %v", err)
			resolver = funnelcfg.NewStaticResolver()
		} else {
			templates = ts
			resolver = ts
			defer ts.Close()
		}
	} else {
		resolver = funnelcfg.NewStaticResolver()
	}

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

	// Init report builder
	builder := report.NewBuilder(fetcher, resolver, cfg.Funnel.FocusMax)

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, cfg.Telegram.MaxRetries)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	agent := scheduler.Agent{
		OrganizationID: cfg.Agent.OrganizationID,
		ID:             cfg.Agent.ID,
		Name:           cfg.Agent.Name,
	}
	sched := scheduler.NewScheduler(ctx, builder, agent, tn, rec)
	if err := sched.RegisterAll(cfg.Schedule.DailyCron, cfg.Schedule.WeeklyCron, cfg.Schedule.MonthlyCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	// HTTP API
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           httpx.NewRouter(builder, templates, resolver, agent),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("[INFO] HTTP API listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing weekly digest now")
		go sched.RunWeeklyNow()
	}

	log.Println("[INFO] SalesRadar is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[WARN] http shutdown: %v", err)
	}
	cancel()
	log.Println("[INFO] SalesRadar stopped")
}
