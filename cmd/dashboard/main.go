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

	"MarketDashboard/internal/api"
	"MarketDashboard/internal/cache"
	"MarketDashboard/internal/collector"
	"MarketDashboard/internal/config"
	"MarketDashboard/internal/dashboard"
	"MarketDashboard/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] MarketDashboard starting...")

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

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource == "mock" {
		fetcher = &collector.MockFetcher{}
	} else {
		av := collector.NewAlphaVantageFetcher(cfg.AlphaVantage.BaseURL, cfg.AlphaVantage.APIKey, cfg.Proxy)
		av.DailyOutputSize = cfg.AlphaVantage.DailyOutputSize
		fetcher = av
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init cache
	store, err := cache.Open(ctx, cache.Options{
		Backend:    cfg.Cache.Backend,
		SQLitePath: cfg.Cache.SQLitePath,
		RedisAddr:  cfg.Cache.RedisAddr,
		RedisDB:    cfg.Cache.RedisDB,
	})
	if err != nil {
		log.Printf("[WARN] init %s cache failed, using memory: %v", cfg.Cache.Backend, err)
		store = cache.NewMemoryStore()
	}
	if s, ok := store.(*cache.SQLiteStore); ok {
		if n, err := s.PurgeExpired(ctx); err != nil {
			log.Printf("[WARN] purge expired cache entries: %v", err)
		} else if n > 0 {
			log.Printf("[INFO] purged %d expired cache entries", n)
		}
	}
	c := cache.New(store, cache.Policy{
		Quote:        cfg.Cache.QuoteTTL,
		History:      cfg.Cache.HistoryTTL,
		Fundamentals: cfg.Cache.FundamentalsTTL,
	})
	defer c.Close()
	log.Printf("[INFO] cache backend: %s", cfg.Cache.Backend)

	// Init dashboard service
	src := cache.NewCachedSource(collector.NewCollector(fetcher), c)
	svc := dashboard.NewService(src, dashboard.Settings{
		Benchmark:     cfg.Dashboard.Benchmark,
		Indices:       symbols(cfg.Dashboard.Indices),
		International: symbols(cfg.Dashboard.International),
		Sectors:       symbols(cfg.Dashboard.Sectors),
		SectorTrends:  symbols(cfg.Dashboard.SectorTrends),
	})

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, svc)
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if cfg.Schedule.RunOnStart {
		log.Println("[INFO] run_on_start enabled, refreshing now")
		go sched.RunNow()
	}

	// Start HTTP API
	handler := api.NewHandler(svc, sched)
	if p, ok := store.(api.Pinger); ok {
		handler.AddHealthCheck("cache", p)
	}
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler.SetupRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()

	log.Printf("[INFO] MarketDashboard is listening on %s. Press Ctrl+C to stop.", cfg.Server.Addr)

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] http shutdown: %v", err)
	}
	cancel()
	log.Println("[INFO] MarketDashboard stopped")
}

func symbols(in []config.SymbolConfig) []dashboard.Symbol {
	out := make([]dashboard.Symbol, len(in))
	for i, s := range in {
		out[i] = dashboard.Symbol{Symbol: s.Symbol, Name: s.Name, Inverse: s.Inverse}
	}
	return out
}
