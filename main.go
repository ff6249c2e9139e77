package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"jobradar/pkg/api"
	"jobradar/pkg/browser"
	"jobradar/pkg/cache"
	"jobradar/pkg/config"
	"jobradar/pkg/crawler"
	"jobradar/pkg/sites"
)

func main() {
	// Load config.yml
	cfg, err := config.LoadConfig("config.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load .env for secrets
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	// Cache: Redis when configured, in-memory LRU otherwise
	var store cache.Store
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		redisCache, err := cache.NewRedisCache(redisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		store = redisCache
		log.Println("Using Redis cache")
	} else {
		store = cache.NewMemoryCache(1000)
		log.Println("REDIS_URL not set, using in-memory cache")
	}
	defer store.Close()

	// Browser session manager (lazy: the browser launches on first crawl)
	manager := browser.NewManager(
		cfg.Browser.Headless,
		os.Getenv("BROWSER_BIN"),
		cfg.Crawler.MaxNavigationRetries,
	)
	defer manager.Cleanup()

	registry := sites.Default()
	log.Printf("Registered sites: %v", registry.Names())

	orchestrator := crawler.New(manager, registry, store, crawler.Options{
		NavigationTimeout: time.Duration(cfg.Crawler.NavigationTimeoutSeconds) * time.Second,
		InterSiteDelay:    time.Duration(cfg.Crawler.InterSiteDelayMs) * time.Millisecond,
		CacheTTL:          time.Duration(cfg.Crawler.CacheTTLMinutes) * time.Minute,
	})

	server := api.NewServer(orchestrator, store)

	port := cfg.Server.Port
	if p := os.Getenv("PORT"); p != "" {
		fmt.Sscanf(p, "%d", &port)
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: server.Handler(),
	}

	go func() {
		log.Printf("jobradar listening on :%d", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown error: %v", err)
	}
}
