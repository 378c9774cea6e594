package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"shareit-backend/config"
	"shareit-backend/internal/clock"
	"shareit-backend/internal/gateway"
	"shareit-backend/internal/mw"
)

func main() {
	logger := log.New(os.Stdout, "shareit-gateway ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	if err := gateway.RegisterValidators(clock.Real()); err != nil {
		logger.Fatalf("failed to register validators: %v", err)
	}

	client := gateway.NewClient(cfg.Gateway.ServerURL, cfg.Gateway.Timeout)
	limiter := mw.NewIPRateLimiter(rate.Limit(cfg.Gateway.RateLimitPerSec), cfg.Gateway.RateLimitBurst, cfg.Gateway.LimiterTTL)
	router := gateway.NewRouter(gateway.NewHandler(client), limiter)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Gateway.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("gateway starting on port %d, forwarding to %s", cfg.Gateway.Port, cfg.Gateway.ServerURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping gateway...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Gateway gracefully stopped")
}
