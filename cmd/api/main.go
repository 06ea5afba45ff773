package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iamasit07/connect-four/internal/config"
	"github.com/iamasit07/connect-four/internal/service/cleanup"
	"github.com/iamasit07/connect-four/internal/service/game"
	transportHttp "github.com/iamasit07/connect-four/internal/transport/http"
	"github.com/iamasit07/connect-four/internal/transport/websocket"
)

func main() {
	config.LoadEnvFiles()

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 1. Initialize Services (Business Logic Layer)
	sessionManager := game.NewSessionManager(true, cfg.BotMoveDelay)
	connManager := websocket.NewConnectionManager()

	// 2. Initialize Background Workers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cleanupWorker := cleanup.NewWorker(sessionManager, cfg.CleanupInterval, cfg.FinishedSessionTTL, cfg.ActiveSessionTTL)
	cleanupWorker.Start(ctx)

	// 3. Setup Gin Router
	wsHandler := websocket.NewHandler(connManager, sessionManager, cfg)
	router := transportHttp.NewRouter(cfg, sessionManager, wsHandler.HandleWebSocket)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s (%dx%d, %s, depth %d)",
			cfg.Port, cfg.Rows, cfg.Columns, cfg.Difficulty, cfg.Depth())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Server is shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// hijacked websocket connections are not tracked by Shutdown
	connManager.CloseAll()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
