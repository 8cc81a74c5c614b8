package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"arena/internal/config"
	"arena/internal/game"
	"arena/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	tuning := game.DefaultConfig()
	if cfg.TuningPath != "" {
		tuning, err = game.LoadConfig(cfg.TuningPath)
		if err != nil {
			log.Fatalf("Tuning error: %v", err)
		}
		log.Printf("Loaded tuning from %s", cfg.TuningPath)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mm := server.NewMatchmaking(tuning)

	// Start room tick processing
	go mm.Run(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", server.HandleWebSocket(mm))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	// Serve static files from web directory when present
	if _, err := os.Stat(cfg.WebDir); err == nil {
		log.Printf("Serving static files from: %s", cfg.WebDir)
		fs := http.FileServer(http.Dir(cfg.WebDir))
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/" {
				http.ServeFile(w, r, filepath.Join(cfg.WebDir, "index.html"))
				return
			}
			fs.ServeHTTP(w, r)
		})
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("Server starting on %s", cfg.ListenAddr())
	log.Printf("WebSocket endpoint: ws://localhost:%s/ws", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("Server error:", err)
	}
	log.Printf("Server stopped")
}
