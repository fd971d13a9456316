package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/SauravKesari/billify/internal/config"
	"github.com/SauravKesari/billify/internal/server"
	"github.com/SauravKesari/billify/internal/storage"
)

// simple middleware chain
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	store, err := storage.Open(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open storage: %v", err)
	}
	log.Printf("Starting server env=%s port=%s tax_rate=%g", cfg.Env, cfg.Port, cfg.TaxRate)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: withLogging(server.New(store, cfg))}

	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
