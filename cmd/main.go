// vagalink-ingest-service
//
// Job-posting ingestion pipeline. Two producers feed it:
//   - POST /ingest-single — one posting per call from a webhook-style
//     producer, deduped by its stable external_id (insert-or-update)
//   - POST /ingest-batch  — bulk import without stable ids; each item gets a
//     content fingerprint and is inserted as new
//
// A cron sweep deactivates postings past their expiry date.
// Publishes EVENT_POSTING_INGESTED to Redis for downstream consumers.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"vagalink/ingest-service/internal/config"
	"vagalink/ingest-service/internal/db"
	"vagalink/ingest-service/internal/events"
	"vagalink/ingest-service/internal/ingest"
	"vagalink/ingest-service/internal/metrics"
	"vagalink/ingest-service/internal/scheduler"
	"vagalink/ingest-service/internal/store"
)

const version = "1.0.0"

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	if err := godotenv.Load(); err != nil {
		log.Println("[ingest-service] No .env file — using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[ingest-service] Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── PostgreSQL ───────────────────────────────────────────────────────────
	log.Println("[ingest-service] Connecting to PostgreSQL…")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[ingest-service] PostgreSQL: %v", err)
	}
	defer pool.Close()
	log.Println("[ingest-service] PostgreSQL connected ✓")

	// ── Redis ────────────────────────────────────────────────────────────────
	log.Println("[ingest-service] Connecting to Redis…")
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("[ingest-service] Redis: %v", err)
	}
	defer rdb.Close()
	log.Println("[ingest-service] Redis connected ✓")

	// ── Pipeline ─────────────────────────────────────────────────────────────
	st := store.NewPostgres(pool)
	svc := ingest.NewService(st, events.NewRedisPublisher(rdb))

	// ── Expiry sweep ─────────────────────────────────────────────────────────
	sched := scheduler.New(st, cfg.SweepIntervalHours)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("[ingest-service] Scheduler: %v", err)
	}
	defer sched.Stop()

	// ── HTTP server ──────────────────────────────────────────────────────────
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)
	mux.Handle("/metrics", metrics.Handler())

	h := ingest.NewHandler(svc)
	h.RegisterRoutes(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[ingest-service] v%s listening on :%s", version, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[ingest-service] HTTP server error: %v", err)
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[ingest-service] Shutting down…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ingest-service] Shutdown error: %v", err)
	}
	log.Println("[ingest-service] Stopped.")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "ingest-service",
		"version": version,
	})
}
