package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/codd-collab/lang-server/internal/auth"
	"github.com/codd-collab/lang-server/internal/config"
	"github.com/codd-collab/lang-server/internal/greeting"
	"github.com/codd-collab/lang-server/internal/languages"
	"github.com/codd-collab/lang-server/internal/middleware"
	"github.com/codd-collab/lang-server/internal/store"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// ── SQLite ───────────────────────────────────────────────
	db, err := store.OpenDB(cfg.DBPath)
	if err != nil {
		logger.Fatal("sqlite connect", zap.Error(err))
	}
	defer db.Close()
	st := store.NewSQLiteStore(db)
	if err := st.Migrate(ctx); err != nil {
		logger.Fatal("sqlite migrate", zap.Error(err))
	}

	// ── Handlers ─────────────────────────────────────────────
	authHandler := auth.NewHandler(st, auth.BcryptHasher{}, logger)
	langHandler := languages.NewHandler(st, logger)

	// ── Router ───────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/api/greeting", greeting.Handle)
	r.Get("/api/languages", langHandler.List)
	r.Post("/api/languages", langHandler.Create)
	r.Post("/api/register", authHandler.Register)

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)
}
