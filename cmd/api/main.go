package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bkarakas/ledger-core/internal/api"
	"github.com/bkarakas/ledger-core/internal/config"
	"github.com/bkarakas/ledger-core/internal/db"
	"github.com/bkarakas/ledger-core/internal/logger"
	"github.com/bkarakas/ledger-core/internal/metrics"
	"github.com/bkarakas/ledger-core/internal/repository"
	"github.com/bkarakas/ledger-core/internal/repository/memory"
	"github.com/bkarakas/ledger-core/internal/repository/postgres"
	"github.com/bkarakas/ledger-core/internal/services"
	"github.com/bkarakas/ledger-core/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var stores repository.Stores
	if cfg.Storage == "memory" {
		log.Warn("using in-memory storage, state is lost on restart")
		stores = memory.NewStores()
	} else {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("db connect", "err", err)
			os.Exit(1)
		}
		defer pool.Close()

		if os.Getenv("APP_MIGRATE") == "true" {
			if err := db.RunMigrations(ctx, pool); err != nil {
				log.Error("migrations", "err", err)
				os.Exit(1)
			}
		}
		stores = postgres.NewStores(pool)
	}

	metrics.Init()

	wp := worker.NewPool(cfg.Workers)
	defer wp.Stop()

	audit := services.NewAuditor(stores.AuditLogs, wp)
	userSvc := services.NewUserService(stores.Users, stores.Accounts, audit)
	acctSvc := services.NewAccountService(stores.Accounts, stores.Users, audit)
	xferSvc := services.NewTransferService(stores.Accounts, stores.Transactions, stores.Atomic, audit)

	r := api.NewRouter(cfg, userSvc, acctSvc, xferSvc)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "storage", cfg.Storage)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
