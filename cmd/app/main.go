package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devjjun/commu/internal/attendance"
	"github.com/devjjun/commu/internal/concurrency"
	"github.com/devjjun/commu/internal/config"
	"github.com/devjjun/commu/internal/database"
	"github.com/devjjun/commu/internal/database/postgres"
	"github.com/devjjun/commu/internal/handler"
	"github.com/devjjun/commu/internal/ledger"
	"github.com/devjjun/commu/internal/mail"
	"github.com/devjjun/commu/internal/notify"
	"github.com/devjjun/commu/internal/scheduler"
	"github.com/devjjun/commu/internal/server"
	"github.com/devjjun/commu/internal/shop"
	"github.com/devjjun/commu/internal/user"
	"github.com/devjjun/commu/internal/worker"
)

const (
	dbMaxConns       = 10
	dbMaxIdle        = 5 * time.Minute
	dbMaxLife        = 30 * time.Minute
	mailConsumers    = 2
	poolWorkers      = 2
	poolQueueSize    = 16
	statsInterval    = 15 * time.Second
	shutdownDeadline = 30 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	// Outside dev, every required variable must be set explicitly
	if cfg.Environment != "dev" {
		if err := config.ValidateEnv(); err != nil {
			slog.Error("Environment validation failed", "error", err)
			os.Exit(1)
		}
	}

	initLogger(cfg)

	dbPool, err := database.NewPool(context.Background(), cfg.GetDBConnString(), database.PoolConfig{
		MaxConns:    dbMaxConns,
		MaxIdleTime: dbMaxIdle,
		MaxLifetime: dbMaxLife,
	})
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	ledgerRepo := postgres.NewLedgerRepository(dbPool)
	attendanceRepo := postgres.NewAttendanceRepository(dbPool)
	shopRepo := postgres.NewShopRepository(dbPool)

	// Named locks live in Postgres so every instance observes the same locks
	lockStore := postgres.NewLockStore(dbPool)
	locks := concurrency.NewLockService(lockStore, cfg.LockWaitTime, cfg.LockLeaseTime)

	// Mail pipeline: durable queue, SMTP sender, retrying worker
	mailQueue := postgres.NewMailQueue(dbPool, cfg.QueuePollInterval, cfg.MailLeaseTime)
	producer := notify.NewProducer(mailQueue, userRepo)
	mailWorker := worker.NewMailWorker(mailQueue, mail.NewSMTPSender(cfg), cfg.MaxDeliveryAttempts, mailConsumers)

	// Services
	ledgerService := ledger.NewService(ledgerRepo)
	userService := user.NewService(userRepo, ledgerService, producer)
	attendanceService := attendance.NewService(attendanceRepo, userRepo, ledgerService, locks, attendance.Config{
		BaseAmount:   cfg.AttendanceBaseAmount,
		BonusAmount:  cfg.StreakBonusAmount,
		StreakLength: cfg.StreakLength,
	})
	shopService := shop.NewService(shopRepo, userRepo, ledgerService, locks, producer)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailWorker.Start(ctx)

	// Background pool samples queue depth for the metrics endpoint
	pool := worker.NewPool(poolWorkers, poolQueueSize)
	pool.Start(ctx)
	sched := scheduler.New(pool)
	sched.Schedule(statsInterval, worker.NewQueueStatsTask(mailQueue))

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, server.Services{
		User:       userService,
		Attendance: attendanceService,
		Ledger:     ledgerService,
		Shop:       shopService,
		MailQueue:  mailQueue,
		ActivityRewards: handler.ActivityRewardConfig{
			PostAmount:    cfg.PostWriteAmount,
			CommentAmount: cfg.CommentWriteAmount,
			DailyCap:      cfg.ActivityDailyCap,
		},
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
	case sig := <-sigCh:
		slog.Info("Shutdown signal received", "signal", sig.String())
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownDeadline)
	defer shutdownCancel()

	// Stop accepting requests first, then drain the background machinery
	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	sched.Stop()
	pool.Stop()
	if err := mailWorker.Stop(shutdownCtx); err != nil {
		slog.Error("Mail worker shutdown failed", "error", err)
	}
	if err := mailQueue.Close(); err != nil {
		slog.Error("Mail queue close failed", "error", err)
	}
	cancel()

	slog.Info("Shutdown complete")
}
