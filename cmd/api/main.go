package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"rifa-ledger/internal/config"
	"rifa-ledger/internal/database"
	rifaHttp "rifa-ledger/internal/http"
	backupHandler "rifa-ledger/internal/http/backup"
	raffleHandler "rifa-ledger/internal/http/raffle"
	"rifa-ledger/internal/raffle"
	raffleStore "rifa-ledger/internal/raffle/store"
	"rifa-ledger/internal/snapshot"
	snapshotStore "rifa-ledger/internal/snapshot/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.EnsureSchema(context.Background(), db); err != nil {
		slog.Error("failed to ensure schema", "error", err)
		os.Exit(1)
	}

	var (
		raffleService   = raffle.NewService(raffleStore.New(db))
		snapshotService = snapshot.NewService(snapshotStore.New(db))
	)

	var (
		raffleH = raffleHandler.NewHandler(raffleService)
		backupH = backupHandler.NewHandler(snapshotService, raffleService)
	)

	router := rifaHttp.New(raffleH, backupH)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("starting server", "port", server.Addr)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}

	writeShutdownBackup(shutdownCtx, raffleService, snapshotService, cfg.Backup.Dir)
}

// writeShutdownBackup mirrors the original app's export-on-background hook:
// best effort, logged but never fatal.
func writeShutdownBackup(ctx context.Context, raffles *raffle.Service, snapshots *snapshot.Service, dir string) {
	current, err := raffles.Current(ctx)
	if err != nil || current == nil {
		return
	}

	payload, err := snapshots.Export(ctx, current.ID)
	if err != nil {
		slog.Error("shutdown backup export failed", "error", err)
		return
	}

	path, err := snapshots.WriteFile(payload, dir)
	if err != nil {
		slog.Error("shutdown backup write failed", "error", err)
		return
	}

	slog.Info("wrote shutdown backup", "path", path)
}
