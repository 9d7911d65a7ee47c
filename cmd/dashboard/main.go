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

	"github.com/coinomad/payroll-dashboard/internal/api"
	"github.com/coinomad/payroll-dashboard/internal/config"
	"github.com/coinomad/payroll-dashboard/internal/logging"
	"github.com/coinomad/payroll-dashboard/internal/persistence/sqlite"
	"github.com/coinomad/payroll-dashboard/internal/session"
	"github.com/coinomad/payroll-dashboard/internal/web"
)

func main() {
	_ = godotenv.Load()

	logger := logging.New(slog.LevelInfo)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open session store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error("failed to close session store", "error", cerr)
		}
	}()

	sealer, err := session.NewSealer(cfg.SessionSecret)
	if err != nil {
		logger.Error("failed to derive sealing key", "error", err)
		os.Exit(1)
	}
	sessions := session.NewManager(store, sealer, cfg.SessionTTL, nil, nil)

	client := api.NewClient(cfg.APIBaseURL, cfg.APITimeout, cfg.APISlowTimeout, logger)

	renderer, err := web.NewRenderer(logger)
	if err != nil {
		logger.Error("failed to parse templates", "error", err)
		os.Exit(1)
	}

	handler := web.NewHandler(client, sessions, renderer, logger, nil, cfg.SecureCookies)
	router := web.NewRouter(web.RouterConfig{
		Handler:    handler,
		Middleware: []func(http.Handler) http.Handler{web.RequestLogger(logger)},
		Gate:       web.RequireSession(sessions, logger, cfg.SecureCookies),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("payroll dashboard listening", "addr", server.Addr, "backend", cfg.APIBaseURL)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}
