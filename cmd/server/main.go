package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gridplay/tictactoe-backend/internal/config"
	"github.com/gridplay/tictactoe-backend/internal/httpapi"
	"github.com/gridplay/tictactoe-backend/internal/registry"
	"github.com/gridplay/tictactoe-backend/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := newLogger(cfg.Env)
	defer func() { _ = logger.Sync() }()

	reg := registry.New(cfg.Capacity, logger)
	bc := ws.NewBroadcaster(logger)

	// Build the router *with* the registry and broadcaster injected
	handler := httpapi.SetupRoutes(reg, bc, logger)

	srv := &http.Server{Addr: cfg.Addr, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening",
			zap.String("addr", cfg.Addr),
			zap.Int("capacity", cfg.Capacity))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func newLogger(env string) *zap.Logger {
	if env == "prod" || env == "production" {
		l, err := zap.NewProduction()
		if err != nil {
			log.Fatal(err)
		}
		return l
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	return l
}
