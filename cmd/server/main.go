package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/optifab/prodplan/internal/config"
	"github.com/optifab/prodplan/internal/optimizer"
	"github.com/optifab/prodplan/internal/server/handlers"
	"github.com/optifab/prodplan/internal/server/router"
	"github.com/optifab/prodplan/internal/solver"
	"github.com/optifab/prodplan/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	backend, err := newBackend(cfg.Solver)
	if err != nil {
		baseLogger.Fatal("failed to init solver backend", zap.Error(err))
	}
	baseLogger.Info("solver backend ready", zap.String("backend", backend.Name()))

	registry := optimizer.NewRegistry(backend, baseLogger.Named("svc.optimizer"))
	optimizeHandler := handlers.NewOptimizeHandler(registry, baseLogger.Named("handlers.optimize"))
	engine := router.New(optimizeHandler, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func newBackend(cfg config.SolverConfig) (solver.Solver, error) {
	switch cfg.Backend {
	case config.BackendSimplex:
		return solver.NewSimplexSolver(), nil
	case config.BackendHighs:
		return solver.NewHighsSolver(cfg.TimeLimitSeconds)
	case config.BackendRemote:
		return solver.NewRemoteSolver(cfg.RemoteURL, cfg.RemoteTimeout)
	default:
		return nil, errors.New("unknown solver backend " + cfg.Backend)
	}
}
