package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"debate-bot/internal/adapter/grpcapi"
	"debate-bot/internal/adapter/httpapi"
	"debate-bot/internal/infra/config"
	"debate-bot/internal/infra/logger"
	"debate-bot/internal/infra/tracer"
	"debate-bot/internal/usecase/retention"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP, WebSocket and gRPC debate API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), configPath(cmd))
		},
	}
}

func runServe(ctx context.Context, cfgPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// 1. Config
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// 2. Logger & Tracer
	log, logCloser, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logCloser()

	tracerShutdown, err := tracer.Setup(ctx, cfg.Tracer)
	if err != nil {
		return fmt.Errorf("tracer: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := tracerShutdown(sctx); err != nil {
			log.Warn("tracer shutdown failed", "error", err)
		}
	}()

	// 3. Store, event bus, use cases
	a, err := newApp(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn("shutdown", "error", err)
		}
	}()

	// 4. Graceful shutdown
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// 5. Retention sweeper
	if cfg.Retention.Enabled {
		rcfg := retention.Config{Schedule: cfg.Retention.Schedule, MaxIdle: cfg.Retention.MaxIdle}
		if a.metrics != nil {
			rcfg.OnSweep = a.metrics.ObserveSweep
		}
		sweeper, err := retention.New(rcfg, a.store, a.bus, log.With("component", "retention"))
		if err != nil {
			return err
		}
		sweeper.Start(ctx)
		defer sweeper.Stop()
	}

	// 6. HTTP + WebSocket
	opts := httpapi.Options{Version: version, Environment: cfg.Environment}
	if a.metrics != nil {
		opts.Metrics = a.metrics
		opts.MetricsPath = cfg.Metrics.Path
	}
	httpSrv := httpapi.New(cfg.Server, a.chat, log, opts)
	if err := httpSrv.Start(ctx); err != nil {
		return fmt.Errorf("http: %w", err)
	}

	// 7. gRPC
	var grpcSrv *grpcapi.Server
	if cfg.GRPC.Enabled {
		grpcSrv = grpcapi.New(a.chat, log, a.metrics)
		if err := grpcSrv.Start(cfg.GRPC.Addr); err != nil {
			stopHTTP(httpSrv, cfg)
			return fmt.Errorf("grpc: %w", err)
		}
	}

	log.Info("debatebot starting",
		"version", version,
		"environment", cfg.Environment,
		"http", httpSrv.BoundAddr(),
		"grpc", cfg.GRPC.Enabled,
		"store", cfg.Store.Backend,
		"kafka", cfg.Events.Kafka.Enabled,
	)

	// 8. Wait
	<-ctx.Done()
	log.Info("shutting down")

	sctx, scancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer scancel()
	if grpcSrv != nil {
		grpcSrv.Stop(sctx)
	}
	if err := httpSrv.Stop(sctx); err != nil {
		log.Warn("http shutdown", "error", err)
	}
	return nil
}

func stopHTTP(s *httpapi.Server, cfg *config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	_ = s.Stop(ctx)
}
