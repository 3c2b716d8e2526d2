// Demo server exposing one connector engine over HTTP.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	scoutelastic "github.com/NMXDiffusion/scoutelastic"
	"github.com/NMXDiffusion/scoutelastic/internal/config"
	logpkg "github.com/NMXDiffusion/scoutelastic/internal/logger"
	"github.com/NMXDiffusion/scoutelastic/internal/metrics"
	chiTransport "github.com/NMXDiffusion/scoutelastic/internal/transport/chi"
	"github.com/NMXDiffusion/scoutelastic/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting scoutelastic server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("engine_driver", cfg.Engine.Driver),
		zap.Strings("engine_addrs", cfg.Engine.Addrs),
		zap.String("index", cfg.Engine.Index),
	)

	// Register engine metrics explicitly (no init())
	metrics.RegisterEngineMetrics()

	opts := []scoutelastic.Option{
		scoutelastic.WithLogger(logger),
		scoutelastic.WithInstrumentation(),
		scoutelastic.WithReadinessTimeout(time.Duration(cfg.Engine.ReadinessTimeout) * time.Second),
	}
	switch cfg.Engine.Driver {
	case "opensearch":
		opts = append(opts, scoutelastic.WithOpenSearch(cfg.Engine.Addrs...))
	default:
		opts = append(opts, scoutelastic.WithElasticsearch(cfg.Engine.Addrs...))
	}
	if cfg.Engine.Username != "" {
		opts = append(opts, scoutelastic.WithBasicAuth(cfg.Engine.Username, cfg.Engine.Password))
	}

	client, err := scoutelastic.New(opts...)
	if err != nil {
		logger.Fatal("Failed to connect to engine", zap.Error(err))
	}
	defer client.Close()
	logger.Info("Connected to engine")

	var engineOpts []scoutelastic.EngineOption
	if cfg.Engine.SoftDeletes {
		engineOpts = append(engineOpts, scoutelastic.WithSoftDeletes())
	}
	engine := client.Engine(cfg.Engine.Index, engineOpts...)

	server := chiTransport.NewServer(client, engine, chiTransport.Config{
		APIKeys:         cfg.Auth.APIKeys,
		DefaultPageSize: cfg.Search.DefaultPageSize,
		MaxPageSize:     cfg.Search.MaxPageSize,
	}, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      server.Router(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second,
	)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
