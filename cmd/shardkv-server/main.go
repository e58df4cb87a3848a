package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/dreamware/shardkv/internal/infra/buildinfo"
	"github.com/dreamware/shardkv/internal/infra/confloader"
	"github.com/dreamware/shardkv/internal/infra/shutdown"
	"github.com/dreamware/shardkv/internal/orchestrator"
	"github.com/dreamware/shardkv/internal/server/adminserver"
	"github.com/dreamware/shardkv/internal/server/config"
	"github.com/dreamware/shardkv/internal/store"
	"github.com/dreamware/shardkv/internal/telemetry/logger"
	"github.com/dreamware/shardkv/internal/telemetry/metric"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(buildinfo.String())
		return nil
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: os.Stdout})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)

	log.Info("starting shardkv-server",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"config", *configFile,
		"addr", cfg.Server.Addr)

	var watcher *confloader.Watcher
	if *configFile != "" {
		watcher, err = startConfigWatcher(*configFile, log)
		if err != nil {
			return fmt.Errorf("start config watcher: %w", err)
		}
	}

	st := store.New(cfg.Store.NumDatastores)
	metrics := metric.NewRegistry()

	orch, err := orchestrator.New(*cfg, st, log, metrics)
	if err != nil {
		return fmt.Errorf("init orchestrator: %w", err)
	}

	shutdownHandler := shutdown.NewHandler(15 * time.Second)

	ctx, cancelOrchestrator := context.WithCancel(context.Background())
	orchDone := make(chan error, 1)
	go func() {
		orchDone <- orch.Run(ctx)
	}()

	var adminSrv *adminserver.Server
	if cfg.Admin.Enabled {
		router := adminserver.NewRouter(adminserver.RouterConfig{
			Store:   st,
			Orch:    orch,
			Metrics: metrics,
			Logger:  log,
		})
		adminSrv = adminserver.New(cfg.Admin.Addr, router)

		shutdownHandler.OnShutdown(func(ctx context.Context) error {
			log.Info("shutting down admin server")
			return adminSrv.Shutdown(ctx)
		})

		go func() {
			log.Info("admin server listening", "addr", cfg.Admin.Addr)
			if err := adminSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("admin server error", "error", err)
			}
		}()
	}

	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down orchestrator")
		cancelOrchestrator()
		return orch.Shutdown()
	})

	if watcher != nil {
		shutdownHandler.OnShutdown(func(ctx context.Context) error {
			log.Info("stopping config watcher")
			return watcher.Stop()
		})
	}

	log.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	<-orchDone
	log.Info("server stopped gracefully")
	return nil
}

// startConfigWatcher watches configFile for changes and hot-reloads the
// log level on write, without restarting the process or touching any
// field that requires a fresh listener/worker-pool setup.
func startConfigWatcher(configFile string, log logger.Logger) (*confloader.Watcher, error) {
	watcher, err := confloader.NewWatcher()
	if err != nil {
		return nil, err
	}

	watcher.OnChange(func(path string) {
		cfg, err := loadConfig(configFile)
		if err != nil {
			log.Error("config reload failed", "path", path, "error", err)
			return
		}
		logger.SetLevel(cfg.Log.Level)
		log.Info("log level reloaded", "path", path, "level", cfg.Log.Level)
	})

	if err := watcher.Watch(configFile); err != nil {
		return nil, err
	}
	watcher.StartAsync()

	return watcher, nil
}

func loadConfig(configFile string) (*config.ServerConfig, error) {
	cfg := config.Default()

	var opts []confloader.Option
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}

	loader := confloader.NewLoader(opts...)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
