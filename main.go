package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"userexplorer/internal/cache"
	"userexplorer/internal/clock"
	"userexplorer/internal/config"
	"userexplorer/internal/directory"
	"userexplorer/internal/eventbus"
	"userexplorer/internal/logging"
	"userexplorer/internal/metrics"
	"userexplorer/internal/ui"
)

type flags struct {
	configPath  string
	endpoint    string
	debounce    time.Duration
	logFile     string
	logLevel    string
	metricsAddr string
}

func parseFlags() *flags {
	f := &flags{}
	pflag.StringVarP(&f.configPath, "config", "c", config.DefaultPath(), "Path to the config file")
	pflag.StringVarP(&f.endpoint, "endpoint", "e", "", "User directory URL")
	pflag.DurationVar(&f.debounce, "debounce", -1, "Quiet period before a query is applied")
	pflag.StringVar(&f.logFile, "log-file", "", "Write logs to this file")
	pflag.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pflag.StringVar(&f.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	pflag.Parse()
	return f
}

func main() {
	if err := run(parseFlags()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(f *flags) error {
	configSvc := config.NewConfigServiceAt(f.configPath)
	cfg, err := loadOrCreateConfig(configSvc)
	if err != nil {
		return err
	}
	if err := applyFlags(cfg, f); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("starting",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("config", configSvc.Path()),
		zap.Duration("debounce", cfg.DebounceDelay.Std()))

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := eventbus.New(logger)
	defer bus.Close()
	defer logging.SubscribeEvents(bus, logger)()

	manager := metrics.NewManager(metrics.WithLogger(logger))
	unsubscribe := manager.Subscribe(bus)
	defer unsubscribe()
	if cfg.MetricsAddr != "" {
		go func() {
			if err := manager.Serve(ctx, cfg.MetricsAddr); err != nil {
				logger.Error("metrics server stopped", zap.Error(err))
			}
		}()
	}

	source := directory.NewHTTPSource(cfg.Endpoint,
		directory.WithTimeout(cfg.RequestTimeout.Std()),
		directory.WithBreaker(cfg.Breaker.MaxFailures, cfg.Breaker.OpenTimeout.Std()),
		directory.WithLogger(logger),
	)
	records := cache.New(source, cache.WithLogger(logger), cache.WithEventBus(bus))

	model := ui.NewModel(ctx, ui.Deps{
		Config: cfg,
		Cache:  records,
		Clock:  clock.Real(),
		Bus:    bus,
		Logger: logger,
	})
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	model.SetProgram(p)

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			logger.Info("interrupted")
			cancel()
			p.Quit()
		case <-ctx.Done():
		}
	}()

	if os.Getenv("USEREXPLORER_E2E_TEST") == "1" {
		fmt.Println("__READY__")
	}

	if _, err := p.Run(); err != nil {
		logger.Error("program exited with error", zap.Error(err))
		return fmt.Errorf("running program: %w", err)
	}
	logger.Info("exited normally")
	return nil
}

// loadOrCreateConfig loads the config file, writing the defaults on first run
func loadOrCreateConfig(configSvc config.ConfigService) (*config.Config, error) {
	_, statErr := os.Stat(configSvc.Path())

	cfg, err := configSvc.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if errors.Is(statErr, os.ErrNotExist) {
		// Env overrides are not persisted
		if err := configSvc.Save(config.DefaultConfig()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not write default config: %v\n", err)
		}
	}
	return cfg, nil
}

// applyFlags layers explicitly set flags over the loaded config
func applyFlags(cfg *config.Config, f *flags) error {
	if pflag.CommandLine.Changed("endpoint") {
		cfg.Endpoint = f.endpoint
	}
	if pflag.CommandLine.Changed("debounce") {
		cfg.DebounceDelay = config.Duration(f.debounce)
	}
	if pflag.CommandLine.Changed("log-file") {
		cfg.LogFile = f.logFile
	}
	if pflag.CommandLine.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if pflag.CommandLine.Changed("metrics-addr") {
		cfg.MetricsAddr = f.metricsAddr
	}
	return cfg.Validate()
}
