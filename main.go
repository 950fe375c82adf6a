package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"maxgear/internal/catalog"
	"maxgear/internal/catalog/memory"
	"maxgear/internal/catalog/remote"
	"maxgear/internal/config"
	"maxgear/internal/eventbus"
	"maxgear/internal/logging"
	"maxgear/internal/metrics"
	"maxgear/internal/search"
	"maxgear/internal/ui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "maxgear: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet("maxgear", pflag.ContinueOnError)
	flags := config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// First run writes the defaults, never the env or flag overrides
	configSvc := config.NewConfigService(flags.ConfigPath)
	created, ensureErr := configSvc.EnsureFile()
	cfg, err := configSvc.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	flags.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, bus, closeLogging, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLogging()
	slog.SetDefault(logger)
	defer logging.SubscribeEvents(bus, logger)()

	switch {
	case ensureErr != nil:
		logger.Warn("failed to write default config", slog.Any("error", ensureErr))
	case created:
		bus.Publish(eventbus.ConfigSavedEvent{Path: configSvc.Path()})
	}
	bus.Publish(eventbus.ConfigLoadedEvent{Path: configSvc.Path()})

	recorder := metrics.New()
	defer recorder.Subscribe(bus)()
	if cfg.Metrics.Addr != "" {
		go func() {
			if err := recorder.Serve(ctx, cfg.Metrics.Addr, logger); err != nil {
				logger.Error("metrics listener failed", slog.Any("error", err))
			}
		}()
	}

	client, err := newCatalog(cfg, logger, recorder)
	if err != nil {
		return err
	}

	store := search.NewStore()
	dispatcher := search.NewDispatcher(client, store,
		search.WithEventBus(bus),
		search.WithLogger(logger),
		search.WithTimeout(cfg.Catalog.Timeout.Std()),
		search.WithContext(ctx),
	)

	model := ui.NewModel(cfg, store, dispatcher,
		ui.WithEventBus(bus),
		ui.WithLogger(logger),
		ui.WithHealthChecker(client),
	)

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.UISettings.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	p := tea.NewProgram(model, opts...)
	model.SetProgram(p)

	logger.Info("starting UI",
		slog.String("catalog", cfg.Catalog.BaseURL),
		slog.Bool("offline", cfg.Catalog.Offline),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.Error("error running program", slog.Any("error", err))
		return err
	}
	dispatcher.Cancel()
	logger.Info("UI exited normally")
	return nil
}

// setupLogging builds the logger from cfg and the event bus on top of it, so
// dropped events and handler panics land in the log file. The returned func
// closes the bus and then the file.
func setupLogging(cfg *config.Config) (*slog.Logger, eventbus.EventBus, func(), error) {
	logger := slog.New(slog.DiscardHandler)
	closeFile := func() {}
	if cfg.Log.File != "" {
		logFile, err := logging.OpenFile(cfg.Log.File)
		if err != nil {
			return nil, nil, nil, err
		}
		logger = logging.New(logFile, cfg.Log.Level, cfg.Log.Format)
		closeFile = func() { _ = logFile.Close() }
	}

	bus := eventbus.New(logger.With(slog.String("component", "eventbus")))
	return logger, bus, func() {
		bus.Close()
		closeFile()
	}, nil
}

type catalogClient interface {
	catalog.Searcher
	catalog.HealthChecker
}

// newCatalog returns the demo catalog in offline mode, else the HTTP client
func newCatalog(cfg *config.Config, logger *slog.Logger, recorder *metrics.Recorder) (catalogClient, error) {
	if cfg.Catalog.Offline {
		return memory.New(memory.SeedProducts()), nil
	}

	rc := remote.DefaultConfig(cfg.Catalog.BaseURL)
	rc.Timeout = cfg.Catalog.Timeout.Std()
	rc.MaxRetries = cfg.Catalog.MaxRetries
	rc.RateLimit = cfg.Catalog.RateLimit

	client, err := remote.New(rc, logger.With(slog.String("component", "catalog")),
		remote.WithStateHook(recorder.SetBreakerState))
	if err != nil {
		return nil, fmt.Errorf("create catalog client: %w", err)
	}
	recorder.SetBreakerState(rc.Breaker.Name, 0)
	return client, nil
}
