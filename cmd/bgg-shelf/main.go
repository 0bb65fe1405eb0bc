package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	bgg "github.com/hiroaqii/bgg-shelf/go-bgg"
	"github.com/hiroaqii/bgg-shelf/internal/catalog"
	"github.com/hiroaqii/bgg-shelf/internal/config"
	"github.com/hiroaqii/bgg-shelf/internal/logging"
	"github.com/hiroaqii/bgg-shelf/internal/query"
	"github.com/hiroaqii/bgg-shelf/internal/storage"
	"github.com/hiroaqii/bgg-shelf/internal/tui"
	"github.com/hiroaqii/bgg-shelf/internal/watchlist"
)

func main() {
	var ephemeral bool
	for _, arg := range os.Args[1:] {
		switch arg {
		case "--version", "-v":
			fmt.Println(config.AppName + " " + tui.Version)
			return
		case "--ephemeral":
			ephemeral = true
		default:
			fmt.Fprintf(os.Stderr, "usage: %s [--version] [--ephemeral]\n", config.AppName)
			os.Exit(2)
		}
	}

	if err := run(ephemeral); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run starts the UI. An ephemeral run keeps the watchlist in memory only.
func run(ephemeral bool) error {
	// Local overrides first; godotenv never replaces variables already set.
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if ephemeral {
		cfg.Storage.Backend = storage.BackendMemory
	}

	logPath, err := cfg.LogPath()
	if err != nil {
		return err
	}
	logger, closeLog, err := logging.OpenFile(logPath, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer closeLog()
	slog.SetDefault(logger)

	storagePath, err := cfg.StoragePath()
	if err != nil {
		return err
	}
	kv, closeKV, err := storage.Open(storage.Options{Backend: cfg.Storage.Backend, Path: storagePath})
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer closeKV()

	wl := watchlist.New(kv, watchlist.WithLogger(logger))
	if err := wl.Load(context.Background()); err != nil {
		// Browsing still works; watchlist edits report the failure.
		logger.Error("watchlist unavailable", slog.String("error", err.Error()))
	}

	store := catalog.NewStore(query.NewEngine(cfg.Browse.Locale), logger)

	p := tea.NewProgram(
		tui.New(tui.Options{
			Config:    cfg,
			Store:     store,
			Watchlist: wl,
			Connect:   func(c *config.Config) catalog.Source { return connect(c, logger) },
			Logger:    logger,
		}),
		tea.WithAltScreen(),
	)

	logger.Info("starting", slog.String("version", tui.Version), slog.String("mode", cfg.API.Mode))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// connect builds the API client for the configured transport.
func connect(cfg *config.Config, logger *slog.Logger) catalog.Source {
	var limiter *rate.Limiter
	if rps := cfg.API.RequestsPerSecond; rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}

	var fetcher bgg.Fetcher
	if cfg.UseProxy() {
		var endpoints []string
		if len(cfg.API.Proxies) > 0 {
			endpoints = cfg.API.Proxies
		}
		fetcher = bgg.NewProxyClient(bgg.ProxyConfig{
			Endpoints:    endpoints,
			Token:        cfg.API.Token,
			ForwardToken: cfg.API.ProxyForwardToken,
			Timeout:      cfg.Timeout(),
			Limiter:      limiter,
			Logger:       logger,
		})
	} else {
		fetcher = bgg.NewClient(bgg.Config{
			Token:   cfg.API.Token,
			Timeout: cfg.Timeout(),
			Limiter: limiter,
			Logger:  logger,
		})
	}
	return bgg.NewAPI(fetcher, nil)
}
