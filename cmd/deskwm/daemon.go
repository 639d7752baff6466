package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/1broseidon/deskwm/internal/config"
	"github.com/1broseidon/deskwm/internal/daemon"
	"github.com/1broseidon/deskwm/internal/ipc"
	"github.com/1broseidon/deskwm/internal/wm"
	"github.com/1broseidon/deskwm/internal/x11"
)

const journalCapacity = 256

func runDaemon(args []string) int {
	fs := newFlagSet("daemon", "daemon [--path PATH]", "Start the deskwm daemon in the foreground.")
	path := fs.String("path", "", "Config file path (default: ~/.config/deskwm/config.yaml)")
	if code := parseFlags(fs, args, 0); code >= 0 {
		return code
	}

	res, err := loadConfig(*path)
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return 1
	}
	cfg := res.Config

	var level slog.LevelVar
	level.Set(cfg.SlogLevel())
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: &level}))
	logger.Info("configuration loaded",
		"files", len(res.Files),
		"viewport_source", cfg.Viewport.Source,
		"catalog_items", len(cfg.Catalog))

	mgr := wm.New(cfg.Settings(), wm.WithLogger(logger))
	defer mgr.Shutdown()

	journal := daemon.NewEventJournal(logger, journalCapacity)
	detach := journal.Attach(mgr)
	defer detach()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var reconciler *daemon.Reconciler
	if cfg.Viewport.Source == config.ViewportX11 {
		probe := x11.NewViewportProbe(cfg.Viewport.Display)
		defer probe.Close()

		reconciler = daemon.NewReconciler(daemon.ReconcilerConfig{
			Interval: time.Duration(cfg.Viewport.PollSeconds) * time.Second,
			Logger:   logger,
		}, probe, mgr)

		// Size the desktop from the display before accepting requests.
		reconciler.ReconcileNow()
		if cfg.Viewport.PollSeconds > 0 {
			go reconciler.Run(ctx)
		}
	}

	reloadChan := make(chan struct{}, 1)
	ipcServer, err := ipc.NewServer(cfg, mgr, reloadChan)
	if err != nil {
		logger.Error("failed to create IPC server", "error", err)
		return 1
	}
	if *path != "" {
		configPath := *path
		ipcServer.SetConfigLoader(func() (*config.Config, error) {
			res, err := config.LoadFromPath(configPath)
			if err != nil {
				return nil, err
			}
			return res.Config, nil
		})
	}
	if err := ipcServer.Start(); err != nil {
		logger.Error("failed to start IPC server", "error", err)
		return 1
	}
	defer ipcServer.Stop()

	logger.Info("deskwm daemon started", "socket", ipcServer.SocketPath(), "session", ipcServer.SessionID())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	for {
		select {
		case sig := <-sigCh:
			switch sig {
			case syscall.SIGHUP:
				logger.Info("received SIGHUP, reloading config")
				if err := ipcServer.Reload(); err != nil {
					logger.Error("config reload failed", "error", err)
				}
			default:
				logger.Info("shutting down deskwm daemon",
					"windows_opened", journal.Count(wm.EventOpened),
					"windows_closed", journal.Count(wm.EventClosed))
				return 0
			}

		case <-reloadChan:
			newCfg := ipcServer.GetConfig()
			level.Set(newCfg.SlogLevel())
			if reconciler != nil {
				// Re-read the display so a changed menu bar or dock height
				// is applied against the current screen size.
				reconciler.Forget()
				reconciler.ReconcileNow()
			}
			logger.Info("config reloaded", "log_level", newCfg.LogLevel, "catalog_items", len(newCfg.Catalog))
		}
	}
}
