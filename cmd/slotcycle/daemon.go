package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/1broseidon/slotcycle/internal/config"
	"github.com/1broseidon/slotcycle/internal/daemon"
	"github.com/1broseidon/slotcycle/internal/hotkeys"
	"github.com/1broseidon/slotcycle/internal/ipc"
	"github.com/1broseidon/slotcycle/internal/platform"
	"github.com/1broseidon/slotcycle/internal/session"
	"github.com/1broseidon/slotcycle/internal/slots"
)

// newLogger builds the daemon's structured logger. When level is non-nil it
// controls the threshold so reloads can change it.
func newLogger(cfg *config.Config, level *slog.LevelVar) *slog.Logger {
	var leveler slog.Leveler = cfg.SlogLevel()
	if level != nil {
		level.Set(cfg.SlogLevel())
		leveler = level
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: leveler,
	}))
}

func runDaemon(args []string) int {
	fs := newFlagSet("daemon", "daemon [--path PATH] [--disabled]",
		"Start the slotcycle daemon in the foreground.")
	path := fs.String("path", "", "Config file path (default: ~/.config/slotcycle/config.yaml)")
	disabled := fs.Bool("disabled", false, "Start with hotkeys unbound (enable later with 'slotcycle enable')")
	if code := parseFlags(fs, args, 0); code >= 0 {
		return code
	}

	// Load configuration
	cfg, configPath, err := loadConfig(*path)
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return 1
	}
	log.Printf("Configuration loaded from %s (divisions: %d, inset: %dpx)", configPath, cfg.Divisions, cfg.Inset)

	level := new(slog.LevelVar)
	logger := newLogger(cfg, level)

	// Connect to display server
	backend, err := platform.NewLinuxBackendFromDisplay(cfg.Display)
	if err != nil {
		log.Printf("Failed to connect to display: %v", err)
		return 1
	}
	defer backend.Disconnect()

	positioner := slots.NewPositioner(backend, slots.Options{
		Divisions: cfg.Divisions,
		Inset:     cfg.Inset,
		Logger:    logger,
	})
	sess := session.New(hotkeys.NewHandler(backend), positioner, daemon.Keys(cfg))

	svc := daemon.NewService(cfg, configPath, positioner, sess, logger)
	svc.SetLevelVar(level)

	if !*disabled {
		if err := svc.Enable(); err != nil {
			log.Printf("Failed to enable hotkeys: %v", err)
			return 1
		}
	}

	// Start IPC server
	ipcServer, err := ipc.NewServer(svc)
	if err != nil {
		log.Printf("Failed to create IPC server: %v", err)
		return 1
	}
	if err := ipcServer.Start(); err != nil {
		log.Printf("Failed to start IPC server: %v", err)
		return 1
	}
	defer ipcServer.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watcher, err := config.NewWatcher(configPath, logger, func(newCfg *config.Config) {
		if err := svc.Apply(newCfg); err != nil {
			logger.Warn("config reload failed", "error", err)
		}
	})
	if err != nil {
		logger.Warn("config watcher disabled", "error", err)
	} else {
		go watcher.Run(ctx)
	}

	reconciler := daemon.NewReconciler(daemon.ReconcilerConfig{
		Interval: 10 * time.Second,
		Logger:   logger,
	}, svc.Monitors)
	go reconciler.Run(ctx)

	// Setup signal handlers
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case sig := <-sigCh:
				switch sig {
				case syscall.SIGHUP:
					log.Println("Received SIGHUP, reloading config...")
					if err := svc.Reload(); err != nil {
						log.Printf("Config reload failed: %v", err)
						continue
					}
					log.Println("Config reloaded successfully")
				default:
					log.Println("Shutting down slotcycle daemon...")
					svc.Disable()
					cancel()
					backend.QuitEventLoop()
					return
				}
			}
		}
	}()

	log.Println("slotcycle daemon started successfully")

	// Start event loop (blocking)
	log.Println("Entering event loop...")
	backend.EventLoop()
	return 0
}
