// Package daemon ties the positioner, hotkey session and configuration
// together behind the IPC controller surface.
package daemon

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/slotcycle/internal/config"
	"github.com/1broseidon/slotcycle/internal/ipc"
	"github.com/1broseidon/slotcycle/internal/platform"
	"github.com/1broseidon/slotcycle/internal/session"
	"github.com/1broseidon/slotcycle/internal/slots"
)

// Service implements ipc.Controller.
type Service struct {
	positioner *slots.Positioner
	session    *session.Session
	configPath string
	started    time.Time
	logger     *slog.Logger
	level      *slog.LevelVar

	mu  sync.Mutex
	cfg *config.Config
}

var _ ipc.Controller = (*Service)(nil)

// NewService creates a service for cfg. configPath is re-read by Reload.
func NewService(cfg *config.Config, configPath string, positioner *slots.Positioner, sess *session.Session, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		positioner: positioner,
		session:    sess,
		configPath: configPath,
		started:    time.Now(),
		logger:     logger,
		cfg:        cfg,
	}
}

// SetLevelVar makes Apply update level from the config's log_level.
func (s *Service) SetLevelVar(level *slog.LevelVar) {
	s.level = level
}

// Keys returns the hotkeys for cfg.
func Keys(cfg *config.Config) session.Keys {
	return session.Keys{Center: cfg.CenterHotkey, Cycle: cfg.CycleHotkey}
}

func (s *Service) Center() (slots.Placement, error) { return s.positioner.Center() }

func (s *Service) Cycle() (slots.Placement, error) { return s.positioner.Cycle() }

func (s *Service) Place(slot int) (slots.Placement, error) { return s.positioner.Place(slot) }

func (s *Service) Reset() { s.positioner.Reset() }

func (s *Service) Enable() error {
	if err := s.session.Enable(); err != nil {
		return err
	}
	s.logger.Info("session enabled", "center", s.session.Keys().Center, "cycle", s.session.Keys().Cycle)
	return nil
}

func (s *Service) Disable() { s.session.Disable() }

// Reload re-reads the config file and applies it.
func (s *Service) Reload() error {
	result, err := config.LoadFromPath(s.configPath)
	if err != nil {
		return err
	}
	return s.Apply(result.Config)
}

// Apply switches to cfg: divisions and inset take effect on the next
// action, hotkeys are rebound when they changed. The slot state is kept.
// Nothing changes when cfg is invalid or its hotkeys cannot be bound.
func (s *Service) Apply(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg == nil || cfg.HotkeysChanged(s.cfg) {
		if err := s.session.SetKeys(Keys(cfg)); err != nil {
			return fmt.Errorf("failed to rebind hotkeys: %w", err)
		}
	}

	s.cfg = cfg
	s.positioner.SetGeometry(cfg.Divisions, cfg.Inset)
	if s.level != nil {
		s.level.Set(cfg.SlogLevel())
	}

	s.logger.Info("config applied",
		"divisions", cfg.Divisions,
		"inset", cfg.Inset,
		"center_hotkey", cfg.CenterHotkey,
		"cycle_hotkey", cfg.CycleHotkey,
	)
	return nil
}

// Config returns the active configuration.
func (s *Service) Config() *config.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

func (s *Service) Status() ipc.StatusData {
	cfg := s.Config()
	status := ipc.StatusData{
		Enabled:       s.session.Enabled(),
		Divisions:     cfg.Divisions,
		Inset:         cfg.Inset,
		CenterHotkey:  cfg.CenterHotkey,
		CycleHotkey:   cfg.CycleHotkey,
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
		DaemonRunning: true,
	}
	if last, ok := s.positioner.State().Last(); ok {
		status.LastSlot = &last
	}
	return status
}

func (s *Service) Monitors() ([]platform.Display, error) { return s.positioner.Monitors() }

func (s *Service) Slots() ([]slots.SlotInfo, error) { return s.positioner.Slots() }
