package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDivisions    = 2
	DefaultInset        = 2
	DefaultCenterHotkey = "Mod4-Shift-c"
	DefaultCycleHotkey  = "Mod4-Shift-Right"
	DefaultLogLevel     = "info"

	MaxDivisions = 12
	MaxInset     = 64
)

// Config is the effective slotcycle configuration.
type Config struct {
	// Divisions is the number of equal horizontal slots per monitor.
	Divisions int `yaml:"divisions"`
	// Inset shifts every slot right by this many pixels.
	Inset int `yaml:"inset"`

	CenterHotkey string `yaml:"center_hotkey"`
	CycleHotkey  string `yaml:"cycle_hotkey"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// Display overrides $DISPLAY for the X11 connection.
	Display string `yaml:"display,omitempty"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Divisions:    DefaultDivisions,
		Inset:        DefaultInset,
		CenterHotkey: DefaultCenterHotkey,
		CycleHotkey:  DefaultCycleHotkey,
		LogLevel:     DefaultLogLevel,
	}
}

// ValidationError reports an invalid config value with its location.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Validate checks ranges, required values and hotkey syntax.
func (c *Config) Validate() error {
	if c.Divisions < 1 || c.Divisions > MaxDivisions {
		return &ValidationError{Path: "divisions", Err: fmt.Errorf("divisions must be between 1 and %d", MaxDivisions)}
	}
	if c.Inset < 0 || c.Inset > MaxInset {
		return &ValidationError{Path: "inset", Err: fmt.Errorf("inset must be between 0 and %d", MaxInset)}
	}
	if strings.TrimSpace(c.CenterHotkey) == "" {
		return &ValidationError{Path: "center_hotkey", Err: fmt.Errorf("center_hotkey is required")}
	}
	if strings.TrimSpace(c.CycleHotkey) == "" {
		return &ValidationError{Path: "cycle_hotkey", Err: fmt.Errorf("cycle_hotkey is required")}
	}
	if _, _, err := ParseHotkey(c.CenterHotkey); err != nil {
		return &ValidationError{Path: "center_hotkey", Err: err}
	}
	if _, _, err := ParseHotkey(c.CycleHotkey); err != nil {
		return &ValidationError{Path: "cycle_hotkey", Err: err}
	}
	if strings.EqualFold(c.CenterHotkey, c.CycleHotkey) {
		return &ValidationError{Path: "cycle_hotkey", Err: fmt.Errorf("cycle_hotkey must differ from center_hotkey")}
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return &ValidationError{Path: "log_level", Err: err}
	}
	return nil
}

// SlogLevel returns the configured log level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	level, err := ParseLogLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// ParseLogLevel maps a config log level onto slog. Empty means info.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log_level must be one of: debug, info, warn, error")
	}
}

// Save writes the config to the default path.
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo validates and writes the config as YAML to path.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// HotkeysChanged reports whether other binds different hotkeys than c.
func (c *Config) HotkeysChanged(other *Config) bool {
	if c == nil || other == nil {
		return c != other
	}
	return c.CenterHotkey != other.CenterHotkey || c.CycleHotkey != other.CycleHotkey
}
