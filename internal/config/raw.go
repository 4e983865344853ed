package config

import (
	"strings"
)

// RawConfig mirrors Config with optional fields so that explicitly set zero
// values (e.g. inset: 0) can be told apart from omitted keys.
type RawConfig struct {
	Divisions    *int    `yaml:"divisions"`
	Inset        *int    `yaml:"inset"`
	CenterHotkey *string `yaml:"center_hotkey"`
	CycleHotkey  *string `yaml:"cycle_hotkey"`
	LogLevel     *string `yaml:"log_level"`
	Display      *string `yaml:"display"`
}

// apply overlays the set fields of r onto cfg.
func (r RawConfig) apply(cfg *Config) {
	if r.Divisions != nil {
		cfg.Divisions = *r.Divisions
	}
	if r.Inset != nil {
		cfg.Inset = *r.Inset
	}
	if r.CenterHotkey != nil {
		cfg.CenterHotkey = strings.TrimSpace(*r.CenterHotkey)
	}
	if r.CycleHotkey != nil {
		cfg.CycleHotkey = strings.TrimSpace(*r.CycleHotkey)
	}
	if r.LogLevel != nil {
		cfg.LogLevel = strings.TrimSpace(*r.LogLevel)
	}
	if r.Display != nil {
		cfg.Display = strings.TrimSpace(*r.Display)
	}
}
