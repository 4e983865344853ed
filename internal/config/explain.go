package config

import (
	"fmt"
	"sort"
)

// Keys lists the top-level config keys in file order.
var Keys = []string{"divisions", "inset", "center_hotkey", "cycle_hotkey", "log_level", "display"}

// Explain returns the effective value of key and where it came from. A
// zero Source means the built-in default applies.
func Explain(res *LoadResult, key string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}

	cfg := res.Config
	var value any
	switch key {
	case "divisions":
		value = cfg.Divisions
	case "inset":
		value = cfg.Inset
	case "center_hotkey":
		value = cfg.CenterHotkey
	case "cycle_hotkey":
		value = cfg.CycleHotkey
	case "log_level":
		value = cfg.LogLevel
	case "display":
		value = cfg.Display
	default:
		known := append([]string(nil), Keys...)
		sort.Strings(known)
		return nil, Source{}, fmt.Errorf("unknown config key %q (known: %v)", key, known)
	}

	return value, res.Sources[key], nil
}

// String formats s as file:line:col, or "default" for the zero Source.
func (s Source) String() string {
	if s.File == "" || s.Line == 0 {
		return "default"
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}
