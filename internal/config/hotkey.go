package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgbutil/keybind"
)

// ParseHotkey splits an xgbutil key sequence such as "Mod4-Shift-Right"
// into its modifiers and key name. Modifier names follow keybind.ParseString
// (case-insensitive); exactly one other part must name the key. Whether the
// key exists in the keyboard map is only known once it is grabbed.
func ParseHotkey(s string) (mods []string, key string, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, "", fmt.Errorf("hotkey must not be empty")
	}
	for _, part := range strings.Split(s, "-") {
		if part == "" || strings.ContainsAny(part, " \t") {
			return nil, "", fmt.Errorf("invalid hotkey %q: empty or blank part", s)
		}
		if isModifier(part) {
			mods = append(mods, strings.ToLower(part))
			continue
		}
		if key != "" {
			return nil, "", fmt.Errorf("invalid hotkey %q: %q and %q are both keys (modifiers are %s)",
				s, key, part, modifierList())
		}
		key = part
	}
	if key == "" {
		return nil, "", fmt.Errorf("invalid hotkey %q: no key after the modifiers", s)
	}
	return mods, key, nil
}

func isModifier(part string) bool {
	name := strings.ToLower(part)
	if name == "any" {
		return true
	}
	for _, m := range keybind.NiceModifiers {
		if m != "" && m == name {
			return true
		}
	}
	return false
}

func modifierList() string {
	names := make([]string, 0, len(keybind.NiceModifiers))
	for _, m := range keybind.NiceModifiers {
		if m != "" {
			names = append(names, m)
		}
	}
	return strings.Join(append(names, "any"), ", ")
}
