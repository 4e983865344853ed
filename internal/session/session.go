// Package session binds the placement actions to global hotkeys for the
// lifetime of an enabled session.
package session

import (
	"fmt"
	"log"
	"sync"

	"github.com/1broseidon/slotcycle/internal/slots"
)

// Binder registers global hotkeys.
type Binder interface {
	RegisterFunc(keySequence string, callback func()) error
	UnregisterAll()
}

// Actions are the placement operations triggered by hotkeys.
type Actions interface {
	Center() (slots.Placement, error)
	Cycle() (slots.Placement, error)
	Reset()
}

// Keys names the hotkeys bound while the session is enabled.
type Keys struct {
	Center string
	Cycle  string
}

// Session owns the hotkey bindings. Enabling binds the keys; disabling
// unbinds them and forgets the last slot.
type Session struct {
	binder  Binder
	actions Actions

	mu      sync.Mutex
	keys    Keys
	enabled bool
}

// New creates a disabled session.
func New(binder Binder, actions Actions, keys Keys) *Session {
	return &Session{
		binder:  binder,
		actions: actions,
		keys:    keys,
	}
}

// Enable registers the center and cycle hotkeys. Calling it on an enabled
// session does nothing.
func (s *Session) Enable() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.enabled {
		return nil
	}
	if err := s.bindLocked(); err != nil {
		s.binder.UnregisterAll()
		return err
	}
	s.enabled = true
	return nil
}

// Disable unregisters the hotkeys and resets the slot state. The state is
// reset even when the session was not enabled, since slots can also be used
// through IPC.
func (s *Session) Disable() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.actions.Reset()
	if !s.enabled {
		return
	}
	s.binder.UnregisterAll()
	s.enabled = false
	log.Println("Session disabled")
}

// Enabled reports whether hotkeys are currently bound.
func (s *Session) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// Keys returns the configured hotkeys.
func (s *Session) Keys() Keys {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keys
}

// SetKeys changes the hotkeys, rebinding them when the session is enabled.
// The slot state is kept. If the new keys cannot be bound the previous keys
// are restored and bound again.
func (s *Session) SetKeys(keys Keys) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keys == s.keys {
		return nil
	}
	prev := s.keys
	s.keys = keys
	if !s.enabled {
		return nil
	}

	s.binder.UnregisterAll()
	err := s.bindLocked()
	if err == nil {
		return nil
	}

	s.binder.UnregisterAll()
	s.keys = prev
	if rerr := s.bindLocked(); rerr != nil {
		s.binder.UnregisterAll()
		s.enabled = false
		log.Printf("Failed to restore previous hotkeys, session disabled: %v", rerr)
	}
	return err
}

func (s *Session) bindLocked() error {
	if err := s.binder.RegisterFunc(s.keys.Center, func() {
		if _, err := s.actions.Center(); err != nil {
			log.Printf("Center failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("failed to register center hotkey %q: %w", s.keys.Center, err)
	}
	log.Printf("Center hotkey registered: %s", s.keys.Center)

	if err := s.binder.RegisterFunc(s.keys.Cycle, func() {
		if _, err := s.actions.Cycle(); err != nil {
			log.Printf("Cycle failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("failed to register cycle hotkey %q: %w", s.keys.Cycle, err)
	}
	log.Printf("Cycle hotkey registered: %s", s.keys.Cycle)
	return nil
}
