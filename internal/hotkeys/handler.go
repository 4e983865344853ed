package hotkeys

import (
	"fmt"
	"sync"

	"github.com/1broseidon/slotcycle/internal/platform"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// x11Accessor is an optional interface for backends that expose X11 internals.
type x11Accessor interface {
	XUtil() *xgbutil.XUtil
	RootWindow() xproto.Window
}

// Handler manages global keyboard shortcuts grabbed on the root window.
// Held keys fire once: X autorepeat presses are dropped.
type Handler struct {
	xu      *xgbutil.XUtil
	root    xproto.Window
	repeats *repeatFilter
}

// repeatFilter recognises autorepeat. While a key is held the server sends
// KeyRelease and KeyPress pairs carrying the same timestamp.
type repeatFilter struct {
	mu       sync.Mutex
	released map[xproto.Keycode]xproto.Timestamp
}

func newRepeatFilter() *repeatFilter {
	return &repeatFilter{released: make(map[xproto.Keycode]xproto.Timestamp)}
}

func (f *repeatFilter) release(key xproto.Keycode, at xproto.Timestamp) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released[key] = at
}

// press reports whether a KeyPress is a real press rather than a repeat.
func (f *repeatFilter) press(key xproto.Keycode, at xproto.Timestamp) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	last, ok := f.released[key]
	delete(f.released, key)
	return !ok || last != at
}

func (f *repeatFilter) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	clear(f.released)
}

var ignoreModsOnce sync.Once

// NewHandler creates a new hotkey handler.
func NewHandler(backend platform.Backend) *Handler {
	var xu *xgbutil.XUtil
	var root xproto.Window
	if accessor, ok := backend.(x11Accessor); ok {
		xu = accessor.XUtil()
		root = accessor.RootWindow()
	}

	if xu != nil {
		ignoreModsOnce.Do(func() {
			configureIgnoreMods(xu)
		})
	}

	return &Handler{
		xu:      xu,
		root:    root,
		repeats: newRepeatFilter(),
	}
}

// RegisterFunc grabs keySequence (xgbutil syntax, e.g. "Mod4-Shift-c") on
// the root window and runs callback once per press.
func (h *Handler) RegisterFunc(keySequence string, callback func()) error {
	if h.xu == nil {
		return fmt.Errorf("hotkeys require an X11 backend")
	}

	err := keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		if h.repeats.press(ev.Detail, ev.Time) {
			callback()
		}
	}).Connect(h.xu, h.root, keySequence, true)
	if err != nil {
		return err
	}

	// The press grab already routes releases of this key to us.
	return keybind.KeyReleaseFun(func(xu *xgbutil.XUtil, ev xevent.KeyReleaseEvent) {
		h.repeats.release(ev.Detail, ev.Time)
	}).Connect(h.xu, h.root, keySequence, false)
}

// UnregisterAll releases every grab made through RegisterFunc.
func (h *Handler) UnregisterAll() {
	h.repeats.reset()
	if h.xu == nil {
		return
	}
	keybind.Detach(h.xu, h.root)
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	unique := make(map[uint16]struct{})
	add := func(mask uint16) {
		unique[mask] = struct{}{}
	}

	add(0)
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		add(mask)
	}

	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}

	xevent.IgnoreMods = ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
