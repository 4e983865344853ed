package daemon

import (
	"context"
	"log/slog"
	"time"

	"github.com/1broseidon/slotcycle/internal/platform"
)

// DisplayLister returns the current displays ordered left to right.
type DisplayLister func() ([]platform.Display, error)

// ReconcilerConfig holds configuration for the reconciler.
type ReconcilerConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Reconciler periodically compares the monitor layout with the last one
// seen and logs hotplug changes. A stale slot is wrapped into the new
// layout on the next cycle, so no state is touched here.
type Reconciler struct {
	interval     time.Duration
	listDisplays DisplayLister
	logger       *slog.Logger

	last    []platform.Rect
	changes int
}

// NewReconciler creates a new reconciler with the given configuration.
func NewReconciler(cfg ReconcilerConfig, listDisplays DisplayLister) *Reconciler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Reconciler{
		interval:     interval,
		listDisplays: listDisplays,
		logger:       logger,
	}
}

// Run starts the reconciliation loop. Blocks until context is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("reconciler started", "interval", r.interval)
	r.reconcile()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reconciler stopped")
			return
		case <-ticker.C:
			r.reconcile()
		}
	}
}

// reconcile performs a single reconciliation pass.
func (r *Reconciler) reconcile() {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error("reconciler panic recovered", "error", err)
		}
	}()

	displays, err := r.listDisplays()
	if err != nil {
		r.logger.Warn("reconciler: failed to list displays", "error", err)
		return
	}

	current := make([]platform.Rect, len(displays))
	for i, d := range displays {
		current[i] = d.Usable
	}

	if r.last == nil {
		r.last = current
		r.logger.Debug("reconciler: initial layout", "monitors", len(current))
		return
	}
	if sameLayout(r.last, current) {
		return
	}

	r.changes++
	r.logger.Info("reconciler: monitor layout changed",
		"before", len(r.last),
		"after", len(current))
	for i, d := range displays {
		r.logger.Debug("reconciler: monitor",
			"index", i,
			"name", d.Name,
			"x", d.Usable.X, "y", d.Usable.Y,
			"width", d.Usable.Width, "height", d.Usable.Height)
	}
	r.last = current
}

// ReconcileNow triggers an immediate reconciliation pass.
func (r *Reconciler) ReconcileNow() {
	r.reconcile()
}

// Changes returns how many layout changes have been observed.
func (r *Reconciler) Changes() int {
	return r.changes
}

func sameLayout(a, b []platform.Rect) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
