package daemon

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/deskwm/internal/geom"
)

// SizeProbe reports the current size of the display backing the desktop.
type SizeProbe interface {
	Size() (geom.Size, error)
}

// ViewportTarget receives viewport size changes. *wm.Manager satisfies it.
type ViewportTarget interface {
	ResizeViewport(width, height int) bool
}

// ReconcilerConfig holds configuration for the reconciler.
type ReconcilerConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Reconciler periodically re-reads the display size and pushes changes
// into the window manager.
type Reconciler struct {
	interval time.Duration
	probe    SizeProbe
	target   ViewportTarget
	logger   *slog.Logger

	mu   sync.Mutex
	last geom.Size
}

// NewReconciler creates a new reconciler with the given configuration.
func NewReconciler(cfg ReconcilerConfig, probe SizeProbe, target ViewportTarget) *Reconciler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Reconciler{
		interval: interval,
		probe:    probe,
		target:   target,
		logger:   logger,
	}
}

// Run starts the reconciliation loop. Blocks until context is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("reconciler started", "interval", r.interval)

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

	size, err := r.probe.Size()
	if err != nil {
		r.logger.Error("reconciler: failed to read display size", "error", err)
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if size == r.last {
		return
	}

	if !r.target.ResizeViewport(size.Width, size.Height) {
		r.logger.Warn("reconciler: display size rejected", "width", size.Width, "height", size.Height)
		return
	}
	r.logger.Info("viewport resized",
		"width", size.Width,
		"height", size.Height,
		"previous_width", r.last.Width,
		"previous_height", r.last.Height)
	r.last = size
}

// ReconcileNow triggers an immediate reconciliation pass.
func (r *Reconciler) ReconcileNow() {
	r.reconcile()
}

// Forget clears the remembered size so the next pass re-applies it, as
// needed after a config reload replaced the viewport.
func (r *Reconciler) Forget() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = geom.Size{}
}
