package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/GriffinCanCode/webdesk/internal/domain/window"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/logging"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/webdesk/internal/shared/id"
	"go.uber.org/zap"
)

var (
	// ErrDesktopNotFound is returned for unknown or expired desktops.
	ErrDesktopNotFound = errors.New("desktop not found")
	// ErrTooManyDesktops is returned when the desktop limit is reached.
	ErrTooManyDesktops = errors.New("too many desktops")
)

// ContentSource supplies window content and placement overrides.
type ContentSource interface {
	window.ContentProvider
	Overrides() window.Overrides
}

// Options configures a Manager.
type Options struct {
	// Bounds derives the clamping bounds for a viewport.
	Bounds    func(window.Viewport) window.Bounds
	Placement window.Placement
	Content   ContentSource
	// IdleTTL is how long an untouched desktop lives. Zero keeps desktops
	// until deleted.
	IdleTTL time.Duration
	// MaxDesktops caps live desktops. Zero means no limit.
	MaxDesktops int
	// CheckInvariants verifies the stack after every operation.
	CheckInvariants bool
	Now             func() time.Time
}

type entry struct {
	mu       sync.Mutex
	desktop  *window.Desktop
	lastSeen time.Time
	windows  int
	removed  bool
}

// Manager owns the live desktops. Operations on one desktop are
// serialized; different desktops proceed in parallel.
type Manager struct {
	mu       sync.RWMutex
	desktops map[id.DesktopID]*entry
	opts     Options
	metrics  *monitoring.Metrics
	logger   *zap.Logger
}

// NewManager creates a desktop manager.
func NewManager(opts Options, metrics *monitoring.Metrics, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Bounds == nil {
		opts.Bounds = window.DefaultBounds
	}
	if opts.Placement == (window.Placement{}) {
		opts.Placement = window.DefaultPlacement()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Manager{
		desktops: make(map[id.DesktopID]*entry),
		opts:     opts,
		metrics:  metrics,
		logger:   logger,
	}
}

// Create starts a desktop for a shell with the given viewport.
func (m *Manager) Create(vp window.Viewport) (id.DesktopID, window.View, error) {
	wopts := window.Options{
		Bounds:    m.opts.Bounds(vp),
		Placement: m.opts.Placement,
	}
	if m.opts.Content != nil {
		wopts.Content = m.opts.Content
		wopts.Overrides = m.opts.Content.Overrides()
	}
	d := window.NewDesktop(wopts)

	m.mu.Lock()
	if m.opts.MaxDesktops > 0 && len(m.desktops) >= m.opts.MaxDesktops {
		m.mu.Unlock()
		return "", window.View{}, fmt.Errorf("%w: limit %d", ErrTooManyDesktops, m.opts.MaxDesktops)
	}
	deskID := id.NewDesktopID()
	m.desktops[deskID] = &entry{desktop: d, lastSeen: m.opts.Now()}
	count := len(m.desktops)
	m.mu.Unlock()

	m.metrics.IncDesktopsCreated()
	m.metrics.SetDesktopsActive(count)
	m.logger.Info("Desktop created",
		logging.Desktop(deskID),
		zap.Int("width", vp.Width),
		zap.Int("height", vp.Height))
	return deskID, d.Snapshot(), nil
}

// Do runs fn on the desktop with exclusive access.
func (m *Manager) Do(deskID id.DesktopID, fn func(*window.Desktop) error) error {
	m.mu.RLock()
	e, ok := m.desktops[deskID]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrDesktopNotFound, deskID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.removed {
		return fmt.Errorf("%w: %s", ErrDesktopNotFound, deskID)
	}

	err := fn(e.desktop)

	e.lastSeen = m.opts.Now()
	if n := len(e.desktop.OpenStack()); n != e.windows {
		m.metrics.AddWindowsOpen(n - e.windows)
		e.windows = n
	}
	if m.opts.CheckInvariants {
		if cerr := e.desktop.Check(); cerr != nil {
			m.logger.Error("Desktop invariant violated",
				logging.Desktop(deskID),
				zap.Error(cerr))
		}
	}
	return err
}

// Apply folds ev into the desktop and returns what changed, the moved
// window for geometry changes and the view after stack changes.
func (m *Manager) Apply(deskID id.DesktopID, ev window.Event) (window.Change, *window.Window, window.View, error) {
	var (
		change window.Change
		moved  *window.Window
		view   window.View
	)
	err := m.Do(deskID, func(d *window.Desktop) error {
		_, wasBusy := d.Interaction()
		change, moved = d.Apply(ev)
		if change == window.ChangeStack {
			view = d.Snapshot()
		}
		if s, busy := d.Interaction(); busy && !wasBusy {
			m.metrics.RecordInteraction(s.Kind.String())
		}
		return nil
	})
	if err != nil {
		return window.ChangeNone, nil, window.View{}, err
	}

	switch ev.Type {
	case window.EventOpen, window.EventClose, window.EventFocus:
		m.metrics.RecordStackOp(string(ev.Type))
	case window.EventViewport:
	default:
		m.metrics.RecordPointerEvent(string(ev.Type))
	}
	return change, moved, view, nil
}

// View returns the current view of a desktop.
func (m *Manager) View(deskID id.DesktopID) (window.View, error) {
	var v window.View
	err := m.Do(deskID, func(d *window.Desktop) error {
		v = d.Snapshot()
		return nil
	})
	return v, err
}

// Delete removes a desktop.
func (m *Manager) Delete(deskID id.DesktopID) error {
	m.mu.Lock()
	e, ok := m.desktops[deskID]
	if ok {
		delete(m.desktops, deskID)
	}
	count := len(m.desktops)
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrDesktopNotFound, deskID)
	}

	m.retire(e)
	m.metrics.SetDesktopsActive(count)
	m.logger.Info("Desktop deleted", logging.Desktop(deskID))
	return nil
}

// Len returns the number of live desktops.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.desktops)
}

// Reap removes desktops idle for longer than the TTL and returns how many
// were removed.
func (m *Manager) Reap(now time.Time) int {
	if m.opts.IdleTTL <= 0 {
		return 0
	}

	m.mu.Lock()
	var stale []*entry
	for deskID, e := range m.desktops {
		e.mu.Lock()
		idle := now.Sub(e.lastSeen) > m.opts.IdleTTL
		e.mu.Unlock()
		if idle {
			delete(m.desktops, deskID)
			stale = append(stale, e)
		}
	}
	count := len(m.desktops)
	m.mu.Unlock()

	for _, e := range stale {
		m.retire(e)
	}
	if len(stale) > 0 {
		m.metrics.AddDesktopsReaped(len(stale))
		m.metrics.SetDesktopsActive(count)
		m.logger.Info("Idle desktops reaped", zap.Int("reaped", len(stale)), zap.Int("remaining", count))
	}
	return len(stale)
}

// Run reaps idle desktops every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	if m.opts.IdleTTL <= 0 {
		return
	}
	if interval <= 0 {
		interval = m.opts.IdleTTL / 2
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Reap(m.opts.Now())
		}
	}
}

// retire marks e removed so in-flight callers see ErrDesktopNotFound.
func (m *Manager) retire(e *entry) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.removed = true
	m.metrics.AddWindowsOpen(-e.windows)
	e.windows = 0
}
