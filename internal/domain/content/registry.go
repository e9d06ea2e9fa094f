package content

import (
	"fmt"
	"sync"

	"github.com/GriffinCanCode/webdesk/internal/domain/window"
	"go.uber.org/zap"
)

// Registry holds the merged application catalog. It is safe for
// concurrent use and serves as the desktops' content provider.
type Registry struct {
	mu      sync.RWMutex
	apps    map[window.ApplicationID]Payload
	order   []window.ApplicationID
	dock    []Launcher
	desktop []Launcher
	logger  *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		apps:   make(map[window.ApplicationID]Payload),
		logger: logger,
	}
}

// Merge adds c on top of what is already registered. Applications
// replace earlier ones with the same id in place; non-empty launcher
// lists replace the current ones.
func (r *Registry) Merge(c *Catalog) {
	if c == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	replaced := 0
	for _, p := range c.Applications {
		if _, ok := r.apps[p.ID]; ok {
			replaced++
		} else {
			r.order = append(r.order, p.ID)
		}
		r.apps[p.ID] = p
	}
	if len(c.Dock) > 0 {
		r.dock = append([]Launcher(nil), c.Dock...)
	}
	if len(c.Desktop) > 0 {
		r.desktop = append([]Launcher(nil), c.Desktop...)
	}

	r.logger.Debug("Catalog merged",
		zap.Int("applications", len(c.Applications)),
		zap.Int("replaced", replaced),
		zap.Int("total", len(r.apps)))
}

// Get returns the payload registered for id.
func (r *Registry) Get(id window.ApplicationID) (Payload, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.apps[id]
	if !ok {
		return Payload{}, fmt.Errorf("%w: %s", ErrUnknownApplication, id)
	}
	return p, nil
}

// List returns every payload in registration order.
func (r *Registry) List() []Payload {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Payload, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.apps[id])
	}
	return out
}

// Len returns the number of registered applications.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.apps)
}

// Launchers returns copies of the dock and desktop icon lists.
func (r *Registry) Launchers() (dock, desktop []Launcher) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Launcher(nil), r.dock...), append([]Launcher(nil), r.desktop...)
}

// Overrides exports the placement overrides of all applications.
func (r *Registry) Overrides() window.Overrides {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(window.Overrides)
	for id, p := range r.apps {
		if p.Window != nil {
			out[id] = *p.Window
		}
	}
	return out
}

// Content implements window.ContentProvider. Unknown applications get a
// placeholder.
func (r *Registry) Content(id window.ApplicationID) any {
	p, err := r.Get(id)
	if err != nil {
		return Placeholder(id)
	}
	return p
}

var _ window.ContentProvider = (*Registry)(nil)
