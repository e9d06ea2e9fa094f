package window

// ContentProvider supplies the renderable payload for an application. The
// desktop holds the returned value for the window's lifetime and never
// looks inside it.
type ContentProvider interface {
	Content(id ApplicationID) any
}

// ContentFunc adapts a function to ContentProvider.
type ContentFunc func(id ApplicationID) any

// Content calls f(id).
func (f ContentFunc) Content(id ApplicationID) any {
	return f(id)
}

// Options configures a Desktop. Zero values fall back to the defaults.
type Options struct {
	Bounds    Bounds
	Placement Placement
	Overrides Overrides
	Content   ContentProvider
}

// Desktop is the window manager of one shell: open applications, their
// stacking order and focus, plus the active drag or resize.
//
// A Desktop is not safe for concurrent use; callers serialize access.
type Desktop struct {
	stack      *Stack
	controller Controller
	bounds     Bounds
	placement  Placement
	overrides  Overrides
	content    ContentProvider
}

// NewDesktop creates an empty desktop.
func NewDesktop(opts Options) *Desktop {
	if opts.Bounds.MinWidth == 0 && opts.Bounds.MinHeight == 0 && opts.Bounds.Chrome == (Chrome{}) {
		opts.Bounds = DefaultBounds(opts.Bounds.Viewport)
	}
	if opts.Placement == (Placement{}) {
		opts.Placement = DefaultPlacement()
	}
	if opts.Content == nil {
		opts.Content = ContentFunc(func(ApplicationID) any { return nil })
	}
	return &Desktop{
		stack:     NewStack(),
		bounds:    opts.Bounds,
		placement: opts.Placement,
		overrides: opts.Overrides,
		content:   opts.Content,
	}
}

// Bounds returns the current clamping bounds.
func (d *Desktop) Bounds() Bounds {
	return d.bounds
}

// SetViewport records a new viewport size. Windows are re-clamped lazily,
// the next time their geometry is read or a session starts on them.
func (d *Desktop) SetViewport(vp Viewport) {
	d.bounds.Viewport = vp
}

// OpenApplication opens id, or raises it if it is already open.
func (d *Desktop) OpenApplication(id ApplicationID) {
	if d.stack.Raise(id) {
		return
	}
	d.stack.Push(&Window{
		ID:       id,
		Geometry: d.placement.Place(id, d.stack.Len(), d.overrides, d.bounds),
		Content:  d.content.Content(id),
	})
}

// CloseApplication closes id. Focus is cleared if id was focused. A session
// on the closed window ends with it.
func (d *Desktop) CloseApplication(id ApplicationID) {
	if !d.stack.Remove(id) {
		return
	}
	if s, ok := d.controller.Active(); ok && s.Window == id {
		d.controller.End()
	}
}

// FocusApplication raises and focuses id if it is open.
func (d *Desktop) FocusApplication(id ApplicationID) {
	d.stack.Raise(id)
}

// OnWindowPointerDown handles a press anywhere on a window: it focuses it.
// It reports false while a session is active or when id is not open.
func (d *Desktop) OnWindowPointerDown(id ApplicationID) bool {
	if _, busy := d.controller.Active(); busy {
		return false
	}
	return d.stack.Raise(id)
}

// OnTitleBarPointerDown starts dragging id and focuses it. It is ignored
// while another session is active or when id is not open.
func (d *Desktop) OnTitleBarPointerDown(id ApplicationID, p Point) bool {
	if !d.begin(KindDrag, id, p) {
		return false
	}
	d.stack.Raise(id)
	return true
}

// OnResizeHandlePointerDown starts resizing id. It does not start a drag
// and does not change focus.
func (d *Desktop) OnResizeHandlePointerDown(id ApplicationID, p Point) bool {
	return d.begin(KindResize, id, p)
}

func (d *Desktop) begin(kind Kind, id ApplicationID, p Point) bool {
	if _, busy := d.controller.Active(); busy {
		return false
	}
	w, ok := d.stack.Window(id)
	if !ok {
		return false
	}
	w.Geometry = ClampGeometry(w.Geometry, d.bounds)
	return d.controller.Begin(Session{
		Kind:          kind,
		Window:        id,
		PointerStart:  p,
		GeometryStart: w.Geometry,
	})
}

// OnPointerMove advances the active session. It returns the updated window
// and true when a window changed.
func (d *Desktop) OnPointerMove(p Point) (Window, bool) {
	s, ok := d.controller.Active()
	if !ok {
		return Window{}, false
	}
	w, ok := d.stack.Window(s.Window)
	if !ok {
		d.controller.End()
		return Window{}, false
	}
	next := Step(s, p, d.bounds)
	if next == w.Geometry {
		return *w, false
	}
	w.Geometry = next
	return *w, true
}

// OnPointerUp ends the active session wherever the pointer is.
func (d *Desktop) OnPointerUp() (Session, bool) {
	return d.controller.End()
}

// Interaction returns the active session, if any.
func (d *Desktop) Interaction() (Session, bool) {
	return d.controller.Active()
}

// Focused returns the focused application, or "" when none is.
func (d *Desktop) Focused() ApplicationID {
	return d.stack.Focused()
}

// OpenStack returns the open applications, bottom first.
func (d *Desktop) OpenStack() []ApplicationID {
	return d.stack.Order()
}

// GeometryOf returns the current, viewport-clamped frame of id.
func (d *Desktop) GeometryOf(id ApplicationID) (Geometry, bool) {
	w, ok := d.stack.Window(id)
	if !ok {
		return Geometry{}, false
	}
	d.settle(w)
	return w.Geometry, true
}

// settle re-clamps w unless it is the subject of the running session.
func (d *Desktop) settle(w *Window) {
	if s, ok := d.controller.Active(); ok && s.Window == w.ID {
		return
	}
	w.Geometry = ClampGeometry(w.Geometry, d.bounds)
}

// Check verifies the stack invariants.
func (d *Desktop) Check() error {
	return d.stack.Check()
}

// View is the read model handed to renderers.
type View struct {
	OpenStack   []ApplicationID `json:"open_stack"`
	Focused     *ApplicationID  `json:"focused"`
	Windows     []Window        `json:"windows"` // paint order, topmost last
	Viewport    Viewport        `json:"viewport"`
	Interaction *Session        `json:"interaction,omitempty"`
}

// Snapshot returns the current view with every window settled.
func (d *Desktop) Snapshot() View {
	order := d.stack.Order()
	v := View{
		OpenStack: order,
		Windows:   make([]Window, 0, len(order)),
		Viewport:  d.bounds.Viewport,
	}
	if f := d.stack.Focused(); f != "" {
		v.Focused = &f
	}
	for _, id := range order {
		w, _ := d.stack.Window(id)
		d.settle(w)
		v.Windows = append(v.Windows, *w)
	}
	if s, ok := d.controller.Active(); ok {
		v.Interaction = &s
	}
	return v
}
