package window

// EventType names a host input.
type EventType string

const (
	EventOpen        EventType = "open"
	EventClose       EventType = "close"
	EventFocus       EventType = "focus"
	EventTitleDown   EventType = "title_down"
	EventResizeDown  EventType = "resize_down"
	EventWindowDown  EventType = "window_down"
	EventPointerMove EventType = "move"
	EventPointerUp   EventType = "up"
	EventViewport    EventType = "viewport"
)

// Event is one discrete input from the host shell.
type Event struct {
	Type     EventType     `json:"type"`
	App      ApplicationID `json:"app,omitempty"`
	Pointer  Point         `json:"pointer"`
	Viewport Viewport      `json:"viewport"`
}

// Change tells the host what an event did.
type Change int

const (
	// ChangeNone means nothing visible changed.
	ChangeNone Change = iota
	// ChangeGeometry means a single window moved or resized. For a
	// pointer-up it carries the final frame and the session is over.
	ChangeGeometry
	// ChangeStack means the open set, order, focus, viewport or session
	// changed. A session ended by pointer-up reports ChangeGeometry instead,
	// unless its window was closed mid-session.
	ChangeStack
)

func (c Change) String() string {
	switch c {
	case ChangeGeometry:
		return "geometry"
	case ChangeStack:
		return "stack"
	default:
		return "none"
	}
}

// Apply folds ev into the desktop through the matching entry point.
// Unknown event types are ignored.
func (d *Desktop) Apply(ev Event) (Change, *Window) {
	switch ev.Type {
	case EventOpen:
		d.OpenApplication(ev.App)
		return ChangeStack, nil
	case EventClose:
		d.CloseApplication(ev.App)
		return ChangeStack, nil
	case EventFocus:
		d.FocusApplication(ev.App)
		return ChangeStack, nil
	case EventWindowDown:
		if d.OnWindowPointerDown(ev.App) {
			return ChangeStack, nil
		}
	case EventTitleDown:
		if d.OnTitleBarPointerDown(ev.App, ev.Pointer) {
			return ChangeStack, nil
		}
	case EventResizeDown:
		if d.OnResizeHandlePointerDown(ev.App, ev.Pointer) {
			return ChangeStack, nil
		}
	case EventPointerMove:
		if w, ok := d.OnPointerMove(ev.Pointer); ok {
			return ChangeGeometry, &w
		}
	case EventPointerUp:
		if s, ok := d.OnPointerUp(); ok {
			if w, open := d.stack.Window(s.Window); open {
				final := *w
				return ChangeGeometry, &final
			}
			return ChangeStack, nil
		}
	case EventViewport:
		d.SetViewport(ev.Viewport)
		return ChangeStack, nil
	}
	return ChangeNone, nil
}
