package window

// Kind identifies what an interaction session does to its window.
type Kind int

const (
	// KindDrag moves a window by its title bar.
	KindDrag Kind = iota
	// KindResize resizes a window by its bottom-right handle.
	KindResize
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindDrag:
		return "drag"
	case KindResize:
		return "resize"
	default:
		return "unknown"
	}
}

// Session is one in-flight drag or resize. It exists only between a
// pointer-down and the next pointer-up.
type Session struct {
	Kind          Kind          `json:"kind"`
	Window        ApplicationID `json:"window"`
	PointerStart  Point         `json:"pointer_start"`
	GeometryStart Geometry      `json:"geometry_start"`
}

// Drag returns the geometry for the pointer at now: the start position
// shifted by the pointer delta, clamped. Size never changes.
func Drag(s Session, now Point, b Bounds) Geometry {
	size := s.GeometryStart.Size
	candidate := s.GeometryStart.Position.Add(now.Sub(s.PointerStart))
	return Geometry{
		Position: ClampPosition(candidate, size, b),
		Size:     size,
	}
}

// Resize returns the geometry for the pointer at now: the start size grown
// by the pointer delta, clamped against the fixed top-left.
func Resize(s Session, now Point, b Bounds) Geometry {
	pos := s.GeometryStart.Position
	d := now.Sub(s.PointerStart)
	candidate := Size{
		Width:  s.GeometryStart.Size.Width + d.X,
		Height: s.GeometryStart.Size.Height + d.Y,
	}
	return Geometry{
		Position: pos,
		Size:     ClampSize(candidate, pos, b),
	}
}

// Step folds one pointer position into the session.
func Step(s Session, now Point, b Bounds) Geometry {
	if s.Kind == KindResize {
		return Resize(s, now, b)
	}
	return Drag(s, now, b)
}

// Controller holds the single interaction session of a desktop.
// Phases: Idle (session == nil) and Dragging/Resizing.
type Controller struct {
	session *Session
}

// Active returns the current session, if any.
func (c *Controller) Active() (Session, bool) {
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// Begin starts a session. It returns false and changes nothing when a
// session is already running.
func (c *Controller) Begin(s Session) bool {
	if c.session != nil {
		return false
	}
	c.session = &s
	return true
}

// End clears the session and returns the one that was active.
func (c *Controller) End() (Session, bool) {
	s, ok := c.Active()
	c.session = nil
	return s, ok
}
