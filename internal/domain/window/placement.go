package window

// Cascade defaults: each new window lands one Offset further down and right.
const (
	DefaultBaseX         = 120
	DefaultBaseY         = 80
	DefaultCascadeOffset = 32
	DefaultWidth         = 540
	DefaultHeight        = 360

	// DefaultFitReserve is the height a fitted window leaves for the menu
	// bar, dock and gaps.
	DefaultFitReserve = 130
)

// Placement is the initial placement policy.
type Placement struct {
	BaseX  int
	BaseY  int
	Offset int
	Size   Size

	// FitReserve is subtracted from the viewport height to cap windows
	// whose override asks to fit the viewport.
	FitReserve int
}

// DefaultPlacement returns the stock cascading policy.
func DefaultPlacement() Placement {
	return Placement{
		BaseX:      DefaultBaseX,
		BaseY:      DefaultBaseY,
		Offset:     DefaultCascadeOffset,
		Size:       Size{Width: DefaultWidth, Height: DefaultHeight},
		FitReserve: DefaultFitReserve,
	}
}

// PositionOverride pins one or both coordinates of a new window. A nil
// coordinate keeps its cascaded value.
type PositionOverride struct {
	X *int `json:"x,omitempty" yaml:"x,omitempty" toml:"x,omitempty"`
	Y *int `json:"y,omitempty" yaml:"y,omitempty" toml:"y,omitempty"`
}

// Override replaces parts of the default placement for one application.
type Override struct {
	Position *PositionOverride `json:"position,omitempty" yaml:"position,omitempty" toml:"position,omitempty"`
	Size     *Size             `json:"size,omitempty" yaml:"size,omitempty" toml:"size,omitempty"`
	// FitViewport caps the height at the viewport height less the
	// placement's FitReserve, then keeps the frame above the dock.
	FitViewport bool `json:"fit_viewport,omitempty" yaml:"fit_viewport,omitempty" toml:"fit_viewport,omitempty"`
}

// Overrides maps application ids to their placement overrides.
type Overrides map[ApplicationID]Override

// Place computes the frame for the window opened at stack index n.
// The result is mount-clamped against b.
func (p Placement) Place(id ApplicationID, n int, overrides Overrides, b Bounds) Geometry {
	g := Geometry{
		Position: Point{X: p.BaseX + n*p.Offset, Y: p.BaseY + n*p.Offset},
		Size:     p.Size,
	}
	o, ok := overrides[id]
	if !ok {
		return ClampGeometry(g, b)
	}
	if o.Position != nil {
		if o.Position.X != nil {
			g.Position.X = *o.Position.X
		}
		if o.Position.Y != nil {
			g.Position.Y = *o.Position.Y
		}
	}
	if o.Size != nil {
		g.Size = *o.Size
	}
	if o.FitViewport {
		if h := b.Viewport.Height - p.FitReserve; h < g.Size.Height {
			g.Size.Height = h
		}
	}
	g = ClampGeometry(g, b)
	if o.FitViewport {
		g.Size = ClampSize(g.Size, g.Position, b)
	}
	return g
}
