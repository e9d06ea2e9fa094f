package window

// Point is a position in viewport pixels.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns the delta from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size is a width and height in viewport pixels.
type Size struct {
	Width  int `json:"width" yaml:"width" toml:"width"`
	Height int `json:"height" yaml:"height" toml:"height"`
}

// Geometry is the frame of a window.
type Geometry struct {
	Position Point `json:"position"`
	Size     Size  `json:"size"`
}

// Viewport is the visible area of the host page.
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Chrome describes the regions windows may never overlap.
type Chrome struct {
	Top        int `json:"top"`         // menu bar
	Bottom     int `json:"bottom"`      // dock
	SafeMargin int `json:"safe_margin"` // gap kept above the dock
}

// Bounds bundles everything the clamper needs.
type Bounds struct {
	Viewport  Viewport
	Chrome    Chrome
	MinWidth  int
	MinHeight int
}

// Default chrome and size limits, matching the stock shell stylesheet.
const (
	DefaultMinWidth     = 320
	DefaultMinHeight    = 180
	DefaultTopChrome    = 10
	DefaultBottomChrome = 70
	DefaultSafeMargin   = 10
)

// DefaultBounds returns the stock limits for the given viewport.
func DefaultBounds(vp Viewport) Bounds {
	return Bounds{
		Viewport: vp,
		Chrome: Chrome{
			Top:        DefaultTopChrome,
			Bottom:     DefaultBottomChrome,
			SafeMargin: DefaultSafeMargin,
		},
		MinWidth:  DefaultMinWidth,
		MinHeight: DefaultMinHeight,
	}
}

// bottomEdge is the lowest y a window's bottom edge may reach.
func (b Bounds) bottomEdge() int {
	return b.Viewport.Height - b.Chrome.Bottom - b.Chrome.SafeMargin
}

// FloorSize raises size to the minimum window dimensions.
func (b Bounds) FloorSize(s Size) Size {
	return Size{
		Width:  max(b.MinWidth, s.Width),
		Height: max(b.MinHeight, s.Height),
	}
}

// ClampPosition keeps a window of the given size inside the viewport and
// clear of the chrome. When the window does not fit, it is pinned to the
// left edge and to the bottom of the menu bar and allowed to overflow.
func ClampPosition(pos Point, size Size, b Bounds) Point {
	maxX := b.Viewport.Width - size.Width
	maxY := b.bottomEdge() - size.Height
	return Point{
		X: max(0, min(pos.X, maxX)),
		Y: max(b.Chrome.Top, min(pos.Y, maxY)),
	}
}

// ClampSize applies the size floor and caps the size so the window's right
// and bottom edges stay on screen, measured from the fixed top-left pos. The
// floor wins over the caps.
func ClampSize(size Size, pos Point, b Bounds) Size {
	maxWidth := b.Viewport.Width - pos.X
	maxHeight := b.bottomEdge() - pos.Y
	return Size{
		Width:  max(b.MinWidth, min(size.Width, maxWidth)),
		Height: max(b.MinHeight, min(size.Height, maxHeight)),
	}
}

// ClampGeometry is the mount-time clamp: size floor first, then position.
// It is also used whenever the viewport may have changed since g was computed.
func ClampGeometry(g Geometry, b Bounds) Geometry {
	size := b.FloorSize(g.Size)
	return Geometry{
		Position: ClampPosition(g.Position, size, b),
		Size:     size,
	}
}

// Fits reports whether g satisfies every containment invariant for b.
func Fits(g Geometry, b Bounds) bool {
	p, s := g.Position, g.Size
	return s.Width >= b.MinWidth &&
		s.Height >= b.MinHeight &&
		p.X >= 0 &&
		p.X+s.Width <= b.Viewport.Width &&
		p.Y >= b.Chrome.Top &&
		p.Y+s.Height <= b.bottomEdge()
}
