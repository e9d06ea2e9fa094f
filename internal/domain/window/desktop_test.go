package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDesktop(opts Options) *Desktop {
	if opts.Bounds.Viewport == (Viewport{}) {
		opts.Bounds = bounds1200()
	}
	return NewDesktop(opts)
}

func TestOpenApplicationCascades(t *testing.T) {
	d := newTestDesktop(Options{})

	d.OpenApplication("Projects")
	d.OpenApplication("About Me")
	d.OpenApplication("Skills")

	assert.Equal(t, []ApplicationID{"Projects", "About Me", "Skills"}, d.OpenStack())
	assert.Equal(t, ApplicationID("Skills"), d.Focused())

	tests := []struct {
		id   ApplicationID
		want Point
	}{
		{"Projects", Point{120, 80}},
		{"About Me", Point{152, 112}},
		{"Skills", Point{184, 144}},
	}
	for _, tt := range tests {
		g, ok := d.GeometryOf(tt.id)
		require.True(t, ok, tt.id)
		assert.Equal(t, tt.want, g.Position, tt.id)
		assert.Equal(t, Size{Width: 540, Height: 360}, g.Size, tt.id)
	}
	require.NoError(t, d.Check())
}

func TestReopenRaisesWithoutMoving(t *testing.T) {
	d := newTestDesktop(Options{})
	d.OpenApplication("Projects")
	d.OpenApplication("Terminal")

	d.OnTitleBarPointerDown("Projects", Point{X: 300, Y: 90})
	d.OnPointerMove(Point{X: 340, Y: 120})
	d.OnPointerUp()
	before, _ := d.GeometryOf("Projects")

	d.OpenApplication("Terminal")
	d.OpenApplication("Projects")

	after, _ := d.GeometryOf("Projects")
	assert.Equal(t, before, after)
	assert.Equal(t, []ApplicationID{"Terminal", "Projects"}, d.OpenStack())
	assert.Equal(t, ApplicationID("Projects"), d.Focused())
}

func TestCloseFocusedClearsFocus(t *testing.T) {
	d := newTestDesktop(Options{})
	d.OpenApplication("Projects")
	d.OpenApplication("Terminal")

	d.CloseApplication("Terminal")

	assert.Equal(t, ApplicationID(""), d.Focused())
	assert.Equal(t, []ApplicationID{"Projects"}, d.OpenStack())
	assert.Nil(t, d.Snapshot().Focused)

	// Reopening cascades from the current stack size.
	d.OpenApplication("Terminal")
	g, _ := d.GeometryOf("Terminal")
	assert.Equal(t, Point{X: 152, Y: 112}, g.Position)

	d.CloseApplication("Contact")
	assert.Equal(t, []ApplicationID{"Projects", "Terminal"}, d.OpenStack())
}

func TestFocusApplication(t *testing.T) {
	d := newTestDesktop(Options{})
	d.OpenApplication("Projects")
	d.OpenApplication("Terminal")

	d.FocusApplication("Projects")
	assert.Equal(t, ApplicationID("Projects"), d.Focused())
	assert.Equal(t, []ApplicationID{"Terminal", "Projects"}, d.OpenStack())

	d.FocusApplication("Contact")
	assert.Equal(t, ApplicationID("Projects"), d.Focused())
	assert.Equal(t, []ApplicationID{"Terminal", "Projects"}, d.OpenStack())

	assert.True(t, d.OnWindowPointerDown("Terminal"))
	assert.Equal(t, ApplicationID("Terminal"), d.Focused())

	assert.False(t, d.OnWindowPointerDown("Contact"))
	assert.Equal(t, ApplicationID("Terminal"), d.Focused())
}

func TestDragSession(t *testing.T) {
	d := newTestDesktop(Options{})
	d.OpenApplication("Projects")
	d.OpenApplication("Terminal")

	require.True(t, d.OnTitleBarPointerDown("Projects", Point{X: 300, Y: 95}))
	assert.Equal(t, ApplicationID("Projects"), d.Focused())

	s, ok := d.Interaction()
	require.True(t, ok)
	assert.Equal(t, KindDrag, s.Kind)

	w, changed := d.OnPointerMove(Point{X: 100, Y: -5})
	require.True(t, changed)
	assert.Equal(t, Point{X: 0, Y: 10}, w.Geometry.Position)

	// Same clamped result twice reports no change.
	_, changed = d.OnPointerMove(Point{X: 50, Y: -50})
	assert.False(t, changed)

	ended, ok := d.OnPointerUp()
	require.True(t, ok)
	assert.Equal(t, ApplicationID("Projects"), ended.Window)

	_, ok = d.Interaction()
	assert.False(t, ok)

	_, changed = d.OnPointerMove(Point{X: 400, Y: 400})
	assert.False(t, changed)
	g, _ := d.GeometryOf("Projects")
	assert.Equal(t, Point{X: 0, Y: 10}, g.Position)
}

func TestResizeSessionKeepsFocus(t *testing.T) {
	d := newTestDesktop(Options{})
	d.OpenApplication("Projects")
	d.OpenApplication("Terminal")

	require.True(t, d.OnResizeHandlePointerDown("Projects", Point{X: 660, Y: 440}))
	assert.Equal(t, ApplicationID("Terminal"), d.Focused())
	assert.Equal(t, []ApplicationID{"Projects", "Terminal"}, d.OpenStack())

	w, changed := d.OnPointerMove(Point{X: 760, Y: 490})
	require.True(t, changed)
	assert.Equal(t, Point{X: 120, Y: 80}, w.Geometry.Position)
	assert.Equal(t, Size{Width: 640, Height: 410}, w.Geometry.Size)
}

func TestSecondPointerDownIsIgnored(t *testing.T) {
	d := newTestDesktop(Options{})
	d.OpenApplication("Projects")
	d.OpenApplication("Terminal")

	require.True(t, d.OnTitleBarPointerDown("Projects", Point{X: 300, Y: 95}))
	assert.False(t, d.OnResizeHandlePointerDown("Terminal", Point{X: 700, Y: 500}))
	assert.False(t, d.OnTitleBarPointerDown("Terminal", Point{X: 400, Y: 130}))

	assert.False(t, d.OnWindowPointerDown("Terminal"))
	assert.Equal(t, ApplicationID("Projects"), d.Focused())

	s, _ := d.Interaction()
	assert.Equal(t, ApplicationID("Projects"), s.Window)
	assert.Equal(t, KindDrag, s.Kind)
}

func TestPointerDownOnClosedWindowIsIgnored(t *testing.T) {
	d := newTestDesktop(Options{})

	assert.False(t, d.OnTitleBarPointerDown("Projects", Point{}))
	assert.False(t, d.OnResizeHandlePointerDown("Projects", Point{}))
	_, ok := d.Interaction()
	assert.False(t, ok)
}

func TestCloseDuringSessionEndsIt(t *testing.T) {
	d := newTestDesktop(Options{})
	d.OpenApplication("Projects")
	d.OpenApplication("Terminal")

	require.True(t, d.OnTitleBarPointerDown("Terminal", Point{X: 300, Y: 130}))
	d.CloseApplication("Projects")
	_, ok := d.Interaction()
	assert.True(t, ok)

	d.CloseApplication("Terminal")
	_, ok = d.Interaction()
	assert.False(t, ok)

	_, changed := d.OnPointerMove(Point{X: 10, Y: 10})
	assert.False(t, changed)
	_, ok = d.OnPointerUp()
	assert.False(t, ok)
}

func TestViewportShrinkReclampsOnRead(t *testing.T) {
	d := newTestDesktop(Options{})
	d.OpenApplication("Projects")

	d.SetViewport(Viewport{Width: 600, Height: 500})

	g, ok := d.GeometryOf("Projects")
	require.True(t, ok)
	assert.Equal(t, Point{X: 60, Y: 60}, g.Position)
	assert.Equal(t, Size{Width: 540, Height: 360}, g.Size)
	assert.True(t, Fits(g, d.Bounds()))
}

func TestOverridePlacement(t *testing.T) {
	y := 10
	d := newTestDesktop(Options{
		Overrides: Overrides{
			"Resume": {
				Position:    &PositionOverride{Y: &y},
				Size:        &Size{Width: 800, Height: 900},
				FitViewport: true,
			},
		},
	})

	d.OpenApplication("Resume")

	g, _ := d.GeometryOf("Resume")
	assert.Equal(t, Point{X: 120, Y: 10}, g.Position)
	assert.Equal(t, Size{Width: 800, Height: 670}, g.Size)
	assert.True(t, Fits(g, d.Bounds()))
}

func TestFitViewportHeight(t *testing.T) {
	y := 10
	p := DefaultPlacement()
	o := Overrides{"Resume": {
		Position:    &PositionOverride{Y: &y},
		Size:        &Size{Width: 800, Height: 900},
		FitViewport: true,
	}}

	tests := []struct {
		name   string
		vp     Viewport
		height int
	}{
		{"tall viewport keeps requested height", Viewport{Width: 1400, Height: 1100}, 900},
		{"reserve caps height", Viewport{Width: 1200, Height: 800}, 670},
		{"short viewport", Viewport{Width: 1200, Height: 500}, 370},
		{"floor wins", Viewport{Width: 1200, Height: 250}, DefaultMinHeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := p.Place("Resume", 0, o, DefaultBounds(tt.vp))
			assert.Equal(t, tt.height, g.Size.Height)
			assert.Equal(t, 10, g.Position.Y)
		})
	}
}

func TestOverrideWithoutFitKeepsSize(t *testing.T) {
	x := 400
	p := DefaultPlacement()
	b := bounds1200()

	g := p.Place("Contact", 1, Overrides{"Contact": {Position: &PositionOverride{X: &x}}}, b)

	assert.Equal(t, Point{X: 400, Y: 112}, g.Position)
	assert.Equal(t, p.Size, g.Size)
}

func TestContentProviderCalledOnOpen(t *testing.T) {
	var calls []ApplicationID
	d := newTestDesktop(Options{
		Content: ContentFunc(func(id ApplicationID) any {
			calls = append(calls, id)
			return "body of " + string(id)
		}),
	})

	d.OpenApplication("Projects")
	d.OpenApplication("Projects")

	assert.Equal(t, []ApplicationID{"Projects"}, calls)
	v := d.Snapshot()
	require.Len(t, v.Windows, 1)
	assert.Equal(t, "body of Projects", v.Windows[0].Content)
}

func TestSnapshot(t *testing.T) {
	d := newTestDesktop(Options{})
	v := d.Snapshot()
	assert.Empty(t, v.OpenStack)
	assert.Nil(t, v.Focused)
	assert.Nil(t, v.Interaction)

	d.OpenApplication("Projects")
	d.OpenApplication("Terminal")
	d.OnResizeHandlePointerDown("Projects", Point{X: 1, Y: 1})

	v = d.Snapshot()
	require.NotNil(t, v.Focused)
	assert.Equal(t, ApplicationID("Terminal"), *v.Focused)
	require.NotNil(t, v.Interaction)
	assert.Equal(t, KindResize, v.Interaction.Kind)
	assert.Equal(t, []ApplicationID{"Projects", "Terminal"}, v.OpenStack)
	require.Len(t, v.Windows, 2)
	assert.Equal(t, ApplicationID("Terminal"), v.Windows[1].ID)
	assert.Equal(t, Viewport{Width: 1200, Height: 800}, v.Viewport)
}

func TestApplyEvents(t *testing.T) {
	d := newTestDesktop(Options{})

	change, w := d.Apply(Event{Type: EventOpen, App: "Projects"})
	assert.Equal(t, ChangeStack, change)
	assert.Nil(t, w)

	change, _ = d.Apply(Event{Type: EventTitleDown, App: "Projects", Pointer: Point{X: 300, Y: 95}})
	assert.Equal(t, ChangeStack, change)

	change, _ = d.Apply(Event{Type: EventTitleDown, App: "Projects", Pointer: Point{X: 300, Y: 95}})
	assert.Equal(t, ChangeNone, change)

	d.OpenApplication("Terminal")
	d.FocusApplication("Projects")
	change, _ = d.Apply(Event{Type: EventWindowDown, App: "Terminal"})
	assert.Equal(t, ChangeNone, change)
	assert.Equal(t, ApplicationID("Projects"), d.Focused())
	assert.Equal(t, []ApplicationID{"Terminal", "Projects"}, d.OpenStack())

	change, w = d.Apply(Event{Type: EventPointerMove, Pointer: Point{X: 320, Y: 105}})
	assert.Equal(t, ChangeGeometry, change)
	require.NotNil(t, w)
	assert.Equal(t, Point{X: 140, Y: 90}, w.Geometry.Position)

	change, w = d.Apply(Event{Type: EventPointerUp})
	assert.Equal(t, ChangeGeometry, change)
	require.NotNil(t, w)
	assert.Equal(t, ApplicationID("Projects"), w.ID)

	change, _ = d.Apply(Event{Type: EventPointerUp})
	assert.Equal(t, ChangeNone, change)

	change, _ = d.Apply(Event{Type: EventViewport, Viewport: Viewport{Width: 800, Height: 600}})
	assert.Equal(t, ChangeStack, change)
	assert.Equal(t, Viewport{Width: 800, Height: 600}, d.Bounds().Viewport)

	change, _ = d.Apply(Event{Type: "wiggle"})
	assert.Equal(t, ChangeNone, change)
}
