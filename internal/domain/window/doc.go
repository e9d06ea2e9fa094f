/*
Package window implements the window manager behind the browser desktop.

It tracks which applications are open, their front-to-back order and focus,
and converts pointer input into clamped window frames:
  - Stack: the ordered open set; the last entry is topmost and focused
  - Placement: cascading initial frames with per-application overrides
  - Geometry clamping: viewport containment, chrome avoidance, minimum size
  - Sessions: one drag or resize at a time, folded over pointer events

The package does no I/O and holds no locks. A Desktop must be driven from a
single goroutine at a time; the session package provides that.

Example usage:

	d := window.NewDesktop(window.Options{
		Bounds: window.DefaultBounds(window.Viewport{Width: 1200, Height: 800}),
	})
	d.OpenApplication("Terminal")
	d.OnTitleBarPointerDown("Terminal", window.Point{X: 200, Y: 90})
	d.OnPointerMove(window.Point{X: 260, Y: 140})
	d.OnPointerUp()
*/
package window
