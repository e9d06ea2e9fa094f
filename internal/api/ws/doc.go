// Package ws streams a desktop over a WebSocket.
//
// A shell connects to /desktops/:id/stream, receives a snapshot of the
// desktop and then sends its input as JSON text frames. Each frame is
// applied to the desktop in order.
//
// Message Types (Client → Server):
//   - open, close, focus: stack operations on "app"
//   - title_down, resize_down, window_down: pointer presses on "app" at x, y
//   - move, up: pointer motion and release at x, y
//   - viewport: new width and height
//   - ping: keep-alive
//
// Message Types (Server → Client):
//   - snapshot: full view after stack, focus, session or viewport changes
//   - geometry: one window during a drag or resize, rate limited per
//     connection; the final geometry is always sent on up
//   - pong: reply to ping
//   - error: rejected frame
//
// Example Usage:
//
//	handler := ws.NewHandler(sessions, ws.DefaultConfig(), metrics, logger)
//	router.GET("/desktops/:id/stream", handler.HandleConnection)
package ws
