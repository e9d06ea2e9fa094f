// Package http provides the JSON API of the desktop service.
//
// Endpoints:
//   - Status: / and /health
//   - Catalog: /applications, /applications/:app/content
//   - Desktops: /desktops, /desktops/:id, /desktops/:id/viewport
//   - Stack: /desktops/:id/apps/:app/open, /desktops/:id/apps/:app/focus,
//     DELETE /desktops/:id/apps/:app
//   - Pointer: /desktops/:id/pointer
//
// Unknown desktops and applications answer 404, malformed ids and bodies
// 400. Stack operations on a live desktop always succeed.
//
// Example Usage:
//
//	handlers := http.NewHandlers(sessions, registry, metrics, logger)
//	http.Register(router, handlers, stream.HandleConnection)
package http
