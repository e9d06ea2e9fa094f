// Package main is the entry point of the webdesk server.
//
// webdesk keeps the window manager state of browser desktop shells: which
// applications are open, their stacking order and focus, and where each
// window sits while it is dragged or resized.
//
// The server provides:
//   - REST API for desktops, applications and pointer input
//   - WebSocket streaming of pointer input and window geometry
//   - Application content from builtin, file, directory and remote catalogs
//   - Prometheus metrics and request tracing
//   - Rate limiting
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	./server -port 8000 -catalog apps.yaml
//
//	# Development mode (console logs, debug level)
//	./server -dev -content-dir ./content
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
