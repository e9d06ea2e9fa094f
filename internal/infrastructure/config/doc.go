// Package config provides 12-factor configuration for the webdesk server.
//
// Configuration is loaded from environment variables with sensible defaults.
//
// Configuration Sections:
//   - Server: HTTP listen address
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting
//   - Desktop: Window chrome, size floor, cascade placement, session limits
//   - Content: Catalog file, content directory, remote catalog
//   - Stream: Pointer stream read limit, geometry frame rate, keepalive
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	bounds := cfg.Desktop.Bounds(window.Viewport{Width: 1280, Height: 800})
//
// Environment Variables:
//   - PORT, HOST, LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - DESKTOP_*, CONTENT_*, STREAM_*
package config
