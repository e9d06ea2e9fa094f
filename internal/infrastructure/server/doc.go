// Package server assembles the desktop service.
//
// This package orchestrates all components:
//   - Content catalog loading (builtin, catalog file, directory, remote)
//   - Desktop session manager and its idle janitor
//   - HTTP routing with Gin framework
//   - Middleware stack (recovery, tracing, metrics, CORS, rate limiting)
//   - WebSocket pointer stream
//
// Server Lifecycle:
//  1. Load configuration from environment/flags
//  2. Initialize logger (production or development)
//  3. Load the content catalog
//  4. Setup HTTP routes and middleware
//  5. Start HTTP server
//  6. Graceful shutdown on signal
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	logger, _ := logging.New(logging.DefaultConfig())
//	srv, err := server.New(ctx, cfg, logger)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
