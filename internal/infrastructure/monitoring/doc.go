/*
Package monitoring provides Prometheus metrics for the webdesk server.

# Overview

Each Metrics value owns a registry, so several servers (or tests) can run in
one process. The registry also carries the Go runtime and process collectors.

# Metrics

- HTTP requests (count, latency, sizes) labelled by route template
- Desktops: live, created, reaped; open windows across desktops
- Stack operations by op, drag/resize sessions by kind, pointer events by type
- Content catalog size and source load timings
- Pointer stream connections, messages, geometry frames sent or dropped
- Uptime

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	timer := monitoring.NewTimer(metrics, "catalog")
	// ... load ...
	timer.Stop("success")
*/
package monitoring
