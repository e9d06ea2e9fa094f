// Package middleware provides the HTTP middleware of the desktop API.
//
// Middleware stack includes:
//   - CORS: Cross-origin resource sharing for browser shells
//   - RateLimit: Per-IP token bucket rate limiting with idle client cleanup
//   - GlobalRateLimit: One token bucket shared by every client
//   - Gzip: Response compression for content payloads
//
// Example Usage:
//
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
//	router.GET("/applications/:app/content", middleware.Gzip(gzip.DefaultCompression), handler)
package middleware
