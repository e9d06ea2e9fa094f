// Package logging provides structured logging using uber/zap.
//
// Two output modes:
//   - Production: JSON lines for log shippers
//   - Development: colored console output
//
// Components receive a *zap.Logger tagged with their name, and tag entries
// with the shared field helpers:
//
//	logger, err := logging.New(logging.DefaultConfig())
//	sessions := session.NewManager(opts, metrics, logger.Component("session"))
//	log.Info("Desktop created", logging.Desktop(deskID))
package logging
