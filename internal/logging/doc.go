// Package logging provides structured logging for the zy static server.
//
// This package wraps a zap logger with the small set of helpers the CLI
// needs, and hands named child loggers to the serving components.
//
// # Log Levels
//
//   - Debug: per-request and per-resolution detail (enabled by --verbose)
//   - Info: startup, listen addresses, fallback routing, shutdown progress
//   - Warn: ignored environment values, slow or failed drains
//   - Error: listener failures and other fatal conditions
//
// # Configuration
//
// Initialize logging once at startup:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// An empty level reads ZY_LOG_LEVEL and falls back to "info".
//
// # Named Loggers
//
// Components take a *zap.Logger rather than calling the package helpers, so
// tests can pass zap.NewNop() or an observer core:
//
//	resolver := resolve.NewResolver(cfg, logging.Named("serve"))
//
// # Output Format
//
// Logs are written to stdout in console format:
//
//	2026-10-17T10:30:45.123+0200  INFO  zy  Listening on http://127.0.0.1:3000
package logging
