// Package logging provides structured logging on top of uber/zap.
//
// Two modes:
//   - Production: JSON lines for machine parsing
//   - Development: colored console output
//
// Domain packages never log. The shell logs applied intents at debug level
// and the server logs its lifecycle and requests at info.
//
// Example:
//
//	logger := logging.NewDefault()
//	logger.Info("server starting", zap.String("port", "8000"))
//	logger.Error("export failed", zap.Error(err))
package logging
