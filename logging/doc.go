// Package logging provides structured logging using uber/zap.
//
// Two modes are supported:
//   - Production: JSON output for machine parsing
//   - Development: colored console output for human readability
//
// Components of this module take a *zap.Logger and default to a no-op
// logger, so logging is opt-in:
//
//	logger := logging.NewDefault()
//	s := scanner.New(cat, cat, scanner.WithLogger(logger.Logger))
package logging
