// Package logger provides structured logging for the match scraper, built on
// zerolog.
//
// The Logger interface wraps zerolog so that packages depend on a small,
// mockable surface instead of a concrete logging library. Console output goes
// to stderr with colored levels; an optional log file receives the same
// events as JSON.
//
// A process-wide logger is configured once via Initialize and retrieved with
// GetLogger. Packages that need request- or match-scoped context derive child
// loggers with WithField/WithFields.
package logger
