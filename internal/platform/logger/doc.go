// Package logger configures the process-wide slog logger and carries
// request-scoped loggers through context.Context.
//
// Output is JSON on stdout. When a CI environment is detected the handler
// also stamps each record with CI metadata.
package logger
