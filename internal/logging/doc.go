// Package logging wires log/slog with the console and JSON handlers used by
// the readstudy server and CLI. Construct loggers through New or
// NewFromConfig so every component shares the same output format, level
// handling, and attribute conventions.
package logging
