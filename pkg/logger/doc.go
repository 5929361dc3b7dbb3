// Package logger builds configured log/slog loggers plus a few typed
// attribute helpers used across the toolkit.
package logger
