// Package logger builds the log/slog logger used by the gemdict binaries.
package logger
