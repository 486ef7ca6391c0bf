// Package logger provides structured logging for sharepay-cli.
//
// It wraps log/slog:
//
//   - logger.go: Logger interface, handler selection, level control
//   - context.go: logger and request ID propagation through context
//   - redact.go: masking of bearer credentials and token-shaped values
//
// The console format uses tint for coloured terminal output; json and
// text use the standard slog handlers. Every handler runs the same
// redaction hook, so credentials never reach a log line in clear.
package logger
