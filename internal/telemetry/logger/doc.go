// Package logger provides structured logging for securetoken tooling.
//
//   - logger.go: slog handler configuration and the Logger interface
//   - context.go: Context-aware logging with batch ID and command name
//   - redact.go: Sensitive data redaction
//
// Features:
//
//   - JSON and text output formats
//   - Log level filtering
//   - Masking of values shaped like encoded tokens, whatever their key
//   - Full redaction of values under sensitive keys
package logger
