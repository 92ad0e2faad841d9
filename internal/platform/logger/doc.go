// Package logger provides structured logging for the application.
//
// It builds on log/slog. Production output is JSON; development output can
// be switched to colourised text through tint. Request-scoped loggers are
// carried in the context so services and stores log with the request's
// trace id.
package logger
