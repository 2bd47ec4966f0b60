package logger

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration settings.
type SentryConfig struct {
	DSN         string
	Environment string
	// MinLevel determines which levels are mirrored to Sentry as logs;
	// errors always create Issues.
	MinLevel slog.Level
}

// WithSentry mirrors warnings and errors to Sentry in addition to the local
// destination. An empty DSN disables the integration.
func WithSentry(cfg SentryConfig) Option {
	return func(c *config) {
		c.sentry = cfg
		c.useSentry = true
	}
}

// sentryHandler initializes the Sentry SDK and returns a handler routing
// records to it. ok is false when the DSN is empty or init fails, in which
// case the caller falls back to local-only logging.
func sentryHandler(cfg SentryConfig, fallback slog.Handler) (h slog.Handler, ok bool) {
	if cfg.DSN == "" {
		return nil, false
	}

	env := cfg.Environment
	if env == "" {
		env = "production"
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: env,
		EnableLogs:  true,
	}); err != nil {
		slog.New(fallback).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return nil, false
	}

	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.MinLevel == slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}

	return sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background()), true
}
