// Package logger builds structured slog loggers for the icon subsystem and
// its host application.
//
// The factory produces JSON-formatted loggers with a configurable level and
// destination, optional context-based attribute injection, and optional
// Sentry error reporting with graceful fallback when no DSN is configured.
//
//	log := logger.New(
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithComponent("icons"),
//	)
//	log.Debug("icon fetch failed", slog.String("key", key), slog.String("reason", reason))
//
// Use [NewNope] where a logger is required but output is unwanted, e.g. as
// the default in library options.
//
// # Sentry
//
// Production builds can mirror warnings and errors to Sentry:
//
//	log := logger.New(logger.WithSentry(logger.SentryConfig{
//	    DSN:         os.Getenv("SENTRY_DSN"),
//	    Environment: "production",
//	    MinLevel:    slog.LevelWarn,
//	}))
//
// An empty DSN or a failed Sentry init degrades to local-only logging, so
// the same code path is safe in development.
package logger
