package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// ContextExtractor extracts a slog attribute from context. Extractors run on
// every log call so request-scoped values stay fresh. Return false to skip
// the attribute for that record.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// Option configures the logger factory.
type Option func(*config)

type config struct {
	writer     io.Writer
	component  string
	extractors []ContextExtractor
	sentry     SentryConfig
	level      slog.Level
	useSentry  bool
}

// WithLevel sets the minimum level emitted locally. Default: info.
func WithLevel(level slog.Level) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithWriter sets the local log destination. Default: stdout.
func WithWriter(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.writer = w
		}
	}
}

// WithComponent attaches a static "component" attribute to every record.
func WithComponent(name string) Option {
	return func(c *config) {
		c.component = name
	}
}

// WithExtractors registers context extractors. Nil extractors are dropped.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) {
		for _, ex := range extractors {
			if ex != nil {
				c.extractors = append(c.extractors, ex)
			}
		}
	}
}

// New creates a JSON-formatted logger.
func New(opts ...Option) *slog.Logger {
	c := &config{writer: os.Stdout, level: slog.LevelInfo}
	for _, opt := range opts {
		opt(c)
	}

	local := slog.NewJSONHandler(c.writer, &slog.HandlerOptions{Level: c.level})

	handler := slog.Handler(local)
	if c.useSentry {
		if h, ok := sentryHandler(c.sentry, local); ok {
			handler = newFanoutHandler(local, h)
		}
	}
	if len(c.extractors) > 0 {
		handler = &contextHandler{next: handler, extractors: c.extractors}
	}

	log := slog.New(handler)
	if c.component != "" {
		log = log.With(slog.String("component", c.component))
	}
	return log
}

// NewNope creates a no-op logger that discards all output. Use as a default
// when logging is not configured.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// contextHandler injects context-extracted attributes before delegating.
type contextHandler struct {
	next       slog.Handler
	extractors []ContextExtractor
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return h.next.Handle(ctx, rec)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{next: h.next.WithAttrs(attrs), extractors: h.extractors}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{next: h.next.WithGroup(name), extractors: h.extractors}
}
