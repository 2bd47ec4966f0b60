package icons

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/archivecord/icons/pkg/logger"
)

// Defaults mirror the desktop client this subsystem was built for: icons are
// rendered at 18px in the conversation tree, fetched from the CDN at 64px.
const (
	DefaultIconSize        = 18
	DefaultMaxEntries      = 256
	DefaultWorkers         = 4
	DefaultDownloadTimeout = 8 * time.Second
	DefaultRetryCooldown   = 5 * time.Minute
	DefaultUserAgent       = "ArchiveCord/1.0 (+https://discord.com)"
)

// Option configures a Cache.
type Option func(*cacheOptions)

type cacheOptions struct {
	log             *slog.Logger
	metrics         Metrics
	now             func() time.Time
	decode          DecodeFunc
	httpClient      *http.Client
	cacheDir        string
	userAgent       string
	downloadTimeout time.Duration
	retryCooldown   time.Duration
	iconSize        int
	maxEntries      int
	workers         int
}

func defaultCacheOptions() *cacheOptions {
	return &cacheOptions{
		log:             logger.NewNope(),
		metrics:         NoopMetrics{},
		now:             time.Now,
		decode:          DecodeIcon,
		userAgent:       DefaultUserAgent,
		downloadTimeout: DefaultDownloadTimeout,
		retryCooldown:   DefaultRetryCooldown,
		iconSize:        DefaultIconSize,
		maxEntries:      DefaultMaxEntries,
		workers:         DefaultWorkers,
	}
}

// WithCacheDir sets the root directory for the disk store. Icons are written
// under <dir>/icons. Default: DefaultCacheDir().
func WithCacheDir(dir string) Option {
	return func(o *cacheOptions) {
		o.cacheDir = dir
	}
}

// WithMaxEntries bounds the in-memory cache. Default: 256.
func WithMaxEntries(n int) Option {
	return func(o *cacheOptions) {
		if n > 0 {
			o.maxEntries = n
		}
	}
}

// WithWorkers sets the number of concurrent downloads. Default: 4.
func WithWorkers(n int) Option {
	return func(o *cacheOptions) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithDownloadTimeout bounds each download. Default: 8s.
func WithDownloadTimeout(d time.Duration) Option {
	return func(o *cacheOptions) {
		if d > 0 {
			o.downloadTimeout = d
		}
	}
}

// WithRetryCooldown sets how long a failed key is suppressed before the next
// request may fetch it again. Default: 5 minutes.
func WithRetryCooldown(d time.Duration) Option {
	return func(o *cacheOptions) {
		if d > 0 {
			o.retryCooldown = d
		}
	}
}

// WithIconSize sets the square pixel size icons are normalized to. Default: 18.
func WithIconSize(n int) Option {
	return func(o *cacheOptions) {
		if n > 0 {
			o.iconSize = n
		}
	}
}

// WithUserAgent sets the identifying header sent to the CDN.
func WithUserAgent(ua string) Option {
	return func(o *cacheOptions) {
		if ua != "" {
			o.userAgent = ua
		}
	}
}

// WithHTTPClient sets the HTTP client used by download workers.
func WithHTTPClient(c *http.Client) Option {
	return func(o *cacheOptions) {
		if c != nil {
			o.httpClient = c
		}
	}
}

// WithLogger sets the structured logger. Default: a no-op logger.
func WithLogger(log *slog.Logger) Option {
	return func(o *cacheOptions) {
		if log != nil {
			o.log = log
		}
	}
}

// WithMetrics sets the observability sink. Default: NoopMetrics.
func WithMetrics(m Metrics) Option {
	return func(o *cacheOptions) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithClock overrides the time source used for failure cooldowns. Intended
// for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(o *cacheOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithDecoder replaces the image decoder. Default: DecodeIcon.
func WithDecoder(decode DecodeFunc) Option {
	return func(o *cacheOptions) {
		if decode != nil {
			o.decode = decode
		}
	}
}
