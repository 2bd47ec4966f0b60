package cache

import "time"

// Option configures the in-memory cache.
type Option func(*options)

type options struct {
	now        func() time.Time
	defaultTTL time.Duration
	maxEntries int
}

func defaultOptions() *options {
	return &options{
		now:        time.Now,
		defaultTTL: 0, // 0 = entries without an explicit TTL never expire
		maxEntries: 0, // 0 = unlimited
	}
}

// WithMaxEntries sets the maximum number of entries. When the limit is
// reached, the least recently used entry is evicted.
// Zero means unlimited. Default: 0.
func WithMaxEntries(n int) Option {
	return func(o *options) {
		o.maxEntries = n
	}
}

// WithDefaultTTL sets the expiration applied when Set is called with a zero
// TTL. Zero (the default) means such entries never expire.
func WithDefaultTTL(d time.Duration) Option {
	return func(o *options) {
		o.defaultTTL = d
	}
}

// WithNow overrides the cache's time source. Intended for deterministic
// expiry in tests.
func WithNow(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
