// Package cooldown tracks keys that recently failed so callers can suppress
// retry storms.
//
// A Tracker maps each failed key to a deadline. Until the deadline passes the
// key is "cooling down" and should not be retried; afterwards the entry is
// treated as absent and removed lazily on the next check. The tracker holds
// no goroutines and is intentionally not safe for concurrent use: it is
// designed to be owned by a single writer (the icon cache run loop).
package cooldown

import "time"

// Option configures a Tracker.
type Option func(*Tracker)

// WithNow overrides the tracker's time source. Intended for deterministic
// expiry in tests.
func WithNow(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// Tracker records failure deadlines per key.
type Tracker struct {
	deadlines map[string]time.Time
	now       func() time.Time
	ttl       time.Duration
}

// New creates a tracker whose entries cool down for ttl after each failure.
func New(ttl time.Duration, opts ...Option) *Tracker {
	t := &Tracker{
		deadlines: make(map[string]time.Time),
		now:       time.Now,
		ttl:       ttl,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Fail marks key as failed, starting (or restarting) its cooldown window.
func (t *Tracker) Fail(key string) {
	t.deadlines[key] = t.now().Add(t.ttl)
}

// Active reports whether key is still cooling down. Expired entries are
// removed on observation.
func (t *Tracker) Active(key string) bool {
	deadline, ok := t.deadlines[key]
	if !ok {
		return false
	}
	if t.now().Before(deadline) {
		return true
	}
	delete(t.deadlines, key)
	return false
}

// Clear removes key's cooldown, typically after a subsequent success.
func (t *Tracker) Clear(key string) {
	delete(t.deadlines, key)
}

// Len reports the number of tracked keys, including entries that have
// expired but have not yet been observed by Active.
func (t *Tracker) Len() int {
	return len(t.deadlines)
}
