package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// record is a single cached value in the recency list.
type record[V any] struct {
	value     V
	key       string
	expiresAt int64 // unix nanos; 0 = never expires
}

// Memory is an in-memory LRU cache with lazy TTL expiration.
//
// Entries are kept in a map keyed by string with list elements carrying the
// recency order. Every Get and Set promotes the entry to the front; when
// capacity is exceeded the back of the list is evicted.
type Memory[V any] struct {
	items   map[string]*list.Element
	recency *list.List
	opts    *options
	onEvict func(key string, value V)
	mu      sync.Mutex
	closed  bool
}

// NewMemory creates an in-memory cache.
//
//	c := cache.NewMemory[[]byte](
//	    cache.WithMaxEntries(256),
//	    cache.WithDefaultTTL(time.Hour),
//	)
//	defer c.Close()
func NewMemory[V any](opts ...Option) *Memory[V] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Memory[V]{
		items:   make(map[string]*list.Element),
		recency: list.New(),
		opts:    o,
	}
}

// SetEvictCallback registers fn to be called whenever an entry leaves the
// cache: LRU eviction, lazy TTL expiry, deletion, or clearing. The callback
// runs under the cache lock and must stay lightweight.
func (m *Memory[V]) SetEvictCallback(fn func(key string, value V)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onEvict = fn
}

// Get retrieves a value by key and promotes it to most recently used.
// Returns ErrNotFound if the key does not exist or has expired.
func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V
	elem, ok := m.items[key]
	if !ok {
		return zero, ErrNotFound
	}

	rec := elem.Value.(*record[V])
	if m.expired(rec) {
		m.remove(elem)
		return zero, ErrNotFound
	}

	m.recency.MoveToFront(elem)
	return rec.value, nil
}

// Set stores a value, promoting it to most recently used and evicting from
// the least recently used end while over capacity.
func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if ttl == 0 {
		ttl = m.opts.defaultTTL
	}
	var expiresAt int64
	if ttl > 0 {
		expiresAt = m.opts.now().Add(ttl).UnixNano()
	}

	if elem, ok := m.items[key]; ok {
		rec := elem.Value.(*record[V])
		rec.value = value
		rec.expiresAt = expiresAt
		m.recency.MoveToFront(elem)
		return nil
	}

	elem := m.recency.PushFront(&record[V]{key: key, value: value, expiresAt: expiresAt})
	m.items[key] = elem

	for m.opts.maxEntries > 0 && len(m.items) > m.opts.maxEntries {
		if back := m.recency.Back(); back != nil {
			m.remove(back)
		}
	}

	return nil
}

// Delete removes a key from the cache.
func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if elem, ok := m.items[key]; ok {
		m.remove(elem)
	}
	return nil
}

// Has checks whether a key exists and has not expired, without promoting it.
func (m *Memory[V]) Has(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.items[key]
	if !ok {
		return false, nil
	}
	if rec := elem.Value.(*record[V]); m.expired(rec) {
		m.remove(elem)
		return false, nil
	}
	return true, nil
}

// Clear removes all entries from the cache.
func (m *Memory[V]) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if m.onEvict != nil {
		for _, elem := range m.items {
			rec := elem.Value.(*record[V])
			m.onEvict(rec.key, rec.value)
		}
	}

	m.items = make(map[string]*list.Element)
	m.recency.Init()
	return nil
}

// Len reports the number of resident entries, including entries that have
// expired but have not yet been observed.
func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Close marks the cache closed. Idempotent; reads keep working so callers
// draining in shutdown paths never race an error.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *Memory[V]) expired(rec *record[V]) bool {
	return rec.expiresAt != 0 && m.opts.now().UnixNano() > rec.expiresAt
}

// remove unlinks an element and fires the eviction callback.
// Caller must hold the mutex.
func (m *Memory[V]) remove(elem *list.Element) {
	m.recency.Remove(elem)
	rec := elem.Value.(*record[V])
	delete(m.items, rec.key)

	if m.onEvict != nil {
		m.onEvict(rec.key, rec.value)
	}
}

var _ Cache[any] = (*Memory[any])(nil)
