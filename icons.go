package icons

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/archivecord/icons/pkg/cache"
	"github.com/archivecord/icons/pkg/cooldown"
	"github.com/archivecord/icons/pkg/diskstore"
	"github.com/archivecord/icons/pkg/fetch"
)

// Cache resolves icon cache keys to decoded images through a memory tier, a
// disk tier, and a bounded download pool.
//
// All methods are safe for concurrent use. Internally a single run-loop
// goroutine owns every mutable store; see the package documentation.
type Cache struct {
	memory   *cache.Memory[image.Image]
	disk     *diskstore.Store
	failures *cooldown.Tracker
	pool     *fetch.Pool
	opts     *cacheOptions

	// Owned by the run loop.
	inFlight map[string]struct{}
	subs     map[uuid.UUID]chan Event

	calls     chan func()
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// New creates a cache and starts its run loop and download workers.
func New(opts ...Option) (*Cache, error) {
	o := defaultCacheOptions()
	for _, opt := range opts {
		opt(o)
	}

	dir := o.cacheDir
	if dir == "" {
		var err error
		if dir, err = DefaultCacheDir(); err != nil {
			return nil, err
		}
	}

	disk, err := diskstore.New(filepath.Join(dir, "icons"))
	if err != nil {
		return nil, err
	}

	poolOpts := []fetch.Option{
		fetch.WithWorkers(o.workers),
		fetch.WithTimeout(o.downloadTimeout),
		fetch.WithUserAgent(o.userAgent),
	}
	if o.httpClient != nil {
		poolOpts = append(poolOpts, fetch.WithHTTPClient(o.httpClient))
	}

	c := &Cache{
		memory:   cache.NewMemory[image.Image](cache.WithMaxEntries(o.maxEntries)),
		disk:     disk,
		failures: cooldown.New(o.retryCooldown, cooldown.WithNow(o.now)),
		pool:     fetch.NewPool(poolOpts...),
		opts:     o,
		inFlight: make(map[string]struct{}),
		subs:     make(map[uuid.UUID]chan Event),
		calls:    make(chan func()),
		done:     make(chan struct{}),
	}
	c.memory.SetEvictCallback(func(string, image.Image) { o.metrics.Evict() })

	c.wg.Add(1)
	go c.run()

	return c, nil
}

// GetIcon returns the cached image for key, or nil. It never performs I/O
// and never schedules work; use it for instantaneous, possibly-stale display.
func (c *Cache) GetIcon(key string) image.Image {
	reply := make(chan image.Image, 1)
	if !c.do(func() { reply <- c.lookup(key) }) {
		return nil
	}
	select {
	case icon := <-reply:
		return icon
	case <-c.done:
		return nil
	}
}

// RequestIcon asks the cache to ensure key is resolved, fetching from url if
// neither the memory nor the disk tier has it. It is idempotent and returns
// immediately: duplicate requests while a fetch is in flight, and requests
// for keys in their failure cooldown, are no-ops. An empty url limits
// resolution to the local tiers.
func (c *Cache) RequestIcon(key, url string) {
	if key == "" {
		return
	}
	c.do(func() { c.request(key, url) })
}

// Close stops the run loop and download workers, waits for in-flight
// downloads to finish, and closes all subscription channels. Idempotent.
func (c *Cache) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
		c.pool.Close()
		c.wg.Wait()
		c.memory.Close()
	})
	return nil
}

// do hands fn to the run loop, returning false if the cache is shut down.
func (c *Cache) do(fn func()) bool {
	select {
	case c.calls <- fn:
		return true
	case <-c.done:
		return false
	}
}

// run is the single writer for the memory cache, the failure tracker, the
// in-flight set, and the subscriber table.
func (c *Cache) run() {
	defer c.wg.Done()
	results := c.pool.Results()
	for {
		select {
		case fn := <-c.calls:
			fn()
		case res, ok := <-results:
			if !ok {
				// Close() shut the pool down; the done branch owns the rest.
				results = nil
				continue
			}
			c.handleResult(res)
		case <-c.done:
			// Late results are still cache-worthy: the pool runs its
			// queue down before closing the results channel.
			for res := range c.pool.Results() {
				c.handleResult(res)
			}
			for id, ch := range c.subs {
				delete(c.subs, id)
				close(ch)
			}
			return
		}
	}
}

// lookup implements GetIcon on the run loop.
func (c *Cache) lookup(key string) image.Image {
	icon, err := c.memory.Get(context.Background(), key)
	if err != nil {
		c.opts.metrics.Miss()
		return nil
	}
	c.opts.metrics.Hit()
	return icon
}

// request implements RequestIcon on the run loop, walking the per-key state
// machine: resolved → no-op; resolving → no-op; cooling down → no-op; disk
// hit → resolve locally; otherwise schedule a download.
func (c *Cache) request(key, url string) {
	if ok, _ := c.memory.Has(context.Background(), key); ok {
		return
	}
	if _, ok := c.inFlight[key]; ok {
		return
	}
	if c.failures.Active(key) {
		return
	}

	if data, err := c.disk.Read(key); err == nil {
		if icon, err := c.opts.decode(data, c.opts.iconSize); err == nil {
			c.resolve(key, icon)
			c.opts.metrics.DiskHit()
			return
		}
		// Corrupt disk payload: fall through and refetch.
		c.opts.log.Debug("discarding undecodable disk entry", slog.String("key", key))
	}

	if url == "" {
		return
	}

	c.inFlight[key] = struct{}{}
	if !c.pool.Submit(fetch.Job{Key: key, URL: url}) {
		delete(c.inFlight, key)
		c.opts.metrics.FetchFailed("queue_full")
		c.opts.log.Debug("download queue full", slog.String("key", key))
		return
	}
	c.opts.metrics.FetchScheduled()
}

// handleResult processes one completed download on the run loop. Removing
// the key from the in-flight set and applying the outcome happen in the same
// turn, so a RequestIcon arriving afterwards can always schedule anew.
func (c *Cache) handleResult(res fetch.Result) {
	delete(c.inFlight, res.Key)

	if res.Err != nil {
		c.fail(res.Key, res.Err, failureClass(res.Err))
		return
	}

	icon, err := c.opts.decode(res.Data, c.opts.iconSize)
	if err != nil {
		c.fail(res.Key, err, "invalid_image")
		return
	}

	c.resolve(res.Key, icon)
	c.opts.metrics.FetchSucceeded()

	// Disk persistence is an optimization; a failed write degrades the key
	// to memory-only caching.
	if err := c.disk.Write(res.Key, res.Data); err != nil {
		c.opts.log.Debug("disk write failed", slog.String("key", res.Key), slog.String("error", err.Error()))
	}
}

// resolve stores a decoded icon in memory, clears any cooldown, and notifies
// subscribers. Runs on the run loop.
func (c *Cache) resolve(key string, icon image.Image) {
	_ = c.memory.Set(context.Background(), key, icon, -1)
	c.failures.Clear(key)
	c.publish(key, icon)
}

// fail puts key on cooldown. Failures are diagnostics, not user-facing
// errors: the worst outcome is a placeholder persisting until retry.
func (c *Cache) fail(key string, err error, class string) {
	c.failures.Fail(key)
	c.opts.metrics.FetchFailed(class)
	c.opts.log.Debug("icon fetch failed",
		slog.String("key", key),
		slog.String("reason", err.Error()),
	)
}

// failureClass maps a download error to a coarse metrics label.
func failureClass(err error) string {
	var statusErr *fetch.StatusError
	switch {
	case errors.As(err, &statusErr):
		return "http_error"
	case errors.Is(err, fetch.ErrEmptyBody):
		return "empty_body"
	default:
		return "network"
	}
}
