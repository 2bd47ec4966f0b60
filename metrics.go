package icons

// Metrics exposes cache observability hooks. A NoopMetrics implementation is
// provided and used by default; a Prometheus adapter lives in pkg/prom.
//
// All methods are called from the cache's run loop and must not block.
type Metrics interface {
	// Hit is recorded when GetIcon finds the key in memory.
	Hit()
	// Miss is recorded when GetIcon finds nothing.
	Miss()
	// DiskHit is recorded when a request is satisfied from the disk store.
	DiskHit()
	// FetchScheduled is recorded when a download job is enqueued.
	FetchScheduled()
	// FetchSucceeded is recorded when a download resolves an icon.
	FetchSucceeded()
	// FetchFailed is recorded with a coarse reason label:
	// "http_error", "empty_body", "network", "invalid_image" or "queue_full".
	FetchFailed(reason string)
	// Evict is recorded when the memory cache drops an entry.
	Evict()
}

// NoopMetrics is a drop-in Metrics implementation that does nothing.
type NoopMetrics struct{}

func (NoopMetrics) Hit()               {}
func (NoopMetrics) Miss()              {}
func (NoopMetrics) DiskHit()           {}
func (NoopMetrics) FetchScheduled()    {}
func (NoopMetrics) FetchSucceeded()    {}
func (NoopMetrics) FetchFailed(string) {}
func (NoopMetrics) Evict()             {}

var _ Metrics = NoopMetrics{}
