// Package prom exports icon cache metrics to Prometheus.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/archivecord/icons"
)

// Adapter implements icons.Metrics on top of Prometheus counters. All
// Prometheus metric types are goroutine-safe, so the adapter is too.
type Adapter struct {
	hits      prometheus.Counter
	misses    prometheus.Counter
	diskHits  prometheus.Counter
	scheduled prometheus.Counter
	succeeded prometheus.Counter
	failed    *prometheus.CounterVec
	evictions prometheus.Counter
}

// New constructs an adapter and registers its metrics.
//   - reg: registry to register with (nil => prometheus.DefaultRegisterer)
//   - ns:  Prometheus namespace, e.g. "archivecord"
func New(reg prometheus.Registerer, ns string) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	const sub = "icons"
	a := &Adapter{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub,
			Name: "memory_hits_total",
			Help: "Icon lookups served from memory",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub,
			Name: "memory_misses_total",
			Help: "Icon lookups that found nothing in memory",
		}),
		diskHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub,
			Name: "disk_hits_total",
			Help: "Icon requests satisfied from the disk store",
		}),
		scheduled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub,
			Name: "fetches_scheduled_total",
			Help: "Download jobs enqueued",
		}),
		succeeded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub,
			Name: "fetches_succeeded_total",
			Help: "Downloads that resolved an icon",
		}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub,
			Name: "fetches_failed_total",
			Help: "Downloads that failed, by reason",
		}, []string{"reason"}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub,
			Name: "evictions_total",
			Help: "Entries evicted from the memory cache",
		}),
	}
	reg.MustRegister(a.hits, a.misses, a.diskHits, a.scheduled, a.succeeded, a.failed, a.evictions)
	return a
}

func (a *Adapter) Hit()     { a.hits.Inc() }
func (a *Adapter) Miss()    { a.misses.Inc() }
func (a *Adapter) DiskHit() { a.diskHits.Inc() }

func (a *Adapter) FetchScheduled() { a.scheduled.Inc() }
func (a *Adapter) FetchSucceeded() { a.succeeded.Inc() }

// FetchFailed increments the failure counter with the coarse reason label
// the cache assigns.
func (a *Adapter) FetchFailed(reason string) { a.failed.WithLabelValues(reason).Inc() }

func (a *Adapter) Evict() { a.evictions.Inc() }

var _ icons.Metrics = (*Adapter)(nil)
