// Package fetch downloads small payloads over HTTP with a fixed-size worker
// pool.
//
// Jobs are submitted without blocking and executed by W workers, so at most
// W downloads are in flight at once; excess jobs queue. Each completed job,
// success or failure, is delivered on a single results channel that the
// owner of the pool drains. The pool does no per-key bookkeeping: callers
// that need at-most-one-in-flight-per-key track that themselves before
// submitting.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// ErrEmptyBody is the failure reason for a 2xx response with no payload.
var ErrEmptyBody = errors.New("fetch: empty response body")

// StatusError is the failure reason for a non-2xx response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch: HTTP %d", e.Code)
}

// Job is one download request.
type Job struct {
	Key string
	URL string
}

// Result is the outcome of a job. Exactly one of Data or Err is set.
type Result struct {
	Err  error
	Key  string
	Data []byte
}

// Pool runs downloads on a fixed number of worker goroutines.
type Pool struct {
	client    *http.Client
	jobs      chan Job
	results   chan Result
	closeOnce sync.Once
	wg        sync.WaitGroup
	opts      *options
}

// NewPool starts a pool with the configured number of workers.
func NewPool(opts ...Option) *Pool {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	p := &Pool{
		client:  o.client,
		jobs:    make(chan Job, o.queueSize),
		results: make(chan Result, o.queueSize),
		opts:    o,
	}

	for i := 0; i < o.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

// Results returns the channel completed jobs are delivered on. The channel
// is closed after Close once all in-flight jobs have finished.
func (p *Pool) Results() <-chan Result {
	return p.results
}

// Submit enqueues a job without blocking. It returns false when the queue is
// full; the caller decides whether to drop or retry later.
func (p *Pool) Submit(job Job) bool {
	select {
	case p.jobs <- job:
		return true
	default:
		return false
	}
}

// Close stops accepting jobs, waits for in-flight downloads to finish, and
// closes the results channel. Idempotent.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.jobs)
		p.wg.Wait()
		close(p.results)
	})
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for job := range p.jobs {
		data, err := p.download(job.URL)
		p.results <- Result{Key: job.Key, Data: data, Err: err}
	}
}

// download performs one GET and classifies the outcome: transport errors and
// timeouts come back wrapped, non-2xx as *StatusError, and an empty 2xx body
// as ErrEmptyBody.
func (p *Pool) download(url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), p.opts.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: build request: %w", err)
	}
	req.Header.Set("User-Agent", p.opts.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, p.opts.maxBody))
	if err != nil {
		return nil, fmt.Errorf("fetch: read body: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyBody
	}
	return data, nil
}

// Option configures a Pool.
type Option func(*options)

type options struct {
	client    *http.Client
	userAgent string
	timeout   time.Duration
	maxBody   int64
	workers   int
	queueSize int
}

func defaultOptions() *options {
	return &options{
		client:    &http.Client{},
		userAgent: "ArchiveCord/1.0 (+https://discord.com)",
		timeout:   8 * time.Second,
		maxBody:   4 << 20,
		workers:   4,
		queueSize: 256,
	}
}

// WithWorkers sets the number of concurrent downloads. Default: 4.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithTimeout bounds each download's lifetime. Default: 8s.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithUserAgent sets the identifying User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		if ua != "" {
			o.userAgent = ua
		}
	}
}

// WithHTTPClient sets the underlying HTTP client, e.g. one with a custom
// transport for tests or proxying.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.client = c
		}
	}
}

// WithQueueSize sets the job and result buffer lengths. Default: 256.
func WithQueueSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.queueSize = n
		}
	}
}
