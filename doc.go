// Package icons resolves small remote images (user avatars, guild icons)
// into locally displayable bitmaps for a list or tree UI, without blocking
// the caller and without re-downloading the same image repeatedly.
//
// The core is [Cache], a two-tier cache (memory + disk) fronting a
// bounded-concurrency downloader with per-key request de-duplication and
// negative caching for transient failures.
//
// # Lookup flow
//
// [Cache.GetIcon] is a pure memory read for instantaneous display.
// [Cache.RequestIcon] is an idempotent "ensure resolved" call: it checks the
// memory cache, then the disk store, and only then schedules a download.
// Keys that are already being fetched or that failed recently are skipped,
// so calling it on every UI paint is cheap and safe. Completed resolutions
// are announced on subscription channels (see [Cache.Subscribe]) carrying
// the key and the decoded, display-sized image.
//
// # Concurrency
//
// All mutable state (the memory cache, the failure cooldowns, the in-flight
// set) is owned by a single run-loop goroutine. Public methods hand messages
// to that loop, and download workers deliver results to it over a channel,
// so no store is ever mutated from two goroutines. Downloads themselves run
// on a fixed-size worker pool (see [github.com/archivecord/icons/pkg/fetch]).
//
// # Failure model
//
// Nothing in this package is fatal to the host: a failed download or decode
// puts the key on a cooldown and the UI keeps showing its placeholder; a
// disk read or write error degrades that key to memory-only caching. All
// failures are logged at debug level.
//
// Cache keys and CDN URLs for the supported icon kinds are derived by
// [github.com/archivecord/icons/pkg/cdn].
package icons
