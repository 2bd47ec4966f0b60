// Package cdn derives stable cache keys and fetch URLs for Discord CDN images.
//
// The package is pure: every function maps entity fields (snowflake IDs,
// avatar/icon hashes, legacy discriminators) to a deterministic cache key and
// URL. Keys encode the icon kind and the content-derived hash, so two
// different avatar hashes for the same user always produce different keys.
//
// # Key grammar
//
//	dm:<user-id>:<avatar-hash>          uploaded DM avatar
//	dm-default:<user-id|unknown>:<idx>  default avatar shard
//	guild:<guild-id>:<icon-hash>        guild icon
//
// # Default avatar sharding
//
// Users without an uploaded avatar are assigned one of the stock avatars.
// The shard index follows the platform's scheme: legacy discriminators are
// taken mod 5; for the newer username system the index is derived from the
// snowflake's timestamp bits, (id >> 22) mod 6. Unparseable input falls back
// to index 0 rather than failing.
package cdn
