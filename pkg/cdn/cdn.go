package cdn

import (
	"fmt"
	"strconv"
)

// BaseURL is the Discord CDN origin all image URLs are built against.
const BaseURL = "https://cdn.discordapp.com"

// FetchSize is the pixel size requested from the CDN. The CDN serves square
// powers of two; 64 is the smallest size that downscales cleanly to list icons.
const FetchSize = 64

// AvatarURL returns the CDN endpoint for a user's uploaded avatar.
func AvatarURL(userID, avatarHash string, size int) string {
	return fmt.Sprintf("%s/avatars/%s/%s.png?size=%d", BaseURL, userID, avatarHash, size)
}

// IconURL returns the CDN endpoint for a guild's uploaded icon.
func IconURL(guildID, iconHash string, size int) string {
	return fmt.Sprintf("%s/icons/%s/%s.png?size=%d", BaseURL, guildID, iconHash, size)
}

// DefaultAvatarURL returns the CDN endpoint for a stock default avatar.
// The index is normalized mod 6, matching the number of stock avatars.
func DefaultAvatarURL(index, size int) string {
	return fmt.Sprintf("%s/embed/avatars/%d.png?size=%d", BaseURL, index%6, size)
}

// DefaultAvatarIndex computes the stock avatar shard for a user without an
// uploaded avatar. Legacy discriminators (anything but the "0"/"0000"
// sentinels) shard mod 5; otherwise the snowflake's timestamp bits shard
// mod 6. Missing or non-numeric input yields index 0.
//
// Snowflakes occupy 63 bits, so the ID is parsed as uint64 to avoid
// truncation divergence from the platform's arithmetic.
func DefaultAvatarIndex(userID, discriminator string) int {
	if discriminator != "" && discriminator != "0" && discriminator != "0000" {
		n, err := strconv.ParseUint(discriminator, 10, 64)
		if err != nil {
			return 0
		}
		return int(n % 5)
	}
	if userID != "" {
		n, err := strconv.ParseUint(userID, 10, 64)
		if err != nil {
			return 0
		}
		return int((n >> 22) % 6)
	}
	return 0
}

// ResolveDM maps a DM participant to a cache key and fetch URL. A user with
// an uploaded avatar keys on the content hash; everyone else shares the
// default-avatar shard for their index, keyed per user so recoloring one
// entry never affects another.
func ResolveDM(userID, avatarHash, discriminator string) (key, url string) {
	if userID != "" && avatarHash != "" {
		return "dm:" + userID + ":" + avatarHash, AvatarURL(userID, avatarHash, FetchSize)
	}
	idx := DefaultAvatarIndex(userID, discriminator)
	id := userID
	if id == "" {
		id = "unknown"
	}
	return fmt.Sprintf("dm-default:%s:%d", id, idx), DefaultAvatarURL(idx, FetchSize)
}

// ResolveGuild maps a guild to a cache key and fetch URL. Guilds without an
// uploaded icon have nothing fetchable; ok is false and the caller should
// fall back to its own placeholder.
func ResolveGuild(guildID, iconHash string) (key, url string, ok bool) {
	if guildID == "" || iconHash == "" {
		return "", "", false
	}
	return "guild:" + guildID + ":" + iconHash, IconURL(guildID, iconHash, FetchSize), true
}
