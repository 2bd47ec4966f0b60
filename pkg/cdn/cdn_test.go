package cdn_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/archivecord/icons/pkg/cdn"
)

func TestDefaultAvatarIndex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		userID        string
		discriminator string
		want          int
	}{
		{name: "legacy discriminator mod 5", userID: "123", discriminator: "1234", want: 4},
		{name: "sentinel zero falls through to snowflake", userID: "123456789012345678", discriminator: "0", want: 0},
		{name: "sentinel 0000 falls through to snowflake", userID: "80351110224678912", discriminator: "0000", want: 5},
		{name: "missing discriminator uses snowflake", userID: "80351110224678912", discriminator: "", want: 5},
		{name: "non-numeric discriminator defaults to 0", userID: "", discriminator: "abcd", want: 0},
		{name: "non-numeric user id defaults to 0", userID: "not-a-snowflake", discriminator: "0", want: 0},
		{name: "nothing known defaults to 0", userID: "", discriminator: "", want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.want, cdn.DefaultAvatarIndex(tt.userID, tt.discriminator))
		})
	}
}

func TestResolveDM(t *testing.T) {
	t.Parallel()

	t.Run("uploaded avatar keys on content hash", func(t *testing.T) {
		t.Parallel()

		key, url := cdn.ResolveDM("80351110224678912", "a1b2c3", "1234")
		require.Equal(t, "dm:80351110224678912:a1b2c3", key)
		require.Equal(t, "https://cdn.discordapp.com/avatars/80351110224678912/a1b2c3.png?size=64", url)
	})

	t.Run("different hashes produce different keys", func(t *testing.T) {
		t.Parallel()

		k1, _ := cdn.ResolveDM("80351110224678912", "aaaa", "")
		k2, _ := cdn.ResolveDM("80351110224678912", "bbbb", "")
		require.NotEqual(t, k1, k2)
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		t.Parallel()

		k1, u1 := cdn.ResolveDM("123", "deadbeef", "0")
		k2, u2 := cdn.ResolveDM("123", "deadbeef", "0")
		require.Equal(t, k1, k2)
		require.Equal(t, u1, u2)
	})

	t.Run("no avatar falls back to default shard", func(t *testing.T) {
		t.Parallel()

		key, url := cdn.ResolveDM("80351110224678912", "", "0")
		require.Equal(t, "dm-default:80351110224678912:5", key)
		require.Equal(t, "https://cdn.discordapp.com/embed/avatars/5.png?size=64", url)
	})

	t.Run("unknown user keys on the unknown marker", func(t *testing.T) {
		t.Parallel()

		key, url := cdn.ResolveDM("", "", "")
		require.Equal(t, "dm-default:unknown:0", key)
		require.Equal(t, "https://cdn.discordapp.com/embed/avatars/0.png?size=64", url)
	})
}

func TestResolveGuild(t *testing.T) {
	t.Parallel()

	t.Run("key and url for icon hash", func(t *testing.T) {
		t.Parallel()

		key, url, ok := cdn.ResolveGuild("41771983423143937", "86e39f7ae3307e811784e2ffd11a7310")
		require.True(t, ok)
		require.Equal(t, "guild:41771983423143937:86e39f7ae3307e811784e2ffd11a7310", key)
		require.Equal(t, "https://cdn.discordapp.com/icons/41771983423143937/86e39f7ae3307e811784e2ffd11a7310.png?size=64", url)
	})

	t.Run("missing icon hash produces nothing", func(t *testing.T) {
		t.Parallel()

		_, _, ok := cdn.ResolveGuild("41771983423143937", "")
		require.False(t, ok)
	})

	t.Run("missing guild id produces nothing", func(t *testing.T) {
		t.Parallel()

		_, _, ok := cdn.ResolveGuild("", "86e39f7ae3307e811784e2ffd11a7310")
		require.False(t, ok)
	})
}
