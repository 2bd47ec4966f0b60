package diskstore_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/archivecord/icons/pkg/diskstore"
)

func TestStore_WriteRead(t *testing.T) {
	t.Parallel()

	t.Run("round trips payload", func(t *testing.T) {
		t.Parallel()

		s, err := diskstore.New(t.TempDir())
		require.NoError(t, err)

		payload := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}
		require.NoError(t, s.Write("dm:1:abc", payload))

		got, err := s.Read("dm:1:abc")
		require.NoError(t, err)
		require.Equal(t, payload, got)
	})

	t.Run("missing key returns ErrNotFound", func(t *testing.T) {
		t.Parallel()

		s, err := diskstore.New(t.TempDir())
		require.NoError(t, err)

		_, err = s.Read("nope")
		require.ErrorIs(t, err, diskstore.ErrNotFound)
	})

	t.Run("empty file is a miss", func(t *testing.T) {
		t.Parallel()

		s, err := diskstore.New(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(s.Path("k"), nil, 0o644))

		_, err = s.Read("k")
		require.ErrorIs(t, err, diskstore.ErrNotFound)
	})

	t.Run("overwrite replaces payload", func(t *testing.T) {
		t.Parallel()

		s, err := diskstore.New(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, s.Write("k", []byte("old")))
		require.NoError(t, s.Write("k", []byte("new")))

		got, err := s.Read("k")
		require.NoError(t, err)
		require.Equal(t, []byte("new"), got)
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		s, err := diskstore.New(dir)
		require.NoError(t, err)

		require.NoError(t, s.Write("k", []byte("data")))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			require.False(t, strings.HasPrefix(e.Name(), ".write-"), "temp file %s left behind", e.Name())
		}
	})
}

func TestStore_Path(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := diskstore.New(dir)
	require.NoError(t, err)

	// sha256("dm:1:abc") is stable; the path must never change between
	// processes or the disk tier silently empties.
	p := s.Path("dm:1:abc")
	require.Equal(t, p, s.Path("dm:1:abc"))
	require.Equal(t, dir, filepath.Dir(p))
	require.True(t, strings.HasSuffix(p, ".img"))
	require.Len(t, filepath.Base(p), 64+len(".img"))

	// Keys with path separators must not escape the root.
	require.Equal(t, dir, filepath.Dir(s.Path("../../etc/passwd")))
}

func TestNew_CreatesDirectory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "icons")
	_, err := diskstore.New(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}
