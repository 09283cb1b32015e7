package utils

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFile(t *testing.T) {
	t.Run("reads existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "state.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"rupees":1}`), 0600))

		data, err := ReadFile(path)

		require.NoError(t, err)
		assert.Equal(t, `{"rupees":1}`, string(data))
	})

	t.Run("missing file keeps not-exist error", func(t *testing.T) {
		_, err := ReadFile(filepath.Join(t.TempDir(), "absent.json"))

		assert.ErrorIs(t, err, fs.ErrNotExist)
		assert.Contains(t, err.Error(), "absent.json")
	})
}

func TestWriteFileAtomic(t *testing.T) {
	t.Run("creates file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.json")

		require.NoError(t, WriteFileAtomic(path, []byte("first"), 0644))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "first", string(data))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temp file must not be left behind")
	})

	t.Run("replaces existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.json")
		require.NoError(t, os.WriteFile(path, []byte("old content that is longer"), 0644))

		require.NoError(t, WriteFileAtomic(path, []byte("new"), 0644))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
	})

	t.Run("missing directory fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nope", "out.json")

		err := WriteFileAtomic(path, []byte("x"), 0644)

		assert.Error(t, err)
		_, statErr := os.Stat(path)
		assert.ErrorIs(t, statErr, fs.ErrNotExist)
	})
}
