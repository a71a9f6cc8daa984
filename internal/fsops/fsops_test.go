package fsops_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/flow/internal/fsops"
)

func TestDiskWriter_EnsureDir(t *testing.T) {
	w := fsops.NewDiskWriter()

	t.Run("creates nested directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a", "b", "c")
		require.NoError(t, w.EnsureDir(path))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("idempotent on existing directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "repeat")
		require.NoError(t, w.EnsureDir(path))
		require.NoError(t, w.EnsureDir(path))
	})

	t.Run("fails when path is a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "occupied")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

		err := w.EnsureDir(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "create directory")
	})
}

func TestDiskWriter_WriteFile(t *testing.T) {
	w := fsops.NewDiskWriter()

	t.Run("writes content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "README.md")
		require.NoError(t, w.WriteFile(path, []byte("# my-app\n")))

		data, err := os.ReadFile(path) //#nosec G304 -- test-owned path
		require.NoError(t, err)
		assert.Equal(t, "# my-app\n", string(data))
	})

	t.Run("creates missing parents", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "src", "app", "main.py")
		require.NoError(t, w.WriteFile(path, []byte("print('hi')\n")))
		assert.True(t, w.Exists(path))
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, w.WriteFile(path, []byte("old")))
		require.NoError(t, w.WriteFile(path, []byte("new")))

		data, err := os.ReadFile(path) //#nosec G304 -- test-owned path
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
	})
}

func TestDiskWriter_ReadFile(t *testing.T) {
	w := fsops.NewDiskWriter()

	t.Run("round trips content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.py")
		require.NoError(t, w.WriteFile(path, []byte("DEBUG = True\n")))

		data, err := w.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "DEBUG = True\n", string(data))
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, err := w.ReadFile(filepath.Join(t.TempDir(), "absent.py"))
		require.Error(t, err)
	})
}

func TestDiskWriter_Exists(t *testing.T) {
	w := fsops.NewDiskWriter()
	tmpDir := t.TempDir()

	t.Run("true for directory", func(t *testing.T) {
		assert.True(t, w.Exists(tmpDir))
	})

	t.Run("true for file", func(t *testing.T) {
		path := filepath.Join(tmpDir, "present.txt")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
		assert.True(t, w.Exists(path))
	})

	t.Run("false for missing path", func(t *testing.T) {
		assert.False(t, w.Exists(filepath.Join(tmpDir, "absent")))
	})
}

func TestDiskWriter_RemoveAll(t *testing.T) {
	w := fsops.NewDiskWriter()

	t.Run("removes populated tree", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "project")
		require.NoError(t, w.EnsureDir(filepath.Join(root, "src")))
		require.NoError(t, w.WriteFile(filepath.Join(root, "src", "index.ts"), []byte("export {}\n")))

		require.NoError(t, w.RemoveAll(root))
		assert.False(t, w.Exists(root))
	})

	t.Run("missing path is not an error", func(t *testing.T) {
		require.NoError(t, w.RemoveAll(filepath.Join(t.TempDir(), "never-existed")))
	})
}

func TestAtomicWrite(t *testing.T) {
	t.Run("writes new file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, fsops.AtomicWrite(path, []byte(`{"a":1}`), 0o600))

		data, err := os.ReadFile(path) //#nosec G304 -- test-owned path
		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, string(data))
	})

	t.Run("replaces existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))
		require.NoError(t, fsops.AtomicWrite(path, []byte("new"), 0o600))

		data, err := os.ReadFile(path) //#nosec G304 -- test-owned path
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
	})

	t.Run("leaves no temp file behind", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.json")
		require.NoError(t, fsops.AtomicWrite(path, []byte("x"), 0o600))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "config.json", entries[0].Name())
	})
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "tilde slash", input: "~/Development", want: filepath.Join(home, "Development")},
		{name: "bare tilde", input: "~", want: home},
		{name: "nested", input: "~/a/b", want: filepath.Join(home, "a", "b")},
		{name: "absolute unchanged", input: "/opt/dev", want: "/opt/dev"},
		{name: "relative unchanged", input: "projects", want: "projects"},
		{name: "interior tilde unchanged", input: "/opt/~cache", want: "/opt/~cache"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fsops.ExpandHome(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
