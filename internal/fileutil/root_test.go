package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRoot(t *testing.T) {
	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "plain.txt")
	require.NoError(t, os.WriteFile(filePath, []byte("x"), 0644))

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "existing directory", path: tmpDir},
		{name: "regular file", path: filePath, wantErr: ErrNotDirectory},
		{name: "missing path", path: filepath.Join(tmpDir, "nope"), wantErr: ErrInaccessible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRoot(tt.path)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Contains(t, err.Error(), tt.path)
		})
	}
}

func TestResolveDir(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "file.txt"), []byte("x"), 0644))
	require.NoError(t, os.Symlink("sub", filepath.Join(tmpDir, "link-to-dir")))
	require.NoError(t, os.Symlink("file.txt", filepath.Join(tmpDir, "link-to-file")))
	require.NoError(t, os.Symlink("missing", filepath.Join(tmpDir, "dangling")))

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)

	type resolved struct {
		isDir bool
		ok    bool
	}
	got := make(map[string]resolved)
	for _, entry := range entries {
		isDir, ok := ResolveDir(tmpDir, entry)
		got[entry.Name()] = resolved{isDir, ok}
	}

	assert.Equal(t, resolved{true, true}, got["sub"])
	assert.Equal(t, resolved{false, true}, got["file.txt"])
	assert.Equal(t, resolved{true, true}, got["link-to-dir"])
	assert.Equal(t, resolved{false, true}, got["link-to-file"])
	assert.Equal(t, resolved{false, false}, got["dangling"])
}

func TestResolveDir_EntryRemovedAfterListing(t *testing.T) {
	tmpDir := t.TempDir()
	link := filepath.Join(tmpDir, "link")
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "target"), 0755))
	require.NoError(t, os.Symlink("target", link))

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(tmpDir, "target")))

	for _, entry := range entries {
		if entry.Name() != "link" {
			continue
		}
		_, ok := ResolveDir(tmpDir, entry)
		assert.False(t, ok)
	}
}
