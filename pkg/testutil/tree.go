package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dodot-firefox/pkg/types"
	"github.com/stretchr/testify/require"
)

// FileTree describes files (string content) and directories (nested
// FileTree) relative to a base path. Keys use forward slashes.
type FileTree map[string]interface{}

// CreateFileTree writes tree under basePath on fs.
func CreateFileTree(t *testing.T, fs types.FS, basePath string, tree FileTree) {
	t.Helper()

	for name, content := range tree {
		fullPath := filepath.Join(basePath, filepath.FromSlash(name))

		switch v := content.(type) {
		case string:
			require.NoError(t, fs.MkdirAll(filepath.Dir(fullPath), 0755))
			require.NoError(t, fs.WriteFile(fullPath, []byte(v), 0644), "write %s", fullPath)
		case FileTree:
			require.NoError(t, fs.MkdirAll(fullPath, 0755), "mkdir %s", fullPath)
			CreateFileTree(t, fs, fullPath, v)
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}

// CreateProfile makes root/name a Firefox profile and returns its path.
func CreateProfile(t *testing.T, fs types.FS, root, name string) string {
	t.Helper()
	dir := filepath.Join(filepath.FromSlash(root), name)
	CreateFileTree(t, fs, dir, FileTree{"prefs.js": "// Mozilla User Preferences\n"})
	return dir
}
