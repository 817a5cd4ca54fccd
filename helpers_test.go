package pxscale

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeFiles creates files below root, keyed by slash-separated relative path.
func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// testConfig returns the defaults rooted at a fresh temporary directory.
func testConfig(t *testing.T) Config {
	t.Helper()
	config := DefaultConfig()
	config.Root = t.TempDir()
	return config
}

// relFiles maps resolved paths back to root-relative slash paths.
func relFiles(config Config, files []string) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = config.rel(f)
	}
	return out
}
