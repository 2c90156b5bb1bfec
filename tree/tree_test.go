package tree

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/dendrascience/filetree/util"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// randomBytes returns n reproducible pseudo-random bytes.
func randomBytes(seed int64, n int) []byte {
	b := make([]byte, n)
	rand.New(rand.NewSource(seed)).Read(b)
	return b
}

// mkTree creates every given slash-separated directory path under root.
func mkTree(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		require.NoError(t, os.MkdirAll(filepath.Join(root, filepath.FromSlash(p)), 0o755))
	}
}

func listNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func encodeBytes(t *testing.T, data []byte, cfg Config) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "tree")
	require.NoError(t, Encode(root, bytes.NewReader(data), cfg, WithLogger(zaptest.NewLogger(t))))
	return root
}

func decodeBytes(t *testing.T, root string, order util.ByteOrder, opts ...Option) []byte {
	t.Helper()
	var buf bytes.Buffer
	opts = append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)
	n, err := Decode(root, &buf, order, opts...)
	require.NoError(t, err)
	require.EqualValues(t, buf.Len(), n)
	return buf.Bytes()
}
