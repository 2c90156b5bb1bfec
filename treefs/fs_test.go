package treefs

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"bazil.org/fuse"
	"github.com/dendrascience/filetree/tree"
	"github.com/dendrascience/filetree/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTree(t *testing.T, data []byte, cfg tree.Config) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "tree")
	require.NoError(t, tree.Encode(root, bytes.NewReader(data), cfg))
	return root
}

func TestFS_ServesDecodedStream(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")
	root := newTree(t, data, tree.Config{ChunkSize: 3, Width: 4, ByteOrder: util.LittleEndian})
	ctx := context.Background()

	tfs := NewFS(root, "", util.LittleEndian, zaptest.NewLogger(t))
	node, err := tfs.Root()
	require.NoError(t, err)
	dir := node.(*Dir)

	var da fuse.Attr
	require.NoError(t, dir.Attr(ctx, &da))
	assert.Equal(t, uint64(1), da.Inode)
	assert.True(t, da.Mode.IsDir())

	dirents, err := dir.ReadDirAll(ctx)
	require.NoError(t, err)
	require.Len(t, dirents, 1)
	assert.Equal(t, DefaultFileName, dirents[0].Name)
	assert.Equal(t, fuse.DT_File, dirents[0].Type)

	_, err = dir.Lookup(ctx, "missing")
	assert.Equal(t, syscall.ENOENT, err)

	fnode, err := dir.Lookup(ctx, DefaultFileName)
	require.NoError(t, err)
	file := fnode.(*File)

	var fa fuse.Attr
	require.NoError(t, file.Attr(ctx, &fa))
	assert.Equal(t, uint64(len(data)), fa.Size)
	assert.Equal(t, dirents[0].Inode, fa.Inode)
	assert.Equal(t, os.FileMode(0o444), fa.Mode)

	got, err := file.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	name, err := util.FileNameFromInode(fa.Inode)
	require.NoError(t, err)
	assert.Equal(t, DefaultFileName, name)
}

func TestFS_DecodesOnce(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6, 7}
	root := newTree(t, data, tree.Config{ChunkSize: 2, Width: 2})
	ctx := context.Background()

	tfs := NewFS(root, "payload.bin", util.BigEndian, nil)
	f := &File{fs: tfs}

	got, err := f.ReadAll(ctx)
	require.NoError(t, err)
	require.Equal(t, data, got)

	// The cached stream outlives the tree.
	require.NoError(t, os.RemoveAll(root))
	got, err = f.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestFS_MalformedTree(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "0-0A", "0B"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "0-0A", "0C"), 0o755))
	ctx := context.Background()

	f := &File{fs: NewFS(root, "", util.BigEndian, zaptest.NewLogger(t))}
	var a fuse.Attr
	assert.Equal(t, syscall.EIO, f.Attr(ctx, &a))
	_, err := f.ReadAll(ctx)
	assert.Equal(t, syscall.EIO, err)
	assert.ErrorIs(t, f.fs.err, util.ErrMalformedTree)
}

// TestFS_ConcurrentReads verifies that parallel first reads neither deadlock
// nor decode more than once.
func TestFS_ConcurrentReads(t *testing.T) {
	data := bytes.Repeat([]byte{0xAB, 0xCD}, 500)
	root := newTree(t, data, tree.Config{ChunkSize: 4, Width: 8})
	ctx := context.Background()

	var decodes int
	tfs := NewFS(root, "", util.BigEndian, nil, tree.WithProgress(func(n int64) {
		if n == int64(len(data)) {
			decodes++
		}
	}))

	const readers = 8
	done := make(chan error, readers)
	for range readers {
		go func() {
			got, err := (&File{fs: tfs}).ReadAll(ctx)
			if err == nil && !bytes.Equal(got, data) {
				err = syscall.EIO
			}
			done <- err
		}()
	}
	for range readers {
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("ReadAll deadlocked - test timed out")
		}
	}
	assert.Equal(t, 1, decodes)
}

func TestDir_ResolvesNameThroughInodeRegistry(t *testing.T) {
	ctx := context.Background()
	tfs := NewFS(t.TempDir(), "stream.bin", util.BigEndian, nil)
	dir := &Dir{fs: tfs}

	_, err := dir.Lookup(ctx, "stream.bin")
	require.NoError(t, err)

	// An inode that was never registered serves no name.
	unregistered := &Dir{fs: &FS{FileName: "stream.bin", inode: 1 << 62, log: tfs.log}}
	_, err = unregistered.Lookup(ctx, "stream.bin")
	assert.Equal(t, syscall.ENOENT, err)
	_, err = unregistered.ReadDirAll(ctx)
	assert.Equal(t, syscall.EIO, err)
}
