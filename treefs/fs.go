package treefs

import (
	"context"
	"os"
	"sync"
	"syscall"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"github.com/dendrascience/filetree/tree"
	"github.com/dendrascience/filetree/util"
	"go.uber.org/zap"
)

// DefaultFileName is the name the decoded stream is served under.
const DefaultFileName = "data"

// FS implements the treefs FUSE filesystem
type FS struct {
	TreePath string         // Root of the encoded tree
	FileName string         // Name of the single file in the mount
	Order    util.ByteOrder // Byte order the tree was encoded with

	log     *zap.Logger
	opts    []tree.Option
	inode   uint64
	mounted time.Time

	mu     sync.Mutex // Protects the fields below
	loaded bool
	data   []byte
	err    error
}

// NewFS creates a filesystem serving the tree at treePath. An empty fileName
// falls back to DefaultFileName. opts are passed to every decode.
func NewFS(treePath, fileName string, order util.ByteOrder, log *zap.Logger, opts ...tree.Option) *FS {
	if fileName == "" {
		fileName = DefaultFileName
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &FS{
		TreePath: treePath,
		FileName: fileName,
		Order:    order,
		log:      log,
		opts:     append([]tree.Option{tree.WithLogger(log)}, opts...),
		inode:    util.GetNewInodeFor(fileName),
		mounted:  time.Now(),
	}
}

// Root returns the root directory node
func (fs *FS) Root() (fs.Node, error) {
	return &Dir{fs: fs}, nil
}

// stream decodes the tree on first use and returns the cached result.
func (fs *FS) stream() ([]byte, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.loaded {
		return fs.data, fs.err
	}

	var buf streamBuffer
	start := time.Now()
	n, err := tree.Decode(fs.TreePath, &buf, fs.Order, fs.opts...)
	fs.loaded = true
	if err != nil {
		fs.log.Error("decode failed", zap.String("tree", fs.TreePath), zap.Error(err))
		fs.err = err
		return nil, err
	}
	fs.data = buf.b
	fs.log.Info("tree decoded for mount",
		zap.String("tree", fs.TreePath),
		zap.Int64("bytes", n),
		zap.Duration("took", time.Since(start)))
	return fs.data, nil
}

// streamBuffer collects the decoded stream.
type streamBuffer struct{ b []byte }

func (s *streamBuffer) Write(p []byte) (int, error) {
	s.b = append(s.b, p...)
	return len(p), nil
}

// Dir is the mount root. It implements both Node and Handle.
type Dir struct {
	fs *FS
}

// Attr returns directory attributes
func (d *Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Inode = 1
	a.Mode = os.ModeDir | 0o555
	a.Mtime = d.fs.mounted
	a.Ctime = d.fs.mounted
	a.Atime = time.Now()
	return nil
}

// Lookup resolves the single file name through the inode registry
func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	served, err := util.FileNameFromInode(d.fs.inode)
	if err != nil || name != served {
		return nil, syscall.ENOENT
	}
	return &File{fs: d.fs}, nil
}

// ReadDirAll lists directory contents
func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	name, err := util.FileNameFromInode(d.fs.inode)
	if err != nil {
		d.fs.log.Error("file inode not registered", zap.Uint64("inode", d.fs.inode))
		return nil, syscall.EIO
	}
	return []fuse.Dirent{{
		Inode: d.fs.inode,
		Name:  name,
		Type:  fuse.DT_File,
	}}, nil
}

// File is the decoded stream. It implements both Node and Handle.
type File struct {
	fs *FS
}

// Attr returns file attributes
func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	data, err := f.fs.stream()
	if err != nil {
		return syscall.EIO
	}
	a.Inode = f.fs.inode
	a.Mode = 0o444
	a.Size = uint64(len(data))
	a.Mtime = f.fs.mounted
	a.Ctime = f.fs.mounted
	a.Atime = time.Now()
	return nil
}

// ReadAll reads the entire file content
func (f *File) ReadAll(ctx context.Context) ([]byte, error) {
	data, err := f.fs.stream()
	if err != nil {
		return nil, syscall.EIO
	}
	return data, nil
}

var (
	_ fs.FS                 = (*FS)(nil)
	_ fs.Node               = (*Dir)(nil)
	_ fs.NodeStringLookuper = (*Dir)(nil)
	_ fs.HandleReadDirAller = (*Dir)(nil)
	_ fs.Node               = (*File)(nil)
	_ fs.HandleReadAller    = (*File)(nil)
)
