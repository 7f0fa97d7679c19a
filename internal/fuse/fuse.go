//go:build linux
// +build linux

package fuse

import (
	"context"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
)

// LayoutFS exposes disk partitions as read-only files of a flat directory.
type LayoutFS struct {
	// disk adapters are not safe for concurrent use; serializes all reads
	ioMtx sync.Mutex

	entries    map[string]Entry
	mountTime  time.Time
	mountpoint string
}

func newLayoutFS(mountpoint string, entries []Entry) *LayoutFS {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		m[e.Name] = e
	}

	return &LayoutFS{
		entries:    m,
		mountTime:  time.Now(),
		mountpoint: mountpoint,
	}
}

func (lfs *LayoutFS) Root() (fs.Node, error) {
	return &Dir{
		fs: lfs,
	}, nil
}

// Dir implements both fs.Node and fs.HandleReadDirAller
type Dir struct {
	fs *LayoutFS
}

func (d *Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Mode = os.ModeDir | 0555
	a.Mtime = d.fs.mountTime
	return nil
}

func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	if e, ok := d.fs.entries[name]; ok {
		return &File{
			fs:    d.fs,
			entry: e,
		}, nil
	}
	return nil, fuse.ENOENT
}

func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	dirEntries := make([]fuse.Dirent, 0, len(d.fs.entries))
	for _, e := range d.fs.entries {
		dirEntries = append(dirEntries, fuse.Dirent{
			Name: e.Name,
			Type: fuse.DT_File,
		})
	}
	sort.Slice(dirEntries, func(i, j int) bool {
		return dirEntries[i].Name < dirEntries[j].Name
	})
	for i := range dirEntries {
		dirEntries[i].Inode = uint64(i) + 2
	}
	return dirEntries, nil
}

// File implements both fs.Node and fs.HandleReader
type File struct {
	fs    *LayoutFS
	entry Entry
}

func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Mode = 0444
	a.Size = uint64(f.entry.Size())
	a.Mtime = f.fs.mountTime
	return nil
}

func (f *File) Read(ctx context.Context, req *fuse.ReadRequest, resp *fuse.ReadResponse) error {
	size := int64(req.Size)
	offset := req.Offset
	fileSize := f.entry.Size()

	if offset >= fileSize {
		resp.Data = []byte{}
		return nil
	}

	// Clamp size if reading near EOF
	size = min(size, fileSize-offset)

	buf := make([]byte, size)

	f.fs.ioMtx.Lock()
	n, err := f.entry.Data.ReadAt(buf, offset)
	f.fs.ioMtx.Unlock()

	if err != nil && err != io.EOF {
		return fuse.EIO
	}

	resp.Data = buf[:n]
	return nil
}
