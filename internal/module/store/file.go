package store

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/DODOEX/b64huff/internal/common"
)

type FileStore struct {
	root string
}

// NewFileStore resolves keys relative to root; an empty root means the
// working directory and lets keys be absolute paths.
func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

func (s *FileStore) Name() string {
	return "file"
}

func (s *FileStore) path(key string) string {
	if s.root == "" || filepath.IsAbs(key) {
		return key
	}
	return filepath.Join(s.root, key)
}

type fileObject struct {
	*os.File
	size int64
}

func (f *fileObject) Size() int64 {
	return f.size
}

func (s *FileStore) Open(ctx context.Context, key string) (Object, error) {
	f, err := os.Open(s.path(key))
	if err != nil {
		return nil, common.IOError("failed to open "+key, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, common.IOError("failed to stat "+key, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, common.IOError(key + " is a directory")
	}
	return &fileObject{File: f, size: info.Size()}, nil
}

// Save writes into a temporary file beside the target and renames it into
// place once everything has been written and synced.
func (s *FileStore) Save(ctx context.Context, key string, write func(w io.Writer) error) (n int64, err error) {
	target := s.path(key)
	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return 0, common.IOError("failed to create "+key, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	cw := &countWriter{w: tmp}
	bw := bufio.NewWriterSize(cw, 64*1024)
	if err = write(bw); err != nil {
		return 0, err
	}
	if err = bw.Flush(); err != nil {
		return 0, common.IOError("failed to write "+key, err)
	}
	if err = tmp.Sync(); err != nil {
		return 0, common.IOError("failed to sync "+key, err)
	}
	if err = tmp.Close(); err != nil {
		return 0, common.IOError("failed to close "+key, err)
	}
	if err = os.Rename(tmp.Name(), target); err != nil {
		return 0, common.IOError("failed to move "+key+" into place", err)
	}
	return cw.n, nil
}

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
