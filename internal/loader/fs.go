// Package loader provides the byte-loading primitives behind the resolvers.
//
// A loader is addressed by a single fully-qualified target string and returns
// the complete content or an error. "Not found" is signalled by an error that
// matches fs.ErrNotExist; every other error is an I/O failure.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/afero"
)

// Loader loads the content addressed by target.
type Loader interface {
	Load(ctx context.Context, target string) ([]byte, error)
}

// FsLoader loads files from an afero filesystem.
type FsLoader struct {
	fs      afero.Fs
	maxSize int64
}

// NewFsLoader creates a loader over fsys. A nil fsys uses the OS filesystem.
// maxSize limits the size of a loaded file; zero or negative means no limit.
func NewFsLoader(fsys afero.Fs, maxSize int64) *FsLoader {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	return &FsLoader{fs: fsys, maxSize: maxSize}
}

// Load reads the file at target.
// Directories are rejected with an error that does not match fs.ErrNotExist.
func (l *FsLoader) Load(ctx context.Context, target string) ([]byte, error) {
	// Check context before reading
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := l.fs.Stat(target)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: target, Err: errIsDirectory}
	}

	if l.maxSize > 0 && info.Size() > l.maxSize {
		return nil, fmt.Errorf("resource exceeds maximum size of %d bytes: %s", l.maxSize, target)
	}

	return afero.ReadFile(l.fs, target)
}

var errIsDirectory = errors.New("is a directory")

// FromIOFS adapts fsys, such as an embed.FS, to an afero filesystem that
// accepts rooted paths. "/static/logo.png" opens "static/logo.png" in fsys.
func FromIOFS(fsys fs.FS) afero.Fs {
	return afero.FromIOFS{FS: unrooted{fsys}}
}

// unrooted strips the leading separators that io/fs rejects.
type unrooted struct {
	fsys fs.FS
}

func (u unrooted) Open(name string) (fs.File, error) {
	name = strings.TrimLeft(name, "/")
	if name == "" {
		name = "."
	}

	return u.fsys.Open(name)
}
