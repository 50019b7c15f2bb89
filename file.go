package datasource

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/arloliu/datasource/internal/classify"
	"github.com/arloliu/datasource/internal/loader"
	"github.com/arloliu/datasource/internal/mimetypes"
)

// FileResolver resolves locations against a directory on a filesystem.
//
// Absolute locations are read as-is; relative locations are joined to the
// base directory. "cid:" and http(s) locations are skipped and return
// (nil, nil).
type FileResolver struct {
	baseDir string
	lenient bool
	sniff   bool
	loader  loader.Loader
	logger  *slog.Logger
}

// NewFileResolver creates a resolver for files under baseDir.
// An empty baseDir resolves relative locations against the working directory.
// The filesystem is DefaultFs unless WithFs or WithFS is given.
func NewFileResolver(baseDir string, opts ...Option) *FileResolver {
	cfg := newResolverConfig(opts)

	return &FileResolver{
		baseDir: baseDir,
		lenient: cfg.lenient,
		sniff:   cfg.sniff,
		loader:  loader.NewFsLoader(cfg.fs, cfg.maxSize),
		logger:  cfg.logger,
	}
}

// BaseDir returns the base directory.
func (r *FileResolver) BaseDir() string {
	return r.baseDir
}

// Lenient reports the resolver's default leniency.
func (r *FileResolver) Lenient() bool {
	return r.lenient
}

// Target returns the file path the resolver loads for location.
func (r *FileResolver) Target(location string) string {
	if filepath.IsAbs(location) || r.baseDir == "" {
		return filepath.Clean(location)
	}

	return filepath.Join(r.baseDir, location)
}

// Resolve resolves location using the resolver's configured leniency.
func (r *FileResolver) Resolve(ctx context.Context, location string) (*DataSource, error) {
	return r.ResolveWith(ctx, location, r.lenient)
}

// ResolveWith resolves location with an explicit leniency for this call.
func (r *FileResolver) ResolveWith(ctx context.Context, location string, lenient bool) (*DataSource, error) {
	if class := classify.Location(location); class != classify.Path {
		skipped(ctx, r.logger, location, class)

		return nil, nil
	}

	target := r.Target(location)

	data, err := r.loader.Load(ctx, target)
	if err != nil {
		return nil, failure(ctx, r.logger, location, target, err, lenient)
	}

	contentType := mimetypes.Detect(target, data, r.sniff)

	return newDataSource(filepath.Base(target), contentType, data), nil
}

// Compile-time interface check.
var _ Resolver = (*FileResolver)(nil)
