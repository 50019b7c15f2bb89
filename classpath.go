package datasource

import (
	"context"
	"log/slog"
	"path"
	"strings"

	"github.com/arloliu/datasource/internal/classify"
	"github.com/arloliu/datasource/internal/loader"
	"github.com/arloliu/datasource/internal/mimetypes"
)

// ClassPathResolver resolves locations relative to a base path in a virtual
// resource root, such as an embedded asset tree or an in-memory filesystem.
//
// The fully-qualified target is the base path followed by the location,
// with every run of '/' collapsed to a single separator. "cid:" and
// http(s) locations are skipped and return (nil, nil).
type ClassPathResolver struct {
	basePath string
	lenient  bool
	sniff    bool
	loader   loader.Loader
	logger   *slog.Logger
}

// NewClassPathResolver creates a resolver rooted at basePath.
// A missing trailing '/' is appended; an empty basePath means "/".
// The backing filesystem is DefaultFs unless WithFs or WithFS is given.
func NewClassPathResolver(basePath string, opts ...Option) *ClassPathResolver {
	cfg := newResolverConfig(opts)

	return &ClassPathResolver{
		basePath: normalizeBasePath(basePath),
		lenient:  cfg.lenient,
		sniff:    cfg.sniff,
		loader:   loader.NewFsLoader(cfg.fs, cfg.maxSize),
		logger:   cfg.logger,
	}
}

// BasePath returns the normalized base path, which always ends in '/'.
func (r *ClassPathResolver) BasePath() string {
	return r.basePath
}

// Lenient reports the resolver's default leniency.
func (r *ClassPathResolver) Lenient() bool {
	return r.lenient
}

// Target returns the fully-qualified path the resolver loads for location.
func (r *ClassPathResolver) Target(location string) string {
	return collapseSeparators(r.basePath + location)
}

// Resolve resolves location using the resolver's configured leniency.
func (r *ClassPathResolver) Resolve(ctx context.Context, location string) (*DataSource, error) {
	return r.ResolveWith(ctx, location, r.lenient)
}

// ResolveWith resolves location with an explicit leniency for this call.
func (r *ClassPathResolver) ResolveWith(ctx context.Context, location string, lenient bool) (*DataSource, error) {
	if class := classify.Location(location); class != classify.Path {
		skipped(ctx, r.logger, location, class)

		return nil, nil
	}

	target := r.Target(location)

	data, err := r.loader.Load(ctx, target)
	if err != nil {
		return nil, failure(ctx, r.logger, location, target, err, lenient)
	}

	contentType := mimetypes.Detect(location, data, r.sniff)

	return newDataSource(path.Base(target), contentType, data), nil
}

func normalizeBasePath(basePath string) string {
	if !strings.HasSuffix(basePath, "/") {
		return basePath + "/"
	}

	return basePath
}

// collapseSeparators replaces every run of '/' in s with a single '/'.
func collapseSeparators(s string) string {
	if !strings.Contains(s, "//") {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))

	prevSlash := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '/' && prevSlash {
			continue
		}
		prevSlash = c == '/'
		sb.WriteByte(c)
	}

	return sb.String()
}

// Compile-time interface check.
var _ Resolver = (*ClassPathResolver)(nil)
