package datasource

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"

	"github.com/arloliu/datasource/internal/classify"
	"github.com/arloliu/datasource/internal/loader"
	"github.com/arloliu/datasource/internal/mimetypes"
)

// URLResolver resolves locations as URLs, optionally relative to a base URL.
//
// Absolute http, https and file URLs are loaded directly. Any other
// location is resolved against the base URL, after "&amp;" entities left
// over from HTML attributes are replaced by "&". "cid:" locations are
// skipped and return (nil, nil).
type URLResolver struct {
	baseURL *url.URL
	lenient bool
	sniff   bool
	http    *loader.HTTPLoader
	files   loader.Loader
	logger  *slog.Logger
}

// NewURLResolver creates a resolver for URLs relative to baseURL.
// An empty baseURL accepts only absolute URLs.
// file: URLs are read from DefaultFs unless WithFs or WithFS is given.
func NewURLResolver(baseURL string, opts ...Option) (*URLResolver, error) {
	cfg := newResolverConfig(opts)

	var base *url.URL
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
		}
		base = u
	}

	httpLoader := loader.NewHTTPLoader()
	if cfg.httpClient != nil {
		httpLoader.Client = cfg.httpClient
	}
	if cfg.maxSize > 0 {
		httpLoader.MaxSize = cfg.maxSize
	}
	httpLoader.Timeout = cfg.timeout

	return &URLResolver{
		baseURL: base,
		lenient: cfg.lenient,
		sniff:   cfg.sniff,
		http:    httpLoader,
		files:   loader.NewFsLoader(cfg.fs, cfg.maxSize),
		logger:  cfg.logger,
	}, nil
}

// BaseURL returns the base URL, or "" if none is configured.
func (r *URLResolver) BaseURL() string {
	if r.baseURL == nil {
		return ""
	}

	return r.baseURL.String()
}

// Lenient reports the resolver's default leniency.
func (r *URLResolver) Lenient() bool {
	return r.lenient
}

// Target returns the absolute URL the resolver fetches for location.
func (r *URLResolver) Target(location string) (*url.URL, error) {
	if location == "" {
		return nil, ErrEmptyLocation
	}

	if r.baseURL == nil || classify.IsHTTPURL(location) || classify.IsFileURL(location) {
		return url.Parse(location)
	}

	ref, err := url.Parse(strings.ReplaceAll(location, "&amp;", "&"))
	if err != nil {
		return nil, err
	}

	return r.baseURL.ResolveReference(ref), nil
}

// Resolve resolves location using the resolver's configured leniency.
func (r *URLResolver) Resolve(ctx context.Context, location string) (*DataSource, error) {
	return r.ResolveWith(ctx, location, r.lenient)
}

// ResolveWith resolves location with an explicit leniency for this call.
func (r *URLResolver) ResolveWith(ctx context.Context, location string, lenient bool) (*DataSource, error) {
	if classify.IsCID(location) {
		skipped(ctx, r.logger, location, classify.CID)

		return nil, nil
	}

	target, err := r.Target(location)
	if err != nil {
		return nil, failure(ctx, r.logger, location, location, err, lenient)
	}

	data, headerType, err := r.fetch(ctx, target)
	if err != nil {
		return nil, failure(ctx, r.logger, location, target.String(), err, lenient)
	}

	contentType, known := mimetypes.Lookup(target.Path)
	if !known {
		if headerType != "" {
			contentType = headerType
		} else {
			contentType = mimetypes.Detect(target.Path, data, r.sniff)
		}
	}

	return newDataSource(path.Base(target.Path), contentType, data), nil
}

// fetch loads target and returns its bytes and any server-declared content type.
func (r *URLResolver) fetch(ctx context.Context, target *url.URL) ([]byte, string, error) {
	switch strings.ToLower(target.Scheme) {
	case "http", "https":
		resp, err := r.http.Fetch(ctx, target.String())
		if err != nil {
			return nil, "", err
		}

		return resp.Data, resp.ContentType, nil
	case "file":
		data, err := r.files.Load(ctx, target.Path)

		return data, "", err
	default:
		return nil, "", fmt.Errorf("unsupported URL scheme: %q", target.Scheme)
	}
}

// Compile-time interface check.
var _ Resolver = (*URLResolver)(nil)
