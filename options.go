package datasource

import (
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/arloliu/datasource/internal/loader"
	"github.com/spf13/afero"
)

// resolverConfig holds the options shared by all resolver variants.
// It is copied into each resolver at construction and never mutated.
type resolverConfig struct {
	lenient    bool
	sniff      bool
	fs         afero.Fs
	logger     *slog.Logger
	httpClient *http.Client
	maxSize    int64
	timeout    time.Duration
}

// Option configures a resolver.
type Option func(*resolverConfig)

func newResolverConfig(opts []Option) resolverConfig {
	cfg := resolverConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.fs == nil {
		cfg.fs = DefaultFs
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}

	return cfg
}

// WithLenient sets the default leniency of the resolver.
// By default resolvers are strict: missing or unreadable targets are errors.
//
// Example:
//
//	// Optional attachments: skip whatever is missing
//	r := datasource.NewClassPathResolver("/attachments", datasource.WithLenient(true))
func WithLenient(lenient bool) Option {
	return func(c *resolverConfig) {
		c.lenient = lenient
	}
}

// WithFs sets the filesystem that backs path resolution.
// If not set, DefaultFs is used.
func WithFs(fs afero.Fs) Option {
	return func(c *resolverConfig) {
		c.fs = fs
	}
}

// WithFS uses an io/fs tree, such as an embed.FS, as the backing filesystem.
// Rooted paths are accepted: "/static/logo.png" opens "static/logo.png".
//
// Example:
//
//	//go:embed static
//	var static embed.FS
//
//	r := datasource.NewClassPathResolver("/static", datasource.WithFS(static))
func WithFS(fsys fs.FS) Option {
	return func(c *resolverConfig) {
		c.fs = loader.FromIOFS(fsys)
	}
}

// WithContentSniffing enables content-based MIME detection for locations
// whose extension is unknown. Without it such locations are typed
// application/octet-stream.
func WithContentSniffing(enabled bool) Option {
	return func(c *resolverConfig) {
		c.sniff = enabled
	}
}

// WithLogger sets a structured logger. Skipped locations and errors
// suppressed by lenient resolution are logged at debug level.
// By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(c *resolverConfig) {
		c.logger = logger
	}
}

// WithHTTPClient sets the client used by the URL resolver.
// If not set, http.DefaultClient is used.
func WithHTTPClient(client *http.Client) Option {
	return func(c *resolverConfig) {
		c.httpClient = client
	}
}

// WithMaxSize limits the size of resolved content in bytes.
// Filesystem reads are unlimited by default; HTTP reads default to 16MB.
func WithMaxSize(n int64) Option {
	return func(c *resolverConfig) {
		c.maxSize = n
	}
}

// WithTimeout sets a per-request timeout for HTTP fetches.
// Default is 0 (no timeout beyond the caller's context).
func WithTimeout(timeout time.Duration) Option {
	return func(c *resolverConfig) {
		c.timeout = timeout
	}
}
