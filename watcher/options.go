package watcher

import (
	"log/slog"
	"time"

	"github.com/arloliu/datasource"
)

// watcherConfig holds internal configuration for the watcher.
type watcherConfig struct {
	debounceInterval time.Duration
	loadOptions      []datasource.LoadOption
	resolverOptions  []datasource.Option
	onReload         []func(datasource.Config)
	onError          []func(error)
	logger           *slog.Logger
}

// defaultDebounceInterval prevents rapid successive reloads.
const defaultDebounceInterval = 100 * time.Millisecond

// Option configures a Resolver.
type Option func(*watcherConfig)

// WithDebounceInterval sets the debounce interval for file changes.
// Multiple rapid changes are coalesced into a single reload.
//
// Default is 100 milliseconds.
func WithDebounceInterval(interval time.Duration) Option {
	return func(c *watcherConfig) {
		c.debounceInterval = interval
	}
}

// WithLoadOptions passes options to datasource.LoadConfig on every load,
// e.g. datasource.WithEnvPrefix or datasource.WithDotenv.
func WithLoadOptions(opts ...datasource.LoadOption) Option {
	return func(c *watcherConfig) {
		c.loadOptions = append(c.loadOptions, opts...)
	}
}

// WithResolverOptions passes options to every resolver built from the
// config, after the config's own options.
func WithResolverOptions(opts ...datasource.Option) Option {
	return func(c *watcherConfig) {
		c.resolverOptions = append(c.resolverOptions, opts...)
	}
}

// WithOnReload registers a callback invoked with the new config after the
// resolver has been swapped. Callbacks run on the watch goroutine.
func WithOnReload(fn func(datasource.Config)) Option {
	return func(c *watcherConfig) {
		c.onReload = append(c.onReload, fn)
	}
}

// WithOnError registers a callback for reload and file watching failures.
// The previous resolver stays in use when a reload fails.
func WithOnError(fn func(error)) Option {
	return func(c *watcherConfig) {
		c.onError = append(c.onError, fn)
	}
}

// WithLogger sets the logger for reload events. Default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *watcherConfig) {
		c.logger = logger
	}
}
