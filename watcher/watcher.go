// Package watcher provides a hot-reloading datasource.Resolver.
//
// The resolver is described by a configuration file (see datasource.Config).
// When the file changes, the config is reloaded and a new resolver replaces
// the current one. Calls in flight keep using the resolver they started with.
//
// Basic usage:
//
//	r, err := watcher.New("resolver.yaml",
//	    watcher.WithOnError(func(err error) { log.Println(err) }),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := r.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Stop()
//
//	ds, err := r.Resolve(ctx, "logo.png")
//
// # Watch Mechanism
//
// The directory holding the config file is watched with fsnotify, so
// editors that replace the file by rename are handled like in-place writes.
// Bursts of events are coalesced by the debounce interval, and a reload
// whose file content is unchanged or empty is skipped.
//
// # Thread Safety
//
// The Resolver is safe for concurrent use. Reload callbacks run on the watch
// goroutine and should not block.
package watcher

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arloliu/datasource"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
)

// Resolver resolves locations with the resolver described by a watched
// configuration file.
type Resolver struct {
	path      string
	config    watcherConfig
	current   atomic.Pointer[snapshot]
	fsWatcher *fsnotify.Watcher
	stopChan  chan struct{}
	doneChan  chan struct{}
	mu        sync.Mutex
	running   bool

	reloadMu      sync.Mutex
	configContent []byte
}

// snapshot is a config and the resolver built from it.
type snapshot struct {
	config   datasource.Config
	resolver datasource.Resolver
}

var _ datasource.Resolver = (*Resolver)(nil)

// New loads the config file at path and builds the initial resolver.
// Watching does not begin until Start is called.
func New(path string, opts ...Option) (*Resolver, error) {
	cfg := watcherConfig{
		debounceInterval: defaultDebounceInterval,
		logger:           slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, &WatcherError{Message: "invalid config path", Err: err}
	}

	r := &Resolver{
		path:   absPath,
		config: cfg,
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, &WatcherError{Message: "failed to read config", Err: err}
	}

	snap, err := r.load()
	if err != nil {
		return nil, err
	}
	r.configContent = content
	r.current.Store(snap)

	return r, nil
}

// Path returns the absolute path of the watched config file.
func (r *Resolver) Path() string {
	return r.path
}

// Config returns the config the current resolver was built from.
func (r *Resolver) Config() datasource.Config {
	return r.current.Load().config
}

// Current returns the resolver currently in use.
func (r *Resolver) Current() datasource.Resolver {
	return r.current.Load().resolver
}

// Resolve resolves location with the current resolver.
func (r *Resolver) Resolve(ctx context.Context, location string) (*datasource.DataSource, error) {
	return r.Current().Resolve(ctx, location)
}

// ResolveWith resolves location with the current resolver and an explicit
// leniency for this call.
func (r *Resolver) ResolveWith(ctx context.Context, location string, lenient bool) (*datasource.DataSource, error) {
	return r.Current().ResolveWith(ctx, location, lenient)
}

// Start begins watching the config file.
func (r *Resolver) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return &WatcherError{Message: "watcher is already running"}
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return &WatcherError{Message: "failed to create file watcher", Err: err}
	}
	if err := fsWatcher.Add(filepath.Dir(r.path)); err != nil {
		_ = fsWatcher.Close()

		return &WatcherError{Message: "failed to watch config directory", Err: err}
	}

	r.fsWatcher = fsWatcher
	r.running = true
	r.stopChan = make(chan struct{})
	r.doneChan = make(chan struct{})

	go r.watchLoop(fsWatcher, r.stopChan, r.doneChan)

	return nil
}

// Stop stops watching and waits for the watch goroutine to exit.
// The current resolver remains usable. Stop is idempotent.
func (r *Resolver) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	fsWatcher, stopChan, doneChan := r.fsWatcher, r.stopChan, r.doneChan
	r.mu.Unlock()

	close(stopChan)
	<-doneChan

	_ = fsWatcher.Close()
}

// Reload re-reads the config file and swaps the resolver when the content
// changed. It reports whether a swap happened. Reload callbacks are invoked
// on success; on failure the previous resolver stays in use.
func (r *Resolver) Reload() (bool, error) {
	changed, err := r.reload()
	if err != nil {
		return false, err
	}
	if changed {
		r.notifyReload()
	}

	return changed, nil
}

// watchLoop is the main watch loop that monitors for changes.
func (r *Resolver) watchLoop(fsWatcher *fsnotify.Watcher, stopChan <-chan struct{}, doneChan chan<- struct{}) {
	defer close(doneChan)

	// Debounce timer to prevent rapid successive reloads
	var debounceTimer *time.Timer
	var debounceChan <-chan time.Time
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	schedule := func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		debounceTimer = time.NewTimer(r.config.debounceInterval)
		debounceChan = debounceTimer.C
	}

	events := fsWatcher.Events
	errs := fsWatcher.Errors

	for {
		select {
		case <-stopChan:
			return

		case event, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if filepath.Clean(event.Name) != r.path {
				continue
			}
			// Only react to write and create events
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				schedule()
			}

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			r.notifyError(&WatcherError{Message: "file watcher error", Err: err})

		case <-debounceChan:
			debounceChan = nil
			if _, err := r.Reload(); err != nil {
				r.notifyError(err)
			}
		}
	}
}

// reload swaps in a resolver for the current file content if it changed.
func (r *Resolver) reload() (bool, error) {
	r.reloadMu.Lock()
	defer r.reloadMu.Unlock()

	content, err := os.ReadFile(r.path)
	if err != nil {
		return false, &WatcherError{Message: "failed to read config", Err: err}
	}
	// An empty file is a truncating write still in progress.
	if len(content) == 0 || bytes.Equal(content, r.configContent) {
		return false, nil
	}

	snap, err := r.load()
	if err != nil {
		return false, err
	}

	r.configContent = content
	r.current.Store(snap)

	return true, nil
}

// load reads the config file and builds a resolver from it.
func (r *Resolver) load() (*snapshot, error) {
	loadOpts := append([]datasource.LoadOption{datasource.WithConfigFs(afero.NewOsFs())}, r.config.loadOptions...)

	cfg, err := datasource.LoadConfig(r.path, loadOpts...)
	if err != nil {
		return nil, &WatcherError{Message: "failed to load config", Err: err}
	}

	resolver, err := cfg.NewResolver(r.config.resolverOptions...)
	if err != nil {
		return nil, &WatcherError{Message: "failed to build resolver", Err: err}
	}

	return &snapshot{config: cfg, resolver: resolver}, nil
}

func (r *Resolver) notifyReload() {
	cfg := r.Config()
	r.config.logger.Info("resolver config reloaded",
		slog.String("path", r.path),
		slog.String("kind", cfg.Kind),
	)
	for _, fn := range r.config.onReload {
		fn(cfg)
	}
}

func (r *Resolver) notifyError(err error) {
	r.config.logger.Warn("resolver config reload failed",
		slog.String("path", r.path),
		slog.Any("error", err),
	)
	for _, fn := range r.config.onError {
		fn(err)
	}
}

// WatcherError represents a watcher-specific error.
type WatcherError struct {
	Message string
	Err     error
}

func (e *WatcherError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *WatcherError) Unwrap() error {
	return e.Err
}
