// Command dsresolve resolves resource locations the way a mail composer
// would and reports what it found.
//
//	dsresolve --base ./attachments logo.png cid:header docs/terms.pdf
//	dsresolve --kind url --base https://cdn.example.com/mail/ -o out logo.png
//	dsresolve --config resolver.yaml --env-file .env logo.png
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/arloliu/datasource"
	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], DefaultEnv())
	stop()
	os.Exit(code)
}

// run executes the command and returns the process exit code.
func run(ctx context.Context, args []string, env *Environment) int {
	flags, locations, err := parseFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, "dsresolve:", err)

		return exitCodeFor(err)
	}

	if flags.version {
		fmt.Fprintln(env.Stdout, "dsresolve", Version)
		return ExitSuccess
	}

	if len(locations) == 0 {
		err := fmt.Errorf("%w: no locations given", ErrUsage)
		fmt.Fprintln(env.Stderr, "dsresolve:", err)

		return exitCodeFor(err)
	}

	logger := newLogger(env, flags.verbose)

	resolver, err := buildResolver(flags, env, logger)
	if err != nil {
		fmt.Fprintln(env.Stderr, "dsresolve:", err)
		return exitCodeFor(err)
	}

	// The first failure decides the exit code; later locations still run.
	var firstErr error
	for _, location := range locations {
		if err := resolveOne(ctx, resolver, location, flags.output, env); err != nil {
			fmt.Fprintln(env.Stderr, "dsresolve:", err)
			if firstErr == nil {
				firstErr = err
			}
			if ctx.Err() != nil {
				break
			}
		}
	}

	return exitCodeFor(firstErr)
}

func newLogger(env *Environment, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(env.Stderr, &slog.HandlerOptions{Level: level}))
}

// buildResolver loads the config from --config or the environment and
// applies explicitly set flags on top.
func buildResolver(flags *cliFlags, env *Environment, logger *slog.Logger) (datasource.Resolver, error) {
	loadOpts := []datasource.LoadOption{
		datasource.WithConfigFs(env.Fs),
		datasource.WithEnvPrefix(flags.envPrefix),
		datasource.WithDotenv(flags.envFiles...),
		datasource.WithLookupEnv(env.LookupEnv),
	}

	var cfg datasource.Config
	var err error
	if flags.config != "" {
		cfg, err = datasource.LoadConfig(flags.config, loadOpts...)
	} else {
		cfg, err = datasource.LoadEnvConfig(loadOpts...)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	if flags.changed("kind") {
		cfg.Kind = flags.kind
	}
	if flags.changed("base") {
		if cfg.Kind == datasource.KindURL {
			cfg.BaseURL = flags.base
		} else {
			cfg.BasePath = flags.base
		}
	}
	if flags.changed("lenient") {
		cfg.Lenient = flags.lenient
	}
	if flags.changed("sniff") {
		cfg.SniffContent = flags.sniff
	}
	if flags.changed("max-size") {
		cfg.MaxSize = flags.maxSize
	}
	if flags.changed("timeout") {
		cfg.Timeout = flags.timeout
	}

	logger.Debug("resolver config",
		slog.String("kind", cfg.Kind),
		slog.String("basePath", cfg.BasePath),
		slog.String("baseURL", cfg.BaseURL),
		slog.Bool("lenient", cfg.Lenient),
	)

	return cfg.NewResolver(datasource.WithFs(env.Fs), datasource.WithLogger(logger))
}

// defaultOutputName names payloads whose location has no base name, such as
// "https://cdn.example.com/".
const defaultOutputName = "index"

// outputName returns a file name for a payload named name.
func outputName(name string) string {
	switch name {
	case "", ".", "/", "..":
		return defaultOutputName
	}

	return name
}

// resolveOne resolves location, prints its summary line, and writes the
// payload below outDir when set.
func resolveOne(ctx context.Context, r datasource.Resolver, location, outDir string, env *Environment) error {
	ds, err := r.Resolve(ctx, location)
	if err != nil {
		return err
	}

	if ds == nil {
		fmt.Fprintf(env.Stdout, "%s\tskipped\n", location)
		return nil
	}

	fmt.Fprintf(env.Stdout, "%s\t%s\t%d\n", location, ds.ContentType(), ds.Size())

	if outDir == "" {
		return nil
	}

	if err := env.Fs.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	target := filepath.Join(outDir, outputName(ds.Name()))
	if err := afero.WriteFile(env.Fs, target, ds.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteOutput, target, err)
	}

	return nil
}
