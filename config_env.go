package datasource

import (
	"fmt"
	"os"
	"strconv"

	"github.com/arloliu/datasource/internal/bytesize"
	"github.com/arloliu/datasource/internal/loader"
	"github.com/spf13/afero"
)

// DefaultEnvPrefix prefixes the environment variables read by LoadConfig.
const DefaultEnvPrefix = "DATASOURCE_"

// loadConfig holds options for LoadConfig and LoadEnvConfig.
type loadConfig struct {
	envPrefix  string
	dotenv     []string
	fs         afero.Fs
	lookupFunc func(string) (string, bool)
}

// LoadOption configures config loading.
type LoadOption func(*loadConfig)

func newLoadConfig(opts []LoadOption) *loadConfig {
	lc := &loadConfig{
		envPrefix:  DefaultEnvPrefix,
		lookupFunc: os.LookupEnv,
	}
	for _, opt := range opts {
		opt(lc)
	}

	if lc.fs == nil {
		lc.fs = DefaultFs
	}

	return lc
}

// WithEnvPrefix sets the prefix for environment overrides.
// For example, with prefix "MAIL_", MAIL_BASE_PATH overrides basePath.
// Default is "DATASOURCE_".
func WithEnvPrefix(prefix string) LoadOption {
	return func(c *loadConfig) {
		c.envPrefix = prefix
	}
}

// WithDotenv reads additional variables from dotenv files.
// Later files override earlier ones; the process environment overrides all
// of them. Missing files are ignored.
func WithDotenv(files ...string) LoadOption {
	return func(c *loadConfig) {
		c.dotenv = append(c.dotenv, files...)
	}
}

// WithConfigFs sets the filesystem for the config file and dotenv files.
// If not set, DefaultFs is used.
func WithConfigFs(fs afero.Fs) LoadOption {
	return func(c *loadConfig) {
		c.fs = fs
	}
}

// WithLookupEnv replaces os.LookupEnv for environment overrides.
func WithLookupEnv(fn func(string) (string, bool)) LoadOption {
	return func(c *loadConfig) {
		c.lookupFunc = fn
	}
}

// applyEnv overrides fields from <prefix>KIND, <prefix>BASE_PATH,
// <prefix>BASE_URL, <prefix>LENIENT, <prefix>SNIFF_CONTENT,
// <prefix>MAX_SIZE and <prefix>TIMEOUT.
func (c *Config) applyEnv(lc *loadConfig) error {
	fileVars, err := loader.ReadDotenv(lc.fs, lc.dotenv...)
	if err != nil {
		return &ConfigError{Source: "dotenv", Errors: []error{err}}
	}

	lookup := func(key string) (string, bool) {
		name := lc.envPrefix + key
		if v, ok := lc.lookupFunc(name); ok {
			return v, true
		}
		v, ok := fileVars[name]

		return v, ok
	}

	var errs []error
	parseBool := func(key string, dst *bool) {
		v, ok := lookup(key)
		if !ok {
			return
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: invalid boolean %q", lc.envPrefix, key, v))

			return
		}
		*dst = b
	}

	if v, ok := lookup("KIND"); ok {
		c.Kind = v
	}
	if v, ok := lookup("BASE_PATH"); ok {
		c.BasePath = v
	}
	if v, ok := lookup("BASE_URL"); ok {
		c.BaseURL = v
	}
	parseBool("LENIENT", &c.Lenient)
	parseBool("SNIFF_CONTENT", &c.SniffContent)

	if v, ok := lookup("MAX_SIZE"); ok {
		n, err := bytesize.Parse(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sMAX_SIZE: %w", lc.envPrefix, err))
		} else {
			c.MaxSize = ByteSize(n)
		}
	}

	if v, ok := lookup("TIMEOUT"); ok {
		d, err := ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sTIMEOUT: %w", lc.envPrefix, err))
		} else {
			c.Timeout = d
		}
	}

	if len(errs) > 0 {
		return &ConfigError{Source: "env", Errors: errs}
	}

	return nil
}
