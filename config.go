package datasource

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
	k8syaml "sigs.k8s.io/yaml"
)

// Resolver kinds accepted by Config.Kind.
const (
	KindClassPath = "classpath"
	KindFile      = "file"
	KindURL       = "url"
)

// DefaultTimeout is the HTTP timeout applied when a config leaves it unset.
const DefaultTimeout = 30 * time.Second

// Config describes a resolver in a configuration file.
//
// YAML:
//
//	kind: classpath
//	basePath: /attachments/
//	lenient: true
//	maxSize: 10MiB
//
// JSON:
//
//	{"kind": "url", "baseURL": "https://cdn.example.com/mail/", "timeout": "5s"}
type Config struct {
	// Kind selects the resolver: classpath, file or url.
	Kind string `yaml:"kind" json:"kind" default:"classpath" validate:"oneof=classpath file url"`
	// BasePath is the classpath base or the file base directory.
	BasePath string `yaml:"basePath" json:"basePath"`
	// BaseURL is the base for relative locations of the url resolver.
	BaseURL string `yaml:"baseURL" json:"baseURL" validate:"required_if=Kind url"`
	// Lenient suppresses not-found and I/O errors.
	Lenient bool `yaml:"lenient" json:"lenient"`
	// SniffContent detects the MIME type from content for unknown extensions.
	SniffContent bool `yaml:"sniffContent" json:"sniffContent"`
	// MaxSize limits resolved content; zero keeps the resolver default.
	MaxSize ByteSize `yaml:"maxSize" json:"maxSize" validate:"gte=0"`
	// Timeout bounds each HTTP fetch.
	Timeout Duration `yaml:"timeout" json:"timeout" validate:"gte=0"`
}

// SetDefaults applies defaults that cannot be expressed as default tags.
// It is called by creasty/defaults after the tag defaults are set.
func (c *Config) SetDefaults() {
	if c.Timeout == 0 {
		c.Timeout = Duration(DefaultTimeout)
	}
}

// Format is a configuration file format.
type Format int

const (
	// FormatYAML parses with gopkg.in/yaml.v3 using yaml tags.
	FormatYAML Format = iota
	// FormatJSON parses with sigs.k8s.io/yaml using json tags.
	FormatJSON
)

// FormatOf returns the format implied by the file extension of path.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}

	return FormatYAML
}

var validate = validator.New()

// DefaultConfig returns a Config with all defaults applied.
func DefaultConfig() Config {
	var cfg Config
	// defaults.Set only fails for non-pointer targets or malformed tags.
	_ = defaults.Set(&cfg)

	return cfg
}

// ParseConfig parses data in the given format on top of the defaults.
// The result is not validated and has no environment overrides applied.
func ParseConfig(data []byte, format Format) (Config, error) {
	cfg := DefaultConfig()

	var err error
	switch format {
	case FormatJSON:
		err = k8syaml.Unmarshal(data, &cfg)
	default:
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal resolver config: %w", err)
	}

	return cfg, nil
}

// LoadConfig reads the config file at path from DefaultFs, applies
// environment overrides, and validates the result.
// The format is chosen by extension: .json is JSON, anything else YAML.
func LoadConfig(path string, opts ...LoadOption) (Config, error) {
	lc := newLoadConfig(opts)

	data, err := afero.ReadFile(lc.fs, path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read resolver config: %w", err)
	}

	cfg, err := ParseConfig(data, FormatOf(path))
	if err != nil {
		return Config{}, &ConfigError{Source: path, Errors: []error{err}}
	}

	if err := cfg.applyEnv(lc); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		var cfgErr *ConfigError
		if errors.As(err, &cfgErr) {
			cfgErr.Source = path
		}

		return Config{}, err
	}

	return cfg, nil
}

// LoadEnvConfig builds a Config from defaults and environment variables only.
func LoadEnvConfig(opts ...LoadOption) (Config, error) {
	lc := newLoadConfig(opts)

	cfg := DefaultConfig()
	if err := cfg.applyEnv(lc); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the config against its validate tags.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ConfigError{Errors: []error{err}}
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, fe)
	}

	return &ConfigError{Errors: errs}
}

// Options returns the resolver options described by the config.
func (c Config) Options() []Option {
	opts := []Option{
		WithLenient(c.Lenient),
		WithContentSniffing(c.SniffContent),
		WithTimeout(c.Timeout.Duration()),
	}
	if c.MaxSize > 0 {
		opts = append(opts, WithMaxSize(c.MaxSize.Int64()))
	}

	return opts
}

// NewResolver validates the config and builds the resolver it describes.
// Options in extra are applied after the config's own options.
func (c Config) NewResolver(extra ...Option) (Resolver, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	opts := append(c.Options(), extra...)

	switch c.Kind {
	case KindFile:
		return NewFileResolver(c.BasePath, opts...), nil
	case KindURL:
		r, err := NewURLResolver(c.BaseURL, opts...)
		if err != nil {
			return nil, err
		}

		return r, nil
	default:
		return NewClassPathResolver(c.BasePath, opts...), nil
	}
}
