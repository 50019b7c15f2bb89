package datasource_test

import (
	"context"
	"testing"
	"time"

	"github.com/arloliu/datasource"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func TestDefaultConfig(t *testing.T) {
	cfg := datasource.DefaultConfig()
	assert.Equal(t, datasource.KindClassPath, cfg.Kind)
	assert.Equal(t, "", cfg.BasePath)
	assert.False(t, cfg.Lenient)
	assert.Equal(t, datasource.DefaultTimeout, cfg.Timeout.Duration())
	assert.NoError(t, cfg.Validate())
}

func TestParseConfig(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		cfg, err := datasource.ParseConfig([]byte(`
kind: file
basePath: /srv/mail
lenient: true
sniffContent: true
maxSize: 10MiB
timeout: 5s
`), datasource.FormatYAML)
		require.NoError(t, err)
		assert.Equal(t, datasource.KindFile, cfg.Kind)
		assert.Equal(t, "/srv/mail", cfg.BasePath)
		assert.True(t, cfg.Lenient)
		assert.True(t, cfg.SniffContent)
		assert.Equal(t, int64(10<<20), cfg.MaxSize.Int64())
		assert.Equal(t, 5*time.Second, cfg.Timeout.Duration())
	})

	t.Run("json", func(t *testing.T) {
		cfg, err := datasource.ParseConfig([]byte(`{"kind":"url","baseURL":"https://cdn.example.com/","maxSize":"1KiB","timeout":"2s"}`), datasource.FormatJSON)
		require.NoError(t, err)
		assert.Equal(t, datasource.KindURL, cfg.Kind)
		assert.Equal(t, "https://cdn.example.com/", cfg.BaseURL)
		assert.Equal(t, int64(1024), cfg.MaxSize.Int64())
		assert.Equal(t, 2*time.Second, cfg.Timeout.Duration())
	})

	t.Run("defaults survive partial documents", func(t *testing.T) {
		cfg, err := datasource.ParseConfig([]byte("lenient: true\n"), datasource.FormatYAML)
		require.NoError(t, err)
		assert.Equal(t, datasource.KindClassPath, cfg.Kind)
		assert.Equal(t, datasource.DefaultTimeout, cfg.Timeout.Duration())
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := datasource.ParseConfig([]byte("kind: [unterminated"), datasource.FormatYAML)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to unmarshal")
	})
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, datasource.FormatJSON, datasource.FormatOf("resolver.json"))
	assert.Equal(t, datasource.FormatJSON, datasource.FormatOf("RESOLVER.JSON"))
	assert.Equal(t, datasource.FormatYAML, datasource.FormatOf("resolver.yaml"))
	assert.Equal(t, datasource.FormatYAML, datasource.FormatOf("resolver"))
}

func TestConfig_Validate(t *testing.T) {
	t.Run("unknown kind", func(t *testing.T) {
		cfg := datasource.DefaultConfig()
		cfg.Kind = "ftp"

		err := cfg.Validate()
		var cfgErr *datasource.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		require.Len(t, cfgErr.Errors, 1)
		assert.Contains(t, err.Error(), "Kind")
	})

	t.Run("url requires base", func(t *testing.T) {
		cfg := datasource.DefaultConfig()
		cfg.Kind = datasource.KindURL

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "BaseURL")
	})

	t.Run("negative size", func(t *testing.T) {
		cfg := datasource.DefaultConfig()
		cfg.MaxSize = -1
		assert.Error(t, cfg.Validate())
	})
}

func TestLoadConfig(t *testing.T) {
	memFs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memFs, "/etc/mail/resolver.yaml", []byte("kind: classpath\nbasePath: /attachments\n"), 0o644))
	require.NoError(t, afero.WriteFile(memFs, "/etc/mail/resolver.json", []byte(`{"kind":"file","basePath":"/srv"}`), 0o644))
	require.NoError(t, afero.WriteFile(memFs, "/etc/mail/bad.yaml", []byte("kind: smtp\n"), 0o644))
	require.NoError(t, afero.WriteFile(memFs, "/etc/mail/.env", []byte("MAIL_LENIENT=true\nMAIL_BASE_PATH=/from-dotenv\n"), 0o644))

	t.Run("yaml file", func(t *testing.T) {
		cfg, err := datasource.LoadConfig("/etc/mail/resolver.yaml",
			datasource.WithConfigFs(memFs), datasource.WithLookupEnv(noEnv))
		require.NoError(t, err)
		assert.Equal(t, "/attachments", cfg.BasePath)
	})

	t.Run("json file", func(t *testing.T) {
		cfg, err := datasource.LoadConfig("/etc/mail/resolver.json",
			datasource.WithConfigFs(memFs), datasource.WithLookupEnv(noEnv))
		require.NoError(t, err)
		assert.Equal(t, datasource.KindFile, cfg.Kind)
		assert.Equal(t, "/srv", cfg.BasePath)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := datasource.LoadConfig("/etc/mail/none.yaml", datasource.WithConfigFs(memFs))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read resolver config")
	})

	t.Run("invalid file names source", func(t *testing.T) {
		_, err := datasource.LoadConfig("/etc/mail/bad.yaml",
			datasource.WithConfigFs(memFs), datasource.WithLookupEnv(noEnv))
		var cfgErr *datasource.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "/etc/mail/bad.yaml", cfgErr.Source)
	})

	t.Run("env and dotenv overrides", func(t *testing.T) {
		env := map[string]string{"MAIL_BASE_PATH": "/from-env", "MAIL_MAX_SIZE": "2MiB", "MAIL_TIMEOUT": "1"}
		lookup := func(key string) (string, bool) {
			v, ok := env[key]

			return v, ok
		}

		cfg, err := datasource.LoadConfig("/etc/mail/resolver.yaml",
			datasource.WithConfigFs(memFs),
			datasource.WithEnvPrefix("MAIL_"),
			datasource.WithDotenv("/etc/mail/.env", "/etc/mail/.env.local"),
			datasource.WithLookupEnv(lookup),
		)
		require.NoError(t, err)
		assert.Equal(t, "/from-env", cfg.BasePath, "process env wins over dotenv")
		assert.True(t, cfg.Lenient, "dotenv applies when env is unset")
		assert.Equal(t, int64(2<<20), cfg.MaxSize.Int64())
		assert.Equal(t, time.Second, cfg.Timeout.Duration())
	})

	t.Run("invalid env values", func(t *testing.T) {
		env := map[string]string{
			"DATASOURCE_LENIENT":  "maybe",
			"DATASOURCE_TIMEOUT":  "-3s",
			"DATASOURCE_MAX_SIZE": "8388608TiB",
		}
		lookup := func(key string) (string, bool) {
			v, ok := env[key]

			return v, ok
		}

		_, err := datasource.LoadConfig("/etc/mail/resolver.yaml",
			datasource.WithConfigFs(memFs), datasource.WithLookupEnv(lookup))
		var cfgErr *datasource.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "env", cfgErr.Source)
		assert.Len(t, cfgErr.Errors, 3)
		assert.Contains(t, err.Error(), "DATASOURCE_TIMEOUT")
		assert.Contains(t, err.Error(), "DATASOURCE_MAX_SIZE")
	})
}

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("DATASOURCE_KIND", "url")
	t.Setenv("DATASOURCE_BASE_URL", "https://cdn.example.com/mail/")
	t.Setenv("DATASOURCE_LENIENT", "1")

	cfg, err := datasource.LoadEnvConfig()
	require.NoError(t, err)
	assert.Equal(t, datasource.KindURL, cfg.Kind)
	assert.Equal(t, "https://cdn.example.com/mail/", cfg.BaseURL)
	assert.True(t, cfg.Lenient)
}

func TestConfig_NewResolver(t *testing.T) {
	memFs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memFs, "/attachments/logo.png", pngBytes, 0o644))
	ctx := context.Background()

	t.Run("classpath", func(t *testing.T) {
		cfg := datasource.DefaultConfig()
		cfg.BasePath = "/attachments"
		cfg.Lenient = true

		r, err := cfg.NewResolver(datasource.WithFs(memFs))
		require.NoError(t, err)
		require.IsType(t, &datasource.ClassPathResolver{}, r)

		ds, err := r.Resolve(ctx, "logo.png")
		require.NoError(t, err)
		require.NotNil(t, ds)

		ds, err = r.Resolve(ctx, "missing.png")
		require.NoError(t, err)
		assert.Nil(t, ds)
	})

	t.Run("file", func(t *testing.T) {
		cfg := datasource.DefaultConfig()
		cfg.Kind = datasource.KindFile
		cfg.BasePath = "/attachments"

		r, err := cfg.NewResolver(datasource.WithFs(memFs))
		require.NoError(t, err)
		assert.IsType(t, &datasource.FileResolver{}, r)
	})

	t.Run("url", func(t *testing.T) {
		cfg := datasource.DefaultConfig()
		cfg.Kind = datasource.KindURL
		cfg.BaseURL = "https://cdn.example.com/"

		r, err := cfg.NewResolver()
		require.NoError(t, err)
		assert.IsType(t, &datasource.URLResolver{}, r)
	})

	t.Run("invalid url base", func(t *testing.T) {
		cfg := datasource.DefaultConfig()
		cfg.Kind = datasource.KindURL
		cfg.BaseURL = "http://[::1"

		r, err := cfg.NewResolver()
		require.Error(t, err)
		assert.Nil(t, r)
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := datasource.DefaultConfig()
		cfg.Kind = "nope"

		_, err := cfg.NewResolver()
		var cfgErr *datasource.ConfigError
		assert.ErrorAs(t, err, &cfgErr)
	})
}
