package loader_test

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/arloliu/datasource/internal/loader"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFsLoader(t *testing.T) {
	memFs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memFs, "/attachments/logo.png", []byte("png-bytes"), 0o644))
	require.NoError(t, memFs.MkdirAll("/attachments/sub", 0o755))

	l := loader.NewFsLoader(memFs, 0)
	ctx := context.Background()

	t.Run("existing file", func(t *testing.T) {
		data, err := l.Load(ctx, "/attachments/logo.png")
		require.NoError(t, err)
		assert.Equal(t, []byte("png-bytes"), data)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := l.Load(ctx, "/attachments/missing.png")
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := l.Load(ctx, "/attachments/sub")
		require.Error(t, err)
		assert.NotErrorIs(t, err, fs.ErrNotExist)
		assert.Contains(t, err.Error(), "is a directory")
	})

	t.Run("size limit", func(t *testing.T) {
		limited := loader.NewFsLoader(memFs, 4)
		_, err := limited.Load(ctx, "/attachments/logo.png")
		require.Error(t, err)
		assert.NotErrorIs(t, err, fs.ErrNotExist)
		assert.Contains(t, err.Error(), "maximum size")
	})

	t.Run("context canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := l.Load(ctx, "/attachments/logo.png")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFromIOFS(t *testing.T) {
	fsys := fstest.MapFS{
		"static/logo.png": &fstest.MapFile{Data: []byte("embedded")},
	}

	l := loader.NewFsLoader(loader.FromIOFS(fsys), 0)
	ctx := context.Background()

	data, err := l.Load(ctx, "/static/logo.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("embedded"), data)

	data, err = l.Load(ctx, "static/logo.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("embedded"), data)

	_, err = l.Load(ctx, "/static/missing.png")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestHTTPLoader(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/logo.png":
			w.Header().Set("Content-Type", "image/png")
			_, _ = fmt.Fprint(w, "png")
		case "/gone":
			w.WriteHeader(http.StatusGone)
		case "/error":
			w.WriteHeader(http.StatusInternalServerError)
		case "/large":
			_, _ = fmt.Fprint(w, strings.Repeat("a", 100))
		case "/slow":
			time.Sleep(200 * time.Millisecond)
			_, _ = fmt.Fprint(w, "late")
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	l := loader.NewHTTPLoader()
	ctx := context.Background()

	t.Run("valid url", func(t *testing.T) {
		resp, err := l.Fetch(ctx, ts.URL+"/logo.png")
		require.NoError(t, err)
		assert.Equal(t, []byte("png"), resp.Data)
		assert.Equal(t, "image/png", resp.ContentType)

		data, err := l.Load(ctx, ts.URL+"/logo.png")
		require.NoError(t, err)
		assert.Equal(t, []byte("png"), data)
	})

	t.Run("not found statuses", func(t *testing.T) {
		_, err := l.Load(ctx, ts.URL+"/missing")
		assert.ErrorIs(t, err, fs.ErrNotExist)

		_, err = l.Load(ctx, ts.URL+"/gone")
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("server error", func(t *testing.T) {
		_, err := l.Load(ctx, ts.URL+"/error")
		require.Error(t, err)
		assert.NotErrorIs(t, err, fs.ErrNotExist)

		var statusErr *loader.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	})

	t.Run("max size exceeded", func(t *testing.T) {
		limited := &loader.HTTPLoader{Client: http.DefaultClient, MaxSize: 10}
		_, err := limited.Load(ctx, ts.URL+"/large")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds maximum size")
	})

	t.Run("timeout", func(t *testing.T) {
		slow := &loader.HTTPLoader{Client: http.DefaultClient, Timeout: 50 * time.Millisecond}
		_, err := slow.Load(ctx, ts.URL+"/slow")
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("unsupported scheme", func(t *testing.T) {
		_, err := l.Load(ctx, "ftp://example.com/file")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported scheme")
	})
}

func TestReadDotenv(t *testing.T) {
	memFs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memFs, "/app/.env", []byte("DS_BASE_PATH=/a\nDS_LENIENT=false\n"), 0o644))
	require.NoError(t, afero.WriteFile(memFs, "/app/.env.local", []byte("DS_LENIENT=true\n"), 0o644))

	vars, err := loader.ReadDotenv(memFs, "/app/.env", "/app/.env.local", "/app/.env.missing")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"DS_BASE_PATH": "/a", "DS_LENIENT": "true"}, vars)
}
