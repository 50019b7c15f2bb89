package loader

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultMaxHTTPSize is the body limit used when HTTPLoader.MaxSize is zero.
const DefaultMaxHTTPSize = 16 * 1024 * 1024

// HTTPLoader fetches content with HTTP GET requests.
type HTTPLoader struct {
	Client  *http.Client
	MaxSize int64         // Max size in bytes to read (default: 16MB)
	Timeout time.Duration // Per-request timeout; zero means none
}

// NewHTTPLoader creates a new HTTPLoader using http.DefaultClient.
func NewHTTPLoader() *HTTPLoader {
	return &HTTPLoader{
		Client:  http.DefaultClient,
		MaxSize: DefaultMaxHTTPSize,
	}
}

// Response is a fully read HTTP response body.
type Response struct {
	Data        []byte
	ContentType string // value of the Content-Type header, may be empty
}

// StatusError reports a non-200 HTTP status.
// 404 and 410 match fs.ErrNotExist so callers can treat them as not-found.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http request for %s failed with status: %d", e.URL, e.StatusCode)
}

// Is reports whether the status means the resource does not exist.
func (e *StatusError) Is(target error) bool {
	return target == fs.ErrNotExist &&
		(e.StatusCode == http.StatusNotFound || e.StatusCode == http.StatusGone)
}

// Load fetches target and returns its body.
func (l *HTTPLoader) Load(ctx context.Context, target string) ([]byte, error) {
	resp, err := l.Fetch(ctx, target)
	if err != nil {
		return nil, err
	}

	return resp.Data, nil
}

// Fetch fetches target and returns its body and content type.
func (l *HTTPLoader) Fetch(ctx context.Context, target string) (*Response, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", target, err)
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme for http loader: %s", u.Scheme)
	}

	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: target, StatusCode: resp.StatusCode}
	}

	limit := l.MaxSize
	if limit <= 0 {
		limit = DefaultMaxHTTPSize
	}

	// Read with limit + 1 to detect overflow
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, err
	}

	if int64(len(data)) > limit {
		return nil, fmt.Errorf("resource content exceeds maximum size of %d bytes", limit)
	}

	return &Response{Data: data, ContentType: resp.Header.Get("Content-Type")}, nil
}
