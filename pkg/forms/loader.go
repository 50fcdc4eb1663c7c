package forms

import (
	"context"
	"io/fs"
	"net/http"
	"time"
)

// Loader fetches form descriptions from different sources (filesystem, fs.FS,
// HTTP, Forms API). Implementations live under internal/forms.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// Fetcher retrieves a form description from the hosting service by form id.
// It receives already authorized transport; credentials never reach the core.
type Fetcher interface {
	Fetch(ctx context.Context, formID string) ([]byte, error)
}

// LoaderOptions configures how a Loader resolves sources.
type LoaderOptions struct {
	// FileSystem enables loading from an abstract filesystem.
	FileSystem fs.FS

	// HTTPClient allows callers to inject custom HTTP behaviour (timeouts,
	// proxies). Nil means URL sources are disabled unless AllowHTTPFallback is
	// true.
	HTTPClient *http.Client

	// AllowHTTPFallback toggles the default HTTP loader when no client is
	// supplied.
	AllowHTTPFallback bool

	// RequestTimeout caps remote fetch durations.
	RequestTimeout time.Duration

	// Fetcher resolves api sources. Nil disables them.
	Fetcher Fetcher
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS implementation for fs sources.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient injects a custom HTTP client for remote descriptions.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback enables HTTP loading with a default client and assigns an
// optional timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// WithFetcher registers the Forms API fetcher used for api sources.
func WithFetcher(fetcher Fetcher) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Fetcher = fetcher
	}
}

// NewLoaderOptions applies a set of LoaderOption values and returns the
// resulting configuration.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

// Construction helpers live in the top-level formfill package to prevent
// import cycles.
