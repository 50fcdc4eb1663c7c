package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	pkgforms "github.com/goliatone/go-formfill/pkg/forms"
)

// Loader implements pkgforms.Loader by delegating to file, fs.FS, HTTP or
// Forms API strategies. Construction helpers live in the top-level formfill
// package.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
	fetcher   pkgforms.Fetcher
}

// Ensure the implementation satisfies the public interface.
var _ pkgforms.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options pkgforms.LoaderOptions) pkgforms.Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
		fetcher:   options.Fetcher,
	}
}

// Load fetches a description from the provided source and wraps it in a
// Document.
func (l *Loader) Load(ctx context.Context, src pkgforms.Source) (pkgforms.Document, error) {
	if src == nil {
		return pkgforms.Document{}, errors.New("forms loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case pkgforms.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case pkgforms.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case pkgforms.SourceKindURL:
		if !l.allowHTTP {
			return pkgforms.Document{}, errors.New("forms loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	case pkgforms.SourceKindAPI:
		if l.fetcher == nil {
			return pkgforms.Document{}, errors.New("forms loader: forms api fetcher is not configured")
		}
		if src.Location() == "" {
			return pkgforms.Document{}, errors.New("forms loader: form id is required")
		}
		data, err = l.fetcher.Fetch(ctx, src.Location())
	default:
		err = errors.New("forms loader: unsupported source kind")
	}
	if err != nil {
		return pkgforms.Document{}, err
	}

	return pkgforms.NewDocument(src, data)
}
