package formfill

import (
	"context"

	"google.golang.org/api/option"

	"github.com/goliatone/go-formfill/internal/forms/api"
	internalLoader "github.com/goliatone/go-formfill/internal/forms/loader"
	pkgforms "github.com/goliatone/go-formfill/pkg/forms"
)

// Credentials aliases the OAuth token file settings accepted by
// NewAPIFetcher.
type Credentials = api.Credentials

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...pkgforms.LoaderOption) pkgforms.Loader {
	cfg := pkgforms.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewAPIFetcher returns a Forms API fetcher authorized with the token file
// described by creds. Extra client options are appended after the token
// source, so tests can point the client at a local endpoint.
func NewAPIFetcher(ctx context.Context, creds Credentials, opts ...option.ClientOption) (pkgforms.Fetcher, error) {
	tokens, err := api.TokenSource(ctx, creds)
	if err != nil {
		return nil, err
	}
	return api.New(ctx, append([]option.ClientOption{option.WithTokenSource(tokens)}, opts...)...)
}
