package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	forms "google.golang.org/api/forms/v1"
	"google.golang.org/api/option"

	pkgforms "github.com/goliatone/go-formfill/pkg/forms"
)

// Fetcher reads form descriptions through the Forms API v1.
type Fetcher struct {
	svc *forms.Service
}

// Ensure the implementation satisfies the public interface.
var _ pkgforms.Fetcher = (*Fetcher)(nil)

// New constructs a Fetcher. Callers pass already authorized client options,
// typically option.WithTokenSource.
func New(ctx context.Context, opts ...option.ClientOption) (*Fetcher, error) {
	svc, err := forms.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("forms api: new service: %w", err)
	}
	return &Fetcher{svc: svc}, nil
}

// Fetch returns the form resource re-encoded as JSON, matching the shape
// pkgforms.Form decodes.
func (f *Fetcher) Fetch(ctx context.Context, formID string) ([]byte, error) {
	formID = strings.TrimSpace(formID)
	if formID == "" {
		return nil, errors.New("forms api: form id is required")
	}
	form, err := f.svc.Forms.Get(formID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("forms api: get form %s: %w", formID, err)
	}
	data, err := json.Marshal(form)
	if err != nil {
		return nil, fmt.Errorf("forms api: encode form %s: %w", formID, err)
	}
	return data, nil
}
