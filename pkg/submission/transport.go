package submission

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxErrorBody = 512

// Transport hands a built payload to the hosting service. Implementations
// own retries; the caller treats a returned payload as submitted.
type Transport interface {
	Submit(ctx context.Context, values url.Values) error
}

// TransportFunc adapts a function into a Transport.
type TransportFunc func(ctx context.Context, values url.Values) error

// Submit calls the underlying function.
func (fn TransportFunc) Submit(ctx context.Context, values url.Values) error {
	return fn(ctx, values)
}

// HTTPTransport posts payloads to a form's formResponse endpoint.
type HTTPTransport struct {
	client   *http.Client
	endpoint string
}

// Ensure the implementation satisfies the public interface.
var _ Transport = (*HTTPTransport)(nil)

// NewHTTPTransport returns a transport posting to endpoint. A nil client
// falls back to one using timeout.
func NewHTTPTransport(client *http.Client, endpoint string, timeout time.Duration) (*HTTPTransport, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("submission: response endpoint is required")
	}
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("submission: invalid response endpoint %q: %w", endpoint, err)
	}
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPTransport{client: client, endpoint: endpoint}, nil
}

// Endpoint returns the submission URL.
func (t *HTTPTransport) Endpoint() string {
	return t.endpoint
}

// Submit posts values form-encoded. A non-2xx status is returned verbatim.
func (t *HTTPTransport) Submit(ctx context.Context, values url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, strings.NewReader(Encode(values)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("submission: unexpected status %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// ResponseURL derives the formResponse endpoint from a responder (viewform)
// URL such as https://docs.google.com/forms/d/e/<id>/viewform.
func ResponseURL(viewURL string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(viewURL))
	if err != nil {
		return "", fmt.Errorf("submission: parse responder url: %w", err)
	}
	path := strings.TrimSuffix(parsed.Path, "/")
	switch {
	case strings.HasSuffix(path, "/formResponse"):
	case strings.HasSuffix(path, "/viewform"):
		path = strings.TrimSuffix(path, "/viewform") + "/formResponse"
	default:
		return "", fmt.Errorf("submission: %q is not a viewform url", viewURL)
	}
	parsed.Path = path
	parsed.RawQuery = ""
	parsed.Fragment = ""
	return parsed.String(), nil
}
