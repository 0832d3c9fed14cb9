// Package transport provides the concrete, retrying HTTP Transport used to
// drive esdeep.Client against a live Elasticsearch cluster.
//
// It is grounded on the teacher's BasicScroller/cmd-esdump request
// plumbing: build a *http.Request, set Content-Type, and send it through a
// github.com/sethgrid/pester client instead of a bare *http.Client, so
// transient connection errors and 5xx responses get retried with backoff
// for free.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/miku/esdeep"
	"github.com/sethgrid/pester"
)

// HTTPTransport implements esdeep.Transport over net/http via a retrying
// pester.Client.
type HTTPTransport struct {
	Client   *pester.Client
	BaseURL  string
	Username string
	Password string
}

// Option configures an HTTPTransport at construction time.
type Option func(*HTTPTransport)

// WithBasicAuth sets HTTP basic auth credentials sent with every request.
func WithBasicAuth(username, password string) Option {
	return func(t *HTTPTransport) {
		t.Username = username
		t.Password = password
	}
}

// WithMaxRetries overrides the number of retries pester performs on a
// transient failure. Defaults to 3, matching the teacher's BasicScroller
// retry loop around "unexpected EOF" errors.
func WithMaxRetries(n int) Option {
	return func(t *HTTPTransport) { t.Client.MaxRetries = n }
}

// WithHTTPClient overrides the underlying *http.Client pester wraps.
func WithHTTPClient(hc *http.Client) Option {
	return func(t *HTTPTransport) { t.Client.Client = hc }
}

// NewHTTPTransport builds an HTTPTransport posting against baseURL (e.g.
// "https://search.example.com"), with exponential backoff retries enabled
// by default.
func NewHTTPTransport(baseURL string, opts ...Option) *HTTPTransport {
	client := pester.New()
	client.Backoff = pester.ExponentialBackoff
	client.MaxRetries = 3

	t := &HTTPTransport{
		Client:  client,
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Post implements esdeep.Transport: issues a POST of body (a JSON object
// literal) to BaseURL+"/"+path, returning the response body as a string on
// HTTP 200, or an error carrying the response body on any other status.
func (t *HTTPTransport) Post(ctx context.Context, path, body string) (string, error) {
	url := t.BaseURL + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBufferString(body))
	if err != nil {
		return "", fmt.Errorf("esdeep/transport: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if t.Username != "" || t.Password != "" {
		req.SetBasicAuth(t.Username, t.Password)
	}

	resp, err := t.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("esdeep/transport: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("esdeep/transport: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &esdeep.TransportError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return string(raw), nil
}
