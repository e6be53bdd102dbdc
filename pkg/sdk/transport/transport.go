package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/gzip"

	"github.com/nicktill/covexport/pkg/config"
	"github.com/nicktill/covexport/pkg/sdk/metrics"
)

// APIKeyHeader carries the credential on every submission
const APIKeyHeader = "DD-API-KEY"

// Transport defines the interface for submitting series
type Transport interface {
	Send(ctx context.Context, series []metrics.Series) (Ack, error)
}

// Ack describes an accepted submission
type Ack struct {
	StatusCode int
	Series     int
	// Bytes is the size of the request body as sent
	Bytes int
	// Digest is the xxhash64 of the uncompressed payload
	Digest uint64
}

// Option configures an HTTPTransport
type Option func(*HTTPTransport)

// WithGzip compresses request bodies
func WithGzip() Option {
	return func(t *HTTPTransport) {
		t.gzip = true
	}
}

// WithTimeout overrides the HTTP client timeout
func WithTimeout(d time.Duration) Option {
	return func(t *HTTPTransport) {
		t.client.Timeout = d
	}
}

// HTTPTransport implements Transport against a series intake over HTTP
type HTTPTransport struct {
	endpoint string
	apiKey   string
	gzip     bool
	client   *http.Client
}

// NewHTTP creates a transport posting to {site}/api/v1/series
func NewHTTP(site, apiKey string, opts ...Option) (*HTTPTransport, error) {
	if site == "" {
		site = config.DefaultSite
	}
	u, err := url.Parse(site)
	if err != nil {
		return nil, fmt.Errorf("invalid site %q: %w", site, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid site %q: scheme must be http or https", site)
	}

	t := &HTTPTransport{
		endpoint: strings.TrimRight(site, "/") + config.SeriesPath,
		apiKey:   apiKey,
		client: &http.Client{
			Timeout: config.DefaultTransportTimeout,
		},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Endpoint returns the URL submissions are posted to
func (t *HTTPTransport) Endpoint() string {
	return t.endpoint
}

// Send posts the whole batch in a single request.
// An empty batch is accepted without any network activity.
func (t *HTTPTransport) Send(ctx context.Context, series []metrics.Series) (Ack, error) {
	if len(series) == 0 {
		return Ack{}, nil
	}

	payload, err := json.Marshal(metrics.Payload{Series: series})
	if err != nil {
		return Ack{}, &TransportError{Err: fmt.Errorf("failed to marshal series: %w", err)}
	}
	digest := xxhash.Sum64(payload)

	body := payload
	if t.gzip {
		if body, err = compress(payload); err != nil {
			return Ack{}, &TransportError{Err: fmt.Errorf("failed to compress series: %w", err)}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return Ack{}, &TransportError{Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	if t.gzip {
		req.Header.Set("Content-Encoding", "gzip")
	}
	if t.apiKey != "" {
		req.Header.Set(APIKeyHeader, t.apiKey)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return Ack{}, &TransportError{Err: fmt.Errorf("failed to send request: %w", err)}
	}
	defer resp.Body.Close()

	excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, config.MaxErrorBodyBytes))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return Ack{
			StatusCode: resp.StatusCode,
			Series:     len(series),
			Bytes:      len(body),
			Digest:     digest,
		}, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return Ack{}, &RejectedError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(excerpt)),
		}
	default:
		return Ack{}, &TransportError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("request failed with status %d", resp.StatusCode),
		}
	}
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
