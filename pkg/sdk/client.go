package sdk

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/nicktill/covexport/pkg/config"
	"github.com/nicktill/covexport/pkg/sdk/batch"
	"github.com/nicktill/covexport/pkg/sdk/metrics"
	"github.com/nicktill/covexport/pkg/sdk/transport"
)

var (
	// ErrMissingAPIKey is returned by New when no credential is configured
	ErrMissingAPIKey = errors.New("api key is required")

	// ErrAlreadySubmitted is returned when Submit is called more than once
	ErrAlreadySubmitted = errors.New("batch already submitted")
)

// State is the lifecycle state of a submission
type State int

const (
	Pending State = iota
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// ClientConfig holds configuration for the submission client
type ClientConfig struct {
	Site     string `json:"site"`
	APIKey   string `json:"api_key"`
	Compress bool   `json:"compress"`

	// MaxSeries caps the batch size, 0 means unlimited
	MaxSeries int `json:"max_series"`

	// Transport overrides the HTTP transport, mostly for tests
	Transport transport.Transport `json:"-"`

	// Logger receives progress lines, nil disables logging
	Logger *log.Logger `json:"-"`
}

// Client submits one batch of series per run
type Client struct {
	config    ClientConfig
	transport transport.Transport
	batcher   *batch.Batcher

	state State
	mu    sync.Mutex
}

// New creates a new submission client
func New(cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Site == "" {
		cfg.Site = config.DefaultSite
	}

	trans := cfg.Transport
	if trans == nil {
		var opts []transport.Option
		if cfg.Compress {
			opts = append(opts, transport.WithGzip())
		}
		httpTransport, err := transport.NewHTTP(cfg.Site, cfg.APIKey, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create transport: %w", err)
		}
		trans = httpTransport
	}

	return &Client{
		config:    cfg,
		transport: trans,
		batcher:   batch.New(trans, batch.Config{MaxSeries: cfg.MaxSeries}),
		state:     Pending,
	}, nil
}

// State returns the current submission state
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit delivers the series as one submission. It makes a single attempt:
// the client ends up Succeeded or Failed and cannot be reused.
// An empty batch succeeds without contacting the endpoint.
func (c *Client) Submit(ctx context.Context, series []metrics.Series) (transport.Ack, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Pending {
		return transport.Ack{}, fmt.Errorf("%w (state %s)", ErrAlreadySubmitted, c.state)
	}

	if err := c.batcher.Add(series...); err != nil {
		c.state = Failed
		return transport.Ack{}, err
	}

	c.logf("📤 Submitting %d series to %s", len(series), c.config.Site)
	ack, err := c.batcher.Flush(ctx)
	if err != nil {
		c.state = Failed
		c.logf("❌ Submission failed: %v", err)
		return transport.Ack{}, err
	}

	c.state = Succeeded
	c.logf("✅ Submission accepted: status=%d series=%d bytes=%d digest=%016x",
		ack.StatusCode, ack.Series, ack.Bytes, ack.Digest)
	return ack, nil
}

func (c *Client) logf(format string, args ...any) {
	if c.config.Logger != nil {
		c.config.Logger.Printf(format, args...)
	}
}
