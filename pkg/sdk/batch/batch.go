package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nicktill/covexport/pkg/sdk/metrics"
	"github.com/nicktill/covexport/pkg/sdk/transport"
)

// ErrBatchFull is returned by Add when the batch would exceed MaxSeries
var ErrBatchFull = errors.New("batch is full")

// Config holds configuration for the batcher
type Config struct {
	// MaxSeries caps the batch size, 0 means unlimited
	MaxSeries int
}

// Batcher accumulates series and sends them as one submission.
// A batch is never split: Flush sends everything in a single request.
type Batcher struct {
	config    Config
	transport transport.Transport

	series []metrics.Series
	mu     sync.Mutex
}

// New creates a new batcher
func New(transport transport.Transport, config Config) *Batcher {
	return &Batcher{
		config:    config,
		transport: transport,
		series:    make([]metrics.Series, 0, config.MaxSeries),
	}
}

// Add appends series to the pending batch.
// Nothing is added when the batch would overflow.
func (b *Batcher) Add(series ...metrics.Series) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.config.MaxSeries > 0 && len(b.series)+len(series) > b.config.MaxSeries {
		return fmt.Errorf("%w: %d pending + %d new > %d", ErrBatchFull, len(b.series), len(series), b.config.MaxSeries)
	}
	b.series = append(b.series, series...)
	return nil
}

// Len returns the number of pending series
func (b *Batcher) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.series)
}

// Flush sends all pending series in a single request.
// The batch is drained whatever the outcome; there is no second attempt.
func (b *Batcher) Flush(ctx context.Context) (transport.Ack, error) {
	b.mu.Lock()
	series := make([]metrics.Series, len(b.series))
	copy(series, b.series)
	b.series = b.series[:0]
	b.mu.Unlock()

	return b.transport.Send(ctx, series)
}
