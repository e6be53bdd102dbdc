package storage

import (
	"context"
	"time"

	"github.com/nicktill/covexport/pkg/sdk/metrics"
)

// Storage defines the interface for intake storage backends.
// Implementations: memory
type Storage interface {
	// Write stores one accepted submission atomically
	Write(ctx context.Context, sub Submission) error

	// Submissions lists stored submissions, oldest first, without their series
	Submissions(ctx context.Context) ([]Submission, error)

	// Query retrieves stored series
	Query(ctx context.Context, req QueryRequest) ([]metrics.Series, error)

	// Stats returns storage statistics
	Stats(ctx context.Context) (*Stats, error)

	// Close cleanly shuts down the storage
	Close() error
}

// Submission is one accepted batch
type Submission struct {
	ID         string           `json:"id"`
	ReceivedAt time.Time        `json:"received_at"`
	Digest     string           `json:"digest"`
	Count      int              `json:"count"`
	Series     []metrics.Series `json:"series,omitempty"`
}

// QueryRequest specifies which series to retrieve
type QueryRequest struct {
	// Filter by metric name (optional)
	MetricNames []string

	// Filter by tags, every tag must be present (optional)
	Tags []string

	// Limit number of results (0 = no limit)
	Limit int
}

// Stats provides storage usage info
type Stats struct {
	// Accepted submissions
	TotalSubmissions uint64

	// Series across all submissions
	TotalSeries uint64

	// Unique series (metric name + tag set combinations)
	UniqueSeries uint64

	// Oldest and newest point timestamps, zero when empty
	OldestPoint time.Time
	NewestPoint time.Time
}
