package memory

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/nicktill/covexport/pkg/sdk/metrics"
	"github.com/nicktill/covexport/pkg/storage"
)

// Storage stores submissions in memory. Data is lost on restart.
type Storage struct {
	submissions []storage.Submission
	mu          sync.RWMutex
}

// New creates an in-memory storage backend
func New() *Storage {
	return &Storage{
		submissions: make([]storage.Submission, 0, 16),
	}
}

// Write stores a submission
func (s *Storage) Write(ctx context.Context, sub storage.Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Keep our own copy so callers can't mutate stored data
	series := make([]metrics.Series, len(sub.Series))
	copy(series, sub.Series)
	sub.Series = series
	sub.Count = len(series)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.submissions = append(s.submissions, sub)
	return nil
}

// Submissions lists stored submissions without their series
func (s *Storage) Submissions(ctx context.Context) ([]storage.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]storage.Submission, len(s.submissions))
	for i, sub := range s.submissions {
		sub.Series = nil
		result[i] = sub
	}
	return result, nil
}

// Query retrieves series matching the request, in arrival order
func (s *Storage) Query(ctx context.Context, req storage.QueryRequest) ([]metrics.Series, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []metrics.Series

	for _, sub := range s.submissions {
		for _, series := range sub.Series {
			// Metric name filter
			if len(req.MetricNames) > 0 && !slices.Contains(req.MetricNames, series.Metric) {
				continue
			}

			// Tag filter
			if !hasTags(series.Tags, req.Tags) {
				continue
			}

			results = append(results, series)

			// Limit check
			if req.Limit > 0 && len(results) >= req.Limit {
				return results, nil
			}
		}
	}

	return results, nil
}

// Close is a no-op for memory storage
func (s *Storage) Close() error {
	return nil
}

// Stats returns storage statistics
func (s *Storage) Stats(ctx context.Context) (*storage.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &storage.Stats{
		TotalSubmissions: uint64(len(s.submissions)),
	}

	unique := make(map[uint64]struct{})
	var oldest, newest int64
	seen := false

	for _, sub := range s.submissions {
		stats.TotalSeries += uint64(len(sub.Series))
		for _, series := range sub.Series {
			unique[seriesKey(series.Metric, series.Tags)] = struct{}{}

			for _, p := range series.Points {
				if !seen || p.Timestamp < oldest {
					oldest = p.Timestamp
				}
				if !seen || p.Timestamp > newest {
					newest = p.Timestamp
				}
				seen = true
			}
		}
	}

	stats.UniqueSeries = uint64(len(unique))
	if seen {
		stats.OldestPoint = time.Unix(oldest, 0).UTC()
		stats.NewestPoint = time.Unix(newest, 0).UTC()
	}
	return stats, nil
}

// seriesKey hashes a metric name and its sorted tag set
func seriesKey(name string, tags []string) uint64 {
	sorted := make([]string, len(tags))
	copy(sorted, tags)
	sort.Strings(sorted)

	return xxhash.Sum64String(name + "|" + strings.Join(sorted, ","))
}

func hasTags(tags, required []string) bool {
	for _, tag := range required {
		if !slices.Contains(tags, tag) {
			return false
		}
	}
	return true
}
