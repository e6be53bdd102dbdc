package ingest

import (
	"fmt"

	"github.com/nicktill/covexport/pkg/sdk/metrics"
)

// Validation limits
const (
	// Per-series limits
	MaxTagsPerSeries    = 20  // Maximum tags per series
	MaxTagLength        = 200 // Maximum length of a single key:value tag
	MaxMetricNameLength = 200 // Maximum metric name length
	MaxPointsPerSeries  = 100 // Maximum points per series

	// Per-request limits
	MaxSeriesPerRequest = 10000 // Maximum series in a single submission
)

var (
	// ErrMetricNameEmpty is returned when a series has no metric name
	ErrMetricNameEmpty = fmt.Errorf("metric name cannot be empty")

	// ErrMetricNameTooLong is returned when a metric name is too long
	ErrMetricNameTooLong = fmt.Errorf("metric name too long (max %d chars)", MaxMetricNameLength)

	// ErrNoPoints is returned when a series carries no point
	ErrNoPoints = fmt.Errorf("series has no points")

	// ErrTooManyPoints is returned when a series carries too many points
	ErrTooManyPoints = fmt.Errorf("too many points (max %d)", MaxPointsPerSeries)

	// ErrTooManyTags is returned when a series has too many tags
	ErrTooManyTags = fmt.Errorf("too many tags (max %d)", MaxTagsPerSeries)

	// ErrTagTooLong is returned when a tag is too long
	ErrTagTooLong = fmt.Errorf("tag too long (max %d chars)", MaxTagLength)

	// ErrUnknownType is returned for types other than gauge, count and rate
	ErrUnknownType = fmt.Errorf("unknown metric type")

	// ErrTooManySeries is returned when a submission contains too many series
	ErrTooManySeries = fmt.Errorf("too many series in request (max %d)", MaxSeriesPerRequest)
)

// ValidateSeries checks a series against the intake limits
func ValidateSeries(s metrics.Series) error {
	if s.Metric == "" {
		return ErrMetricNameEmpty
	}
	if len(s.Metric) > MaxMetricNameLength {
		return fmt.Errorf("%w: %q has %d chars", ErrMetricNameTooLong, s.Metric, len(s.Metric))
	}

	switch s.Type {
	case "", metrics.GaugeType, metrics.CountType, metrics.RateType:
	default:
		return fmt.Errorf("%w %q for metric %q", ErrUnknownType, s.Type, s.Metric)
	}

	if len(s.Points) == 0 {
		return fmt.Errorf("%w: metric %q", ErrNoPoints, s.Metric)
	}
	if len(s.Points) > MaxPointsPerSeries {
		return fmt.Errorf("%w: metric %q has %d points", ErrTooManyPoints, s.Metric, len(s.Points))
	}

	if len(s.Tags) > MaxTagsPerSeries {
		return fmt.Errorf("%w: metric %q has %d tags", ErrTooManyTags, s.Metric, len(s.Tags))
	}
	for _, tag := range s.Tags {
		if len(tag) > MaxTagLength {
			return fmt.Errorf("%w: tag in metric %q has %d chars", ErrTagTooLong, s.Metric, len(tag))
		}
	}

	return nil
}
