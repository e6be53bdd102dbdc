package ingest

import (
	"errors"
	"strings"
	"testing"

	"github.com/nicktill/covexport/pkg/sdk/metrics"
)

func TestValidateSeries(t *testing.T) {
	valid := metrics.Gauge("coverage.totals.lines.count", 1, 1)

	manyTags := make([]string, MaxTagsPerSeries+1)
	for i := range manyTags {
		manyTags[i] = "k:v"
	}

	tests := []struct {
		name    string
		mutate  func(s *metrics.Series)
		wantErr error
	}{
		{"valid", func(s *metrics.Series) {}, nil},
		{"untyped", func(s *metrics.Series) { s.Type = "" }, nil},
		{"count type", func(s *metrics.Series) { s.Type = metrics.CountType }, nil},
		{"empty name", func(s *metrics.Series) { s.Metric = "" }, ErrMetricNameEmpty},
		{"long name", func(s *metrics.Series) { s.Metric = strings.Repeat("a", MaxMetricNameLength+1) }, ErrMetricNameTooLong},
		{"unknown type", func(s *metrics.Series) { s.Type = "histogram" }, ErrUnknownType},
		{"no points", func(s *metrics.Series) { s.Points = nil }, ErrNoPoints},
		{"too many points", func(s *metrics.Series) { s.Points = make([]metrics.Point, MaxPointsPerSeries+1) }, ErrTooManyPoints},
		{"too many tags", func(s *metrics.Series) { s.Tags = manyTags }, ErrTooManyTags},
		{"long tag", func(s *metrics.Series) { s.Tags = []string{"k:" + strings.Repeat("v", MaxTagLength)} }, ErrTagTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)

			err := ValidateSeries(s)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidateSeries() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateSeries() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
