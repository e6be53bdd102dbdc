package metrics

import (
	"encoding/json"
	"fmt"
)

// MetricType represents the type of a series as understood by the intake
type MetricType string

const (
	GaugeType MetricType = "gauge"
	CountType MetricType = "count"
	RateType  MetricType = "rate"
)

// Point is a single (epoch-seconds, value) observation.
// On the wire it is encoded as a two element array: [timestamp, value].
type Point struct {
	Timestamp int64
	Value     float64
}

// MarshalJSON encodes the point as [timestamp, value]
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{float64(p.Timestamp), p.Value})
}

// UnmarshalJSON decodes a [timestamp, value] pair
func (p *Point) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("invalid point: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("invalid point: expected [timestamp, value], got %d elements", len(pair))
	}
	p.Timestamp = int64(pair[0])
	p.Value = pair[1]
	return nil
}

// Series represents one named, tagged series submitted to the intake
type Series struct {
	Metric   string     `json:"metric"`
	Type     MetricType `json:"type,omitempty"`
	Points   []Point    `json:"points"`
	Tags     []string   `json:"tags,omitempty"`
	Host     string     `json:"host,omitempty"`
	Interval int64      `json:"interval,omitempty"`
}

// Payload is the request body of a series submission
type Payload struct {
	Series []Series `json:"series"`
}
