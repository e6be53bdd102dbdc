package metrics

// Gauge builds a gauge series holding a single point.
// Gauges carry the current value; the intake must not apply delta or rate
// semantics to them.
func Gauge(name string, ts int64, value float64) Series {
	return Series{
		Metric: name,
		Type:   GaugeType,
		Points: []Point{{Timestamp: ts, Value: value}},
	}
}

// WithTags returns copies of the given series with tags attached.
// The input slice and its points are left untouched.
func WithTags(series []Series, tags []string) []Series {
	result := make([]Series, len(series))
	for i, s := range series {
		points := make([]Point, len(s.Points))
		copy(points, s.Points)
		s.Points = points

		s.Tags = make([]string, len(tags))
		copy(s.Tags, tags)

		result[i] = s
	}
	return result
}
