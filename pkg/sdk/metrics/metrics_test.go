package metrics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoint_JSON(t *testing.T) {
	data, err := json.Marshal(Point{Timestamp: 1700000000, Value: 80.5})
	require.NoError(t, err)
	require.Equal(t, `[1700000000,80.5]`, string(data))

	var p Point
	require.NoError(t, json.Unmarshal([]byte(`[1700000000, 12]`), &p))
	require.Equal(t, Point{Timestamp: 1700000000, Value: 12}, p)
}

func TestPoint_UnmarshalInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"object", `{"ts": 1}`},
		{"single element", `[1]`},
		{"three elements", `[1, 2, 3]`},
		{"string value", `[1, "x"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Point
			require.Error(t, json.Unmarshal([]byte(tt.input), &p))
		})
	}
}

func TestGauge(t *testing.T) {
	s := Gauge("coverage.totals.lines.count", 42, 100)

	require.Equal(t, "coverage.totals.lines.count", s.Metric)
	require.Equal(t, GaugeType, s.Type)
	require.Equal(t, []Point{{Timestamp: 42, Value: 100}}, s.Points)
	require.Empty(t, s.Tags)
}

func TestSeries_JSON(t *testing.T) {
	s := Gauge("a.b", 10, 1.5)
	s.Tags = []string{"branch_name:main"}

	data, err := json.Marshal(Payload{Series: []Series{s}})
	require.NoError(t, err)
	require.JSONEq(t, `{"series":[{"metric":"a.b","type":"gauge","points":[[10,1.5]],"tags":["branch_name:main"]}]}`, string(data))
}

func TestWithTags_DoesNotAlias(t *testing.T) {
	input := []Series{Gauge("a", 1, 1), Gauge("b", 1, 2)}
	tags := []string{"project_name:demo"}

	tagged := WithTags(input, tags)
	require.Len(t, tagged, 2)
	for _, s := range tagged {
		require.Equal(t, tags, s.Tags)
	}

	// Mutating the outputs must not leak into inputs or the shared tag slice
	tagged[0].Tags[0] = "changed"
	tagged[0].Points[0].Value = 99
	require.Empty(t, input[0].Tags)
	require.Equal(t, float64(1), input[0].Points[0].Value)
	require.Equal(t, "project_name:demo", tags[0])
	require.Equal(t, "project_name:demo", tagged[1].Tags[0])
}

func TestRunTags(t *testing.T) {
	tests := []struct {
		name string
		run  RunTags
		want []string
	}{
		{
			name: "no metadata",
			run:  RunTags{},
			want: []string{},
		},
		{
			name: "all metadata",
			run: RunTags{
				ProjectName:    "covexport",
				ProjectVersion: "1.2.3",
				CommitHash:     "abc123",
				BranchName:     "main",
			},
			want: []string{
				"project_name:covexport",
				"project_version:1.2.3",
				"commit_hash:abc123",
				"branch_name:main",
			},
		},
		{
			name: "partial metadata keeps order",
			run:  RunTags{BranchName: "dev", ProjectName: "api"},
			want: []string{"project_name:api", "branch_name:dev"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.run.Tags()
			require.NotNil(t, got)
			require.Equal(t, tt.want, got)
		})
	}
}
