package report

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const fullReport = `{
	"type": "llvm.coverage.json.export",
	"version": "2.0.1",
	"data": [{
		"files": [{"filename": "src/main.rs"}],
		"totals": {
			"branches":       {"count": 10,  "covered": 8,  "notcovered": 2,  "percent": 80},
			"functions":      {"count": 4,   "covered": 3,  "percent": 75},
			"instantiations": {"count": 6,   "covered": 6,  "percent": 100},
			"lines":          {"count": 100, "covered": 80, "notcovered": 20, "percent": 80.0},
			"regions":        {"count": 20,  "covered": 15, "notcovered": 5,  "percent": 75}
		}
	}]
}`

func TestParse_Valid(t *testing.T) {
	doc, err := Parse([]byte(fullReport))
	require.NoError(t, err)

	require.Equal(t, "llvm.coverage.json.export", doc.Kind)
	require.Equal(t, "2.0.1", doc.Version)
	require.Len(t, doc.Entries, 1)

	lines := doc.Entries[0].Totals.Lines
	require.Equal(t, uint64(100), lines.Count)
	require.Equal(t, uint64(80), lines.Covered)
	require.Equal(t, 80.0, lines.Percent)
	notCovered, ok := lines.NotCovered.Get()
	require.True(t, ok)
	require.Equal(t, uint64(20), notCovered)

	require.False(t, doc.Entries[0].Totals.Functions.NotCovered.Present())
	require.Equal(t, uint64(6), doc.Entries[0].Totals.Report(Instantiations).Count)
}

func TestParse_KindAndVersionNotValidated(t *testing.T) {
	input := strings.Replace(fullReport, "llvm.coverage.json.export", "something.else", 1)
	input = strings.Replace(input, "2.0.1", "99", 1)

	doc, err := Parse([]byte(input))
	require.NoError(t, err)
	require.Equal(t, "something.else", doc.Kind)
	require.Equal(t, "99", doc.Version)
}

func TestParse_InconsistentValuesPassThrough(t *testing.T) {
	input := strings.Replace(fullReport,
		`{"count": 100, "covered": 80, "notcovered": 20, "percent": 80.0}`,
		`{"count": 10, "covered": 80, "notcovered": 0, "percent": 250.5}`, 1)

	doc, err := Parse([]byte(input))
	require.NoError(t, err)

	lines := doc.Entries[0].Totals.Lines
	require.Equal(t, uint64(10), lines.Count)
	require.Equal(t, uint64(80), lines.Covered)
	require.Equal(t, 250.5, lines.Percent)
}

func TestParse_EmptyData(t *testing.T) {
	doc, err := Parse([]byte(`{"type": "t", "version": "v", "data": []}`))
	require.NoError(t, err)
	require.Empty(t, doc.Entries)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantPath string
	}{
		{
			name:     "not json",
			input:    `{"data": [`,
			wantPath: "",
		},
		{
			name:     "missing data",
			input:    `{"type": "t", "version": "v"}`,
			wantPath: "data",
		},
		{
			name:     "null data",
			input:    `{"type": "t", "version": "v", "data": null}`,
			wantPath: "data",
		},
		{
			name:     "missing type",
			input:    `{"version": "v", "data": []}`,
			wantPath: "type",
		},
		{
			name:     "missing version",
			input:    `{"type": "t", "data": []}`,
			wantPath: "version",
		},
		{
			name:     "missing totals",
			input:    `{"type": "t", "version": "v", "data": [{}]}`,
			wantPath: "data[0].totals",
		},
		{
			name:     "missing category",
			input:    strings.Replace(fullReport, `"regions"`, `"other"`, 1),
			wantPath: "data[0].totals.regions",
		},
		{
			name:     "missing count",
			input:    strings.Replace(fullReport, `{"count": 100, `, `{`, 1),
			wantPath: "data[0].totals.lines.count",
		},
		{
			name:     "missing covered",
			input:    strings.Replace(fullReport, `"covered": 3,`, ``, 1),
			wantPath: "data[0].totals.functions.covered",
		},
		{
			name:     "missing percent",
			input:    strings.Replace(fullReport, `"percent": 100}`, `"pct": 100}`, 1),
			wantPath: "data[0].totals.instantiations.percent",
		},
		{
			name:     "negative count",
			input:    strings.Replace(fullReport, `"count": 10,`, `"count": -1,`, 1),
			wantPath: "data.totals.branches.count",
		},
		{
			name:     "string percent",
			input:    strings.Replace(fullReport, `"percent": 75}`, `"percent": "75"}`, 1),
			wantPath: "data.totals.functions.percent",
		},
		{
			name:     "data is not an array",
			input:    `{"type": "t", "version": "v", "data": {}}`,
			wantPath: "data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.input))
			require.Nil(t, doc)
			require.Error(t, err)
			require.ErrorIs(t, err, ErrMalformedReport)

			var malformed *MalformedReportError
			require.True(t, errors.As(err, &malformed))
			require.Equal(t, tt.wantPath, malformed.Path)
		})
	}
}

func TestParse_SecondEntryMalformed(t *testing.T) {
	input := `{"type": "t", "version": "v", "data": [` +
		entryJSON(true) + `, {"totals": {}}]}`

	_, err := Parse([]byte(input))
	require.ErrorIs(t, err, ErrMalformedReport)
	require.Contains(t, err.Error(), "data[1].totals.branches")
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coverage.json")
	require.NoError(t, os.WriteFile(path, []byte(fullReport), 0o644))

	doc, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, doc.Entries, 1)

	_, err = ParseFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrMalformedReport)
}
