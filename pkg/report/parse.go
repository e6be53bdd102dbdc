package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
)

// ErrMalformedReport is returned when the input does not match the expected shape
var ErrMalformedReport = errors.New("malformed coverage report")

// MalformedReportError describes which part of the input is invalid
type MalformedReportError struct {
	// Path is the JSON path of the offending field, empty for syntax errors
	Path string
	Err  error
}

func (e *MalformedReportError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %v", ErrMalformedReport, e.Err)
	}
	return fmt.Sprintf("%v: %s: %v", ErrMalformedReport, e.Path, e.Err)
}

func (e *MalformedReportError) Unwrap() []error {
	return []error{ErrMalformedReport, e.Err}
}

var errMissingField = errors.New("missing required field")

// Wire representation. Pointers distinguish absent (or null) fields from
// zero values so required fields can be enforced.
type rawDocument struct {
	Data    *[]rawEntry `json:"data"`
	Type    *string     `json:"type"`
	Version *string     `json:"version"`
}

type rawEntry struct {
	Totals *rawTotals `json:"totals"`
}

type rawTotals struct {
	Branches       *rawReport `json:"branches"`
	Functions      *rawReport `json:"functions"`
	Instantiations *rawReport `json:"instantiations"`
	Lines          *rawReport `json:"lines"`
	Regions        *rawReport `json:"regions"`
}

func (t *rawTotals) report(c Category) *rawReport {
	switch c {
	case Branches:
		return t.Branches
	case Functions:
		return t.Functions
	case Instantiations:
		return t.Instantiations
	case Lines:
		return t.Lines
	case Regions:
		return t.Regions
	}
	return nil
}

type rawReport struct {
	Count      *uint64  `json:"count"`
	Covered    *uint64  `json:"covered"`
	NotCovered *uint64  `json:"notcovered"`
	Percent    *float64 `json:"percent"`
}

// Parse decodes a coverage summary export.
// Any missing required field or type mismatch fails the whole parse.
func Parse(data []byte) (*Document, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &MalformedReportError{
				Path: typeErr.Field,
				Err:  fmt.Errorf("cannot use %s as %s", typeErr.Value, typeErr.Type),
			}
		}
		return nil, &MalformedReportError{Err: err}
	}

	if raw.Data == nil {
		return nil, missing("data")
	}
	if raw.Type == nil {
		return nil, missing("type")
	}
	if raw.Version == nil {
		return nil, missing("version")
	}

	doc := &Document{
		Entries: make([]Entry, 0, len(*raw.Data)),
		Kind:    *raw.Type,
		Version: *raw.Version,
	}
	for i, rawEntry := range *raw.Data {
		entry, err := parseEntry("data["+strconv.Itoa(i)+"]", rawEntry)
		if err != nil {
			return nil, err
		}
		doc.Entries = append(doc.Entries, entry)
	}
	return doc, nil
}

// ParseFile reads and parses the report at path
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	return Parse(data)
}

func parseEntry(path string, raw rawEntry) (Entry, error) {
	if raw.Totals == nil {
		return Entry{}, missing(path + ".totals")
	}

	var reports [len(Categories)]Report
	for i, c := range Categories {
		r, err := parseReport(path+".totals."+c.String(), raw.Totals.report(c))
		if err != nil {
			return Entry{}, err
		}
		reports[i] = r
	}

	return Entry{Totals: Totals{
		Branches:       reports[Branches],
		Functions:      reports[Functions],
		Instantiations: reports[Instantiations],
		Lines:          reports[Lines],
		Regions:        reports[Regions],
	}}, nil
}

func parseReport(path string, raw *rawReport) (Report, error) {
	if raw == nil {
		return Report{}, missing(path)
	}
	if raw.Count == nil {
		return Report{}, missing(path + ".count")
	}
	if raw.Covered == nil {
		return Report{}, missing(path + ".covered")
	}
	if raw.Percent == nil {
		return Report{}, missing(path + ".percent")
	}

	r := Report{
		Count:      *raw.Count,
		Covered:    *raw.Covered,
		NotCovered: None[uint64](),
		Percent:    *raw.Percent,
	}
	if raw.NotCovered != nil {
		r.NotCovered = Some(*raw.NotCovered)
	}
	return r, nil
}

func missing(path string) error {
	return &MalformedReportError{Path: path, Err: errMissingField}
}
