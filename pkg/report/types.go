package report

// Document is a parsed coverage summary export.
// It is built once by Parse and never mutated afterwards.
type Document struct {
	Entries []Entry
	Kind    string
	Version string
}

// Entry is one unit of coverage (an export or a module)
type Entry struct {
	Totals Totals
}

// Totals holds the report of each coverage category
type Totals struct {
	Branches       Report
	Functions      Report
	Instantiations Report
	Lines          Report
	Regions        Report
}

// Report returns the report of the given category
func (t Totals) Report(c Category) Report {
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
	panic("report: unknown category " + c.String())
}

// Report is a single coverage statistic.
// Covered <= Count and Percent in [0, 100] are expected but not enforced.
type Report struct {
	Count      uint64
	Covered    uint64
	NotCovered Optional[uint64]
	Percent    float64
}

// Category is one of the fixed coverage categories
type Category int

const (
	Branches Category = iota
	Functions
	Instantiations
	Lines
	Regions
)

// Categories lists every category in emission order
var Categories = [...]Category{Branches, Functions, Instantiations, Lines, Regions}

func (c Category) String() string {
	switch c {
	case Branches:
		return "branches"
	case Functions:
		return "functions"
	case Instantiations:
		return "instantiations"
	case Lines:
		return "lines"
	case Regions:
		return "regions"
	default:
		return "unknown"
	}
}

// Field is one of the statistics emitted for a category
type Field int

const (
	FieldCount Field = iota
	FieldCovered
	FieldNotCovered
	FieldPercent
)

// Fields lists every field in emission order
var Fields = [...]Field{FieldCount, FieldCovered, FieldNotCovered, FieldPercent}

func (f Field) String() string {
	switch f {
	case FieldCount:
		return "count"
	case FieldCovered:
		return "covered"
	case FieldNotCovered:
		return "notcovered"
	case FieldPercent:
		return "percent"
	default:
		return "unknown"
	}
}

// Optional holds a value that may be absent from the input
type Optional[T any] struct {
	value T
	ok    bool
}

// Some returns a present optional
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

// None returns an absent optional
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

// Present reports whether the value was supplied
func (o Optional[T]) Present() bool {
	return o.ok
}
