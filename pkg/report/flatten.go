package report

import (
	"iter"
	"slices"

	"github.com/nicktill/covexport/pkg/config"
	"github.com/nicktill/covexport/pkg/sdk/metrics"
)

// Series yields one gauge per statistic of the document, named
// {base}.totals.{category}.{field}. Order is entry order, then category
// order, then field order. A missing notcovered value yields no series.
func (d *Document) Series(ts int64, base string) iter.Seq[metrics.Series] {
	if base == "" {
		base = config.DefaultSeriesName
	}
	prefix := base + ".totals."

	return func(yield func(metrics.Series) bool) {
		for _, entry := range d.Entries {
			for _, c := range Categories {
				if !emitReport(prefix+c.String()+".", ts, entry.Totals.Report(c), yield) {
					return
				}
			}
		}
	}
}

// Flatten collects Series into a slice
func (d *Document) Flatten(ts int64, base string) []metrics.Series {
	out := make([]metrics.Series, 0, d.PointCount())
	return slices.AppendSeq(out, d.Series(ts, base))
}

// PointCount returns the number of series Flatten produces
func (d *Document) PointCount() int {
	n := 0
	for _, entry := range d.Entries {
		for _, c := range Categories {
			n += 3
			if entry.Totals.Report(c).NotCovered.Present() {
				n++
			}
		}
	}
	return n
}

func emitReport(prefix string, ts int64, r Report, yield func(metrics.Series) bool) bool {
	for _, f := range Fields {
		var value float64
		switch f {
		case FieldCount:
			value = float64(r.Count)
		case FieldCovered:
			value = float64(r.Covered)
		case FieldNotCovered:
			notCovered, ok := r.NotCovered.Get()
			if !ok {
				continue
			}
			value = float64(notCovered)
		case FieldPercent:
			value = r.Percent
		}
		if !yield(metrics.Gauge(prefix+f.String(), ts, value)) {
			return false
		}
	}
	return true
}
