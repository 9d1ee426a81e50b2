// Package snapshot assembles the dashboard view of one batch run: the
// metric row per instrument, the comparison series, and the rates detail
// series.
package snapshot

import (
	"time"

	"macrodash/internal/model"
	"macrodash/internal/normalize"
)

// MetricRow is one slot in the live market snapshot header.
type MetricRow struct {
	Label     string  `json:"label"`
	Symbol    string  `json:"symbol"`
	Latest    float64 `json:"latest"`
	Delta     float64 `json:"delta"`
	Available bool    `json:"available"`
	Reason    string  `json:"reason,omitempty"`
}

// Point is one (timestamp, value) pair for chart consumers.
type Point struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// Snapshot is the full dashboard payload for one (catalog, start) pair.
type Snapshot struct {
	TakenAt time.Time          `json:"taken_at"`
	Rows    []MetricRow        `json:"rows"`
	Pct     map[string][]Point `json:"-"`
	Detail  []Point            `json:"-"`
	Outage  bool               `json:"outage"`
}

// Build assembles a Snapshot from batch outcomes in catalog order.
// detailLabel selects the instrument whose raw closes feed the detail
// chart (the rates proxy). Outage is set only when every instrument
// failed, the one case the dashboard surfaces as a single message.
func Build(catalog model.Catalog, outcomes map[string]normalize.Outcome, detailLabel string) Snapshot {
	snap := Snapshot{
		TakenAt: time.Now(),
		Rows:    make([]MetricRow, 0, len(catalog)),
		Pct:     make(map[string][]Point, len(catalog)),
	}

	failed := 0
	for _, ins := range catalog {
		out := outcomes[ins.Label]
		snap.Rows = append(snap.Rows, buildRow(ins, out))
		if !out.OK() {
			failed++
		}

		if out.OK() && !out.Series.Empty() {
			pts := make([]Point, len(out.Series.Bars))
			for i, b := range out.Series.Bars {
				pts[i] = Point{Time: b.Time, Value: out.Series.PctChange[i]}
			}
			snap.Pct[ins.Label] = pts
		}

		// The detail chart uses raw closes, so a zero-baseline series
		// still qualifies.
		if ins.Label == detailLabel && len(out.Series.Bars) > 0 {
			snap.Detail = make([]Point, len(out.Series.Bars))
			for i, b := range out.Series.Bars {
				snap.Detail[i] = Point{Time: b.Time, Value: b.Close}
			}
		}
	}
	snap.Outage = len(catalog) > 0 && failed == len(catalog)
	return snap
}

func buildRow(ins model.Instrument, out normalize.Outcome) MetricRow {
	row := MetricRow{Label: ins.Label, Symbol: ins.Symbol}
	if !out.OK() {
		row.Reason = string(out.Kind)
		return row
	}
	latest, ok := out.Series.Latest()
	if !ok {
		row.Reason = "no data"
		return row
	}
	prev, ok := out.Series.Previous()
	if !ok {
		row.Reason = "insufficient history"
		return row
	}
	row.Latest = latest.Close
	row.Delta = latest.Close - prev.Close
	row.Available = true
	return row
}
