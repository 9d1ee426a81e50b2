package server

import (
	"fmt"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"macrodash/internal/snapshot"
)

const (
	chartTheme      = types.ThemeWesteros
	chartWidth      = "1100px"
	compareHeightPx = "500px"
	detailHeightPx  = "400px"
	dateLayout      = "2006-01-02"
)

// buildCompareChart overlays the normalized percentage-return series of
// the selected instruments on one category axis. Series cover different
// trading calendars, so the axis is the sorted union of their dates and
// gaps render as nulls.
func buildCompareChart(snap snapshot.Snapshot, labels []string, years int) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  chartTheme,
			Width:  chartWidth,
			Height: compareHeightPx,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Relative Performance (%d Year Lookback)", years),
			Subtitle: "Percentage change from start of period",
			Left:     "left",
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "30"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", XAxisIndex: []int{0}}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      "Pct Change (%)",
			Scale:     opts.Bool(true),
			SplitLine: &opts.SplitLine{Show: opts.Bool(true)},
		}),
	)

	axis := unionDates(snap, labels)
	line.SetXAxis(axis)

	index := make(map[string]int, len(axis))
	for i, d := range axis {
		index[d] = i
	}
	for _, label := range labels {
		pts, ok := snap.Pct[label]
		if !ok {
			continue
		}
		data := make([]opts.LineData, len(axis))
		for i := range data {
			data[i] = opts.LineData{Value: nil}
		}
		for _, p := range pts {
			if i, ok := index[p.Time.Format(dateLayout)]; ok {
				data[i] = opts.LineData{Value: p.Value}
			}
		}
		line.AddSeries(label, data,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		)
	}
	return line
}

// buildDetailChart plots the raw close series of the rates proxy as a
// filled area chart.
func buildDetailChart(snap snapshot.Snapshot, label string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  chartTheme,
			Width:  chartWidth,
			Height: detailHeightPx,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    label,
			Subtitle: "Raw close series",
			Left:     "left",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale:     opts.Bool(true),
			SplitLine: &opts.SplitLine{Show: opts.Bool(true)},
		}),
	)

	axis := make([]string, len(snap.Detail))
	data := make([]opts.LineData, len(snap.Detail))
	for i, p := range snap.Detail {
		axis[i] = p.Time.Format(dateLayout)
		data[i] = opts.LineData{Value: p.Value}
	}
	line.SetXAxis(axis)
	line.AddSeries(label, data,
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: opts.Float(0.3)}),
	)
	return line
}

func unionDates(snap snapshot.Snapshot, labels []string) []string {
	seen := make(map[string]bool)
	for _, label := range labels {
		for _, p := range snap.Pct[label] {
			seen[p.Time.Format(dateLayout)] = true
		}
	}
	dates := make([]string, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}
