package snapshot

import (
	"errors"
	"testing"
	"time"

	"macrodash/internal/model"
	"macrodash/internal/normalize"
)

var testCatalog = model.Catalog{
	{Label: "Equities", Symbol: "EQ"},
	{Label: "Rates", Symbol: "RT"},
	{Label: "Vol", Symbol: "VX"},
}

func normSeries(label, symbol string, closes ...float64) normalize.Outcome {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, len(closes))
	for i, c := range closes {
		bars[i] = model.Bar{Time: base.AddDate(0, 0, i), Close: c}
	}
	norm, err := normalize.Normalize(model.RawSeries{Label: label, Symbol: symbol, Bars: bars})
	if err != nil {
		panic(err)
	}
	return normalize.Outcome{Series: norm}
}

func TestBuild_MetricRows(t *testing.T) {
	outcomes := map[string]normalize.Outcome{
		"Equities": normSeries("Equities", "EQ", 100, 110, 108),
		"Rates":    normSeries("Rates", "RT", 4.0, 4.4),
		"Vol":      {Kind: normalize.FailProviderUnavailable, Err: errors.New("timeout")},
	}
	snap := Build(testCatalog, outcomes, "Rates")

	if len(snap.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(snap.Rows))
	}
	eq := snap.Rows[0]
	if !eq.Available {
		t.Fatal("Equities row should be available")
	}
	if eq.Latest != 108 {
		t.Errorf("expected latest 108, got %v", eq.Latest)
	}
	if eq.Delta != -2 {
		t.Errorf("expected delta -2, got %v", eq.Delta)
	}
	vol := snap.Rows[2]
	if vol.Available {
		t.Fatal("failed instrument must render N/A")
	}
	if vol.Reason != string(normalize.FailProviderUnavailable) {
		t.Errorf("unexpected reason %q", vol.Reason)
	}
	if snap.Outage {
		t.Error("partial failure must not flag an outage")
	}
}

func TestBuild_SingleBarIsNA(t *testing.T) {
	outcomes := map[string]normalize.Outcome{
		"Equities": normSeries("Equities", "EQ", 100),
		"Rates":    normSeries("Rates", "RT", 4.0, 4.4),
		"Vol":      normSeries("Vol", "VX", 15, 16),
	}
	snap := Build(testCatalog, outcomes, "Rates")
	if snap.Rows[0].Available {
		t.Fatal("a single-bar series has no delta and must render N/A")
	}
}

func TestBuild_EmptySeriesIsNA(t *testing.T) {
	outcomes := map[string]normalize.Outcome{
		"Equities": normSeries("Equities", "EQ"),
		"Rates":    normSeries("Rates", "RT", 4.0, 4.4),
		"Vol":      normSeries("Vol", "VX", 15, 16),
	}
	snap := Build(testCatalog, outcomes, "Rates")
	if snap.Rows[0].Available {
		t.Fatal("an empty series must render N/A")
	}
	if _, ok := snap.Pct["Equities"]; ok {
		t.Error("empty series must not contribute a pct series")
	}
}

func TestBuild_DetailSeries(t *testing.T) {
	outcomes := map[string]normalize.Outcome{
		"Equities": normSeries("Equities", "EQ", 100, 110),
		"Rates":    normSeries("Rates", "RT", 4.0, 4.4, 4.2),
		"Vol":      normSeries("Vol", "VX", 15, 16),
	}
	snap := Build(testCatalog, outcomes, "Rates")
	if len(snap.Detail) != 3 {
		t.Fatalf("expected 3 detail points, got %d", len(snap.Detail))
	}
	if snap.Detail[2].Value != 4.2 {
		t.Errorf("detail must carry raw closes, got %v", snap.Detail[2].Value)
	}
}

func TestBuild_DetailSurvivesZeroBaseline(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	raw := model.RawSeries{Label: "Rates", Symbol: "RT", Bars: []model.Bar{
		{Time: base, Close: 0},
		{Time: base.AddDate(0, 0, 1), Close: 4.4},
	}}
	outcomes := map[string]normalize.Outcome{
		"Equities": normSeries("Equities", "EQ", 100, 110),
		"Rates": {
			Series: model.NormalizedSeries{RawSeries: raw},
			Kind:   normalize.FailZeroBaseline,
			Err:    normalize.ErrZeroBaseline,
		},
		"Vol": normSeries("Vol", "VX", 15, 16),
	}
	snap := Build(testCatalog, outcomes, "Rates")
	if len(snap.Detail) != 2 {
		t.Fatalf("raw detail view must survive a zero-baseline failure, got %d points", len(snap.Detail))
	}
	if _, ok := snap.Pct["Rates"]; ok {
		t.Error("zero-baseline series must not contribute a pct series")
	}
}

func TestBuild_TotalOutage(t *testing.T) {
	fail := normalize.Outcome{Kind: normalize.FailProviderUnavailable, Err: errors.New("down")}
	outcomes := map[string]normalize.Outcome{
		"Equities": fail,
		"Rates":    fail,
		"Vol":      fail,
	}
	snap := Build(testCatalog, outcomes, "Rates")
	if !snap.Outage {
		t.Fatal("expected outage when every instrument failed")
	}
}
