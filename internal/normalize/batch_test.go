package normalize

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"macrodash/internal/collector"
	"macrodash/internal/model"
)

var testCatalog = model.Catalog{
	{Label: "Equities", Symbol: "EQ"},
	{Label: "Rates", Symbol: "RT"},
	{Label: "Gold", Symbol: "AU"},
}

func bars(closes ...float64) []model.Bar {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]model.Bar, len(closes))
	for i, c := range closes {
		out[i] = model.Bar{Time: base.AddDate(0, 0, i), Close: c}
	}
	return out
}

func TestNormalizeAll_BatchIsolation(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Series: map[string][]model.Bar{
			"EQ": bars(100, 110),
			"AU": bars(2000, 2100),
		},
		Errs: map[string]error{
			"RT": errors.New("connection refused"),
		},
	}
	start := time.Now().AddDate(-1, 0, 0)
	outcomes := NormalizeAll(context.Background(), fetcher, testCatalog, start)

	if len(outcomes) != len(testCatalog) {
		t.Fatalf("expected %d outcomes, got %d", len(testCatalog), len(outcomes))
	}
	if !outcomes["Equities"].OK() {
		t.Errorf("Equities should succeed: %v", outcomes["Equities"].Err)
	}
	if !outcomes["Gold"].OK() {
		t.Errorf("Gold should succeed: %v", outcomes["Gold"].Err)
	}
	rt := outcomes["Rates"]
	if rt.OK() {
		t.Fatal("Rates should fail")
	}
	if rt.Kind != FailProviderUnavailable {
		t.Errorf("expected provider_unavailable, got %s", rt.Kind)
	}
}

func TestNormalizeAll_ZeroBaselineKeepsRawView(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Series: map[string][]model.Bar{
			"EQ": bars(0, 5, 10),
			"RT": bars(4.2, 4.3),
			"AU": bars(2000, 2100),
		},
	}
	outcomes := NormalizeAll(context.Background(), fetcher, testCatalog, time.Now().AddDate(-1, 0, 0))

	eq := outcomes["Equities"]
	if eq.OK() {
		t.Fatal("zero-baseline instrument should be a failure")
	}
	if eq.Kind != FailZeroBaseline {
		t.Errorf("expected zero_baseline, got %s", eq.Kind)
	}
	if len(eq.Series.Bars) != 3 {
		t.Errorf("raw bars should survive a zero-baseline failure, got %d", len(eq.Series.Bars))
	}
	if eq.Series.PctChange != nil {
		t.Error("pct column must be absent on zero-baseline failure")
	}
}

func TestNormalizeAll_EmptySeriesIsNotFailure(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Series: map[string][]model.Bar{
			"EQ": {},
			"RT": bars(4.2, 4.3),
			"AU": bars(2000, 2100),
		},
	}
	outcomes := NormalizeAll(context.Background(), fetcher, testCatalog, time.Now().AddDate(-1, 0, 0))

	eq := outcomes["Equities"]
	if !eq.OK() {
		t.Fatalf("empty series must not be a failure: %v", eq.Err)
	}
	if !eq.Series.Empty() {
		t.Error("expected empty series")
	}
}

func TestNormalizeAll_ContentIndependentOfExecutionOrder(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Series: map[string][]model.Bar{
			"EQ": bars(100, 110, 90),
			"RT": bars(4.0, 4.4),
			"AU": bars(2000, 1900),
		},
	}
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	first := NormalizeAll(context.Background(), fetcher, testCatalog, start)
	second := NormalizeAll(context.Background(), fetcher, testCatalog, start)
	for label := range first {
		if !reflect.DeepEqual(first[label].Series.PctChange, second[label].Series.PctChange) {
			t.Errorf("%s: pct differs across runs", label)
		}
	}
}
