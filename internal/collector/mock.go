package collector

import (
	"context"
	"time"

	"macrodash/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	// Series maps symbol to the bars to return. Symbols without an entry
	// get a generated drifting series.
	Series map[string][]model.Bar
	// Errs maps symbol to a forced fetch error.
	Errs map[string]error
	// BasePrice seeds the generated series. Zero means 100.
	BasePrice float64
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailySeries(_ context.Context, symbol string, start time.Time) ([]model.Bar, error) {
	if err, ok := m.Errs[symbol]; ok {
		return nil, err
	}
	if bars, ok := m.Series[symbol]; ok {
		return bars, nil
	}
	base := m.BasePrice
	if base == 0 {
		base = 100
	}
	days := int(time.Since(start).Hours() / 24)
	if days < 2 {
		days = 2
	}
	bars := make([]model.Bar, days)
	for i := 0; i < days; i++ {
		bars[i] = model.Bar{
			Time:  start.AddDate(0, 0, i),
			Close: base * (1 + float64(i-days/2)*0.001),
		}
	}
	return bars, nil
}
