package collector

import (
	"context"
	"time"

	"macrodash/internal/model"
)

// Fetcher defines the interface for fetching daily close series from a
// market-data provider.
type Fetcher interface {
	// FetchDailySeries returns the daily bars for symbol from start until
	// today, ordered ascending by time. A nil or empty slice with a nil
	// error is a valid "no data" result.
	FetchDailySeries(ctx context.Context, symbol string, start time.Time) ([]model.Bar, error)
	Name() string
}
