package normalize

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"macrodash/internal/collector"
	"macrodash/internal/model"
)

// FailureKind classifies a per-instrument failure.
type FailureKind string

const (
	FailProviderUnavailable FailureKind = "provider_unavailable"
	FailPriceCoercion       FailureKind = "price_coercion"
	FailZeroBaseline        FailureKind = "zero_baseline"
)

// Outcome is the per-instrument result of a batch run: either a
// normalized series (Kind empty) or a structured failure. Raw bars are
// kept on zero-baseline failures so non-normalized consumers still work.
type Outcome struct {
	Series model.NormalizedSeries
	Kind   FailureKind
	Err    error
}

// OK reports whether the instrument normalized successfully.
func (o Outcome) OK() bool { return o.Kind == "" }

// fetchConcurrency bounds parallel provider requests. Instruments have no
// data dependency on each other, so only the provider's tolerance matters.
const fetchConcurrency = 3

// NormalizeAll fetches and normalizes every instrument in the catalog
// independently. One instrument's fetch or normalization failure never
// aborts the others; the map always carries one entry per catalog label.
func NormalizeAll(ctx context.Context, fetcher collector.Fetcher, catalog model.Catalog, start time.Time) map[string]Outcome {
	results := make([]Outcome, len(catalog))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, ins := range catalog {
		i, ins := i, ins
		g.Go(func() error {
			results[i] = fetchOne(gctx, fetcher, ins, start)
			return nil
		})
	}
	g.Wait() // workers never return errors; failures live in results

	out := make(map[string]Outcome, len(catalog))
	for i, ins := range catalog {
		out[ins.Label] = results[i]
	}
	return out
}

func fetchOne(ctx context.Context, fetcher collector.Fetcher, ins model.Instrument, start time.Time) Outcome {
	bars, err := fetcher.FetchDailySeries(ctx, ins.Symbol, start)
	if err != nil {
		log.Printf("[WARN] fetch %s (%s): %v", ins.Label, ins.Symbol, err)
		return Outcome{Kind: FailProviderUnavailable, Err: err}
	}
	raw := model.RawSeries{
		Label:     ins.Label,
		Symbol:    ins.Symbol,
		Bars:      bars,
		FetchedAt: time.Now(),
	}
	norm, err := Normalize(raw)
	if err != nil {
		log.Printf("[WARN] normalize %s: %v", ins.Label, err)
		out := Outcome{Kind: classify(err), Err: err}
		if errors.Is(err, ErrZeroBaseline) {
			out.Series = model.NormalizedSeries{RawSeries: raw}
		}
		return out
	}
	return Outcome{Series: norm}
}

func classify(err error) FailureKind {
	switch {
	case errors.Is(err, ErrZeroBaseline):
		return FailZeroBaseline
	case errors.Is(err, ErrPriceCoercion):
		return FailPriceCoercion
	default:
		return FailProviderUnavailable
	}
}
