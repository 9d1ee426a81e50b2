package normalize

import (
	"errors"
	"fmt"
	"math"

	"macrodash/internal/model"
)

// ErrZeroBaseline is returned when the first close of a series is zero,
// making percentage normalization undefined. The raw series stays usable
// for consumers that do not need the normalized view.
var ErrZeroBaseline = errors.New("zero baseline close")

// ErrPriceCoercion is returned when a close survived ingestion without a
// usable numeric value. NaN is never propagated into PctChange.
var ErrPriceCoercion = errors.New("unusable close price")

// Normalize computes the baseline-relative percentage return column for a
// raw series:
//
//	PctChange[t] = (Close[t] - Close[0]) / Close[0] * 100
//
// An empty input is a valid "no data" state and yields an empty
// NormalizedSeries with a nil error. The output bar count always equals
// the input bar count. Pure: identical input yields identical output.
func Normalize(raw model.RawSeries) (model.NormalizedSeries, error) {
	if raw.Empty() {
		return model.NormalizedSeries{RawSeries: raw}, nil
	}

	for i, b := range raw.Bars {
		if math.IsNaN(b.Close) || math.IsInf(b.Close, 0) {
			return model.NormalizedSeries{}, fmt.Errorf("bar %d: %w", i, ErrPriceCoercion)
		}
	}

	baseline := raw.Bars[0].Close
	if baseline == 0 {
		return model.NormalizedSeries{}, ErrZeroBaseline
	}

	pct := make([]float64, len(raw.Bars))
	for i, b := range raw.Bars {
		pct[i] = (b.Close - baseline) / baseline * 100
	}
	return model.NormalizedSeries{RawSeries: raw, PctChange: pct}, nil
}
