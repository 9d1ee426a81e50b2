package collector

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrNullPrice marks a price slot the provider filled with null
// (holidays, halted sessions). Callers drop those rows.
var ErrNullPrice = errors.New("null price")

// DecodeClose reduces a provider price value to a single float64.
// Upstream API revisions have exposed the closing price as a bare number,
// a numeric string, a singleton array wrapping one of those, or an object
// with a "raw" field. All four are decoded here so the ambiguity never
// propagates past the ingestion boundary.
func DecodeClose(v interface{}) (float64, error) {
	switch n := v.(type) {
	case nil:
		return 0, ErrNullPrice
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("price %q is not numeric", n)
		}
		return f, nil
	case []interface{}:
		if len(n) != 1 {
			return 0, fmt.Errorf("price array has %d elements, want 1", len(n))
		}
		return DecodeClose(n[0])
	case map[string]interface{}:
		raw, ok := n["raw"]
		if !ok {
			return 0, fmt.Errorf("price object has no raw field")
		}
		return DecodeClose(raw)
	default:
		return 0, fmt.Errorf("unsupported price type %T", v)
	}
}

// decodeCloseOrNaN is the row-level policy: a null drops the row via
// ErrNullPrice, any other coercion failure yields NaN so the series keeps
// its row count and the normalizer can report the instrument.
func decodeCloseOrNaN(v interface{}) (float64, error) {
	f, err := DecodeClose(v)
	if err != nil {
		if errors.Is(err, ErrNullPrice) {
			return 0, err
		}
		return math.NaN(), nil
	}
	return f, nil
}
