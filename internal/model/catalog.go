package model

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Instrument maps a display label to the provider ticker used as a proxy
// for one macro dimension.
type Instrument struct {
	Label  string `yaml:"label"`
	Symbol string `yaml:"symbol"`
}

// Catalog is the fixed, ordered set of instruments shown on the dashboard.
// It is static configuration and never mutated at runtime.
type Catalog []Instrument

// DefaultCatalog returns the six market proxies the dashboard tracks.
func DefaultCatalog() Catalog {
	return Catalog{
		{Label: "S&P 500 (Growth Proxy)", Symbol: "^GSPC"},
		{Label: "10-Year Treasury Yield (Rates)", Symbol: "^TNX"},
		{Label: "USD Index (Currency)", Symbol: "DX-Y.NYB"},
		{Label: "Gold (Inflation/Hedge)", Symbol: "GC=F"},
		{Label: "Crude Oil (Energy Costs)", Symbol: "CL=F"},
		{Label: "VIX (Volatility/Fear)", Symbol: "^VIX"},
	}
}

// Labels returns the display labels in catalog order.
func (c Catalog) Labels() []string {
	labels := make([]string, len(c))
	for i, ins := range c {
		labels[i] = ins.Label
	}
	return labels
}

// Lookup finds an instrument by label.
func (c Catalog) Lookup(label string) (Instrument, bool) {
	for _, ins := range c {
		if ins.Label == label {
			return ins, true
		}
	}
	return Instrument{}, false
}

// Hash returns a deterministic digest of the catalog contents, used as
// part of batch cache keys.
func (c Catalog) Hash() string {
	var b strings.Builder
	for _, ins := range c {
		b.WriteString(ins.Label)
		b.WriteByte('\x1f')
		b.WriteString(ins.Symbol)
		b.WriteByte('\x1e')
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:8])
}
