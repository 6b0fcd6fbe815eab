package b3_test

import (
	"testing"

	"github.com/rcoelho/B3-Portfolio-Backend/internal/b3"
)

// TestNormalizeTicker tests the canonical symbol mapping across the
// fractional and round-lot markets.
//
// WHY: normalization is the asset identity rule. A wrong fold either splits
// one instrument into two assets or merges two distinct instruments.
func TestNormalizeTicker(t *testing.T) {
	tests := []struct {
		name   string
		symbol string
		market string
		want   string
	}{
		{
			name:   "strips trailing F on the fractional market",
			symbol: "ABEV3F",
			market: "Mercado Fracionário",
			want:   "ABEV3",
		},
		{
			name:   "accepts the unaccented market label",
			symbol: "ABEV3F",
			market: "MERCADO FRACIONARIO",
			want:   "ABEV3",
		},
		{
			name:   "keeps the symbol on the round-lot market",
			symbol: "ABEV3",
			market: "Mercado à Vista",
			want:   "ABEV3",
		},
		{
			name:   "never strips without a fractional market label",
			symbol: "ABEV3F",
			market: "Mercado à Vista",
			want:   "ABEV3F",
		},
		{
			name:   "empty market label never strips",
			symbol: "ABEV3F",
			market: "",
			want:   "ABEV3F",
		},
		{
			name:   "FII code without trailing F is untouched",
			symbol: "HFOF11",
			market: "Mercado Fracionário",
			want:   "HFOF11",
		},
		{
			name:   "FII fractional code folds to the round-lot code",
			symbol: "HFOF11F",
			market: "Mercado Fracionário",
			want:   "HFOF11",
		},
		{
			name:   "strips exactly one trailing F",
			symbol: "WEGE3FF",
			market: "Mercado Fracionário",
			want:   "WEGE3F",
		},
		{
			name:   "single letter F survives",
			symbol: "F",
			market: "Mercado Fracionário",
			want:   "F",
		},
		{
			name:   "uppercases and trims the raw symbol",
			symbol: "  petr4f ",
			market: "mercado fracionário",
			want:   "PETR4",
		},
		{
			name:   "empty symbol maps to empty",
			symbol: "",
			market: "Mercado Fracionário",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b3.NormalizeTicker(tt.symbol, tt.market)
			if got != tt.want {
				t.Errorf("NormalizeTicker(%q, %q) = %q, want %q", tt.symbol, tt.market, got, tt.want)
			}
		})
	}
}

// TestNormalizeTicker_Idempotent verifies that normalizing an already
// canonical symbol is a no-op for symbols that do not end in F.
func TestNormalizeTicker_Idempotent(t *testing.T) {
	symbols := []string{"ABEV3", "PETR4", "HFOF11", "BOVA11", "TAEE11"}

	for _, symbol := range symbols {
		once := b3.NormalizeTicker(symbol, "Mercado Fracionário")
		twice := b3.NormalizeTicker(once, "Mercado Fracionário")
		if once != twice {
			t.Errorf("normalization of %q is not idempotent: %q then %q", symbol, once, twice)
		}
	}
}
