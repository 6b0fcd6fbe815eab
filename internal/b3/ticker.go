// Package b3 implements the B3-specific symbol rules: ticker normalization
// across the fractional and round-lot markets, asset classification from
// symbol shape, and parsing of the "Negociação" statement export.
package b3

import "strings"

// foldAccents maps the accented vowels found in B3 market labels to plain
// ASCII so that "Mercado Fracionário" and "MERCADO FRACIONARIO" compare equal.
var foldAccents = strings.NewReplacer(
	"Á", "A", "À", "A", "Â", "A", "Ã", "A", "Ä", "A",
	"É", "E", "È", "E", "Ê", "E", "Ë", "E",
	"Í", "I", "Ì", "I", "Î", "I", "Ï", "I",
	"Ó", "O", "Ò", "O", "Ô", "O", "Õ", "O", "Ö", "O",
	"Ú", "U", "Ù", "U", "Û", "U", "Ü", "U",
	"Ç", "C",
)

// NormalizeTicker maps a raw (symbol, market label) pair to the canonical
// symbol used as the asset identity key. Fractional-market symbols carry a
// trailing "F" (ABEV3F); the same instrument trades round lots as ABEV3.
// Exactly one trailing "F" is stripped, and only when the market label
// identifies the fractional market. An empty or unrecognized label never
// strips, so FII codes like HFOF11 are untouched.
func NormalizeTicker(rawSymbol, market string) string {
	ticker := strings.ToUpper(strings.TrimSpace(rawSymbol))

	folded := foldAccents.Replace(strings.ToUpper(strings.TrimSpace(market)))
	if !strings.Contains(folded, "FRACIONARIO") {
		return ticker
	}

	if strings.HasSuffix(ticker, "F") && len(ticker) > 1 {
		return ticker[:len(ticker)-1]
	}
	return ticker
}
