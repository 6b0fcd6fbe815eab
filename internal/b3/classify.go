package b3

import (
	"strings"

	"github.com/rcoelho/B3-Portfolio-Backend/internal/model"
)

// fixedIncomeKeywords in subtype priority order. TESOURO wins over the bank
// products; anything else in the set maps to subtype OTHER.
var fixedIncomeKeywords = []string{"TESOURO", "LCI", "LCA", "CDB", "RDB", "DEBENTURE", "CRI", "CRA"}

var fixedIncomeSubtypes = map[string]bool{
	"TESOURO": true, "LCI": true, "LCA": true, "CDB": true, "RDB": true,
}

// etfPrefixes are the ticker roots of B3-listed index funds. Symbols ending
// in "11" default to real-estate funds unless they match one of these or the
// product name says otherwise.
var etfPrefixes = []string{
	"BOVA", "BOVV", "BOVB", "BRAX", "DIVO", "ECOO", "FIND", "GOLD",
	"HASH", "IMAB", "ISUS", "IVVB", "MATB", "NASD", "PIBB", "SMAL",
	"SMAC", "SPXI", "XINA", "WRLD",
}

// Classify infers the asset class and subtype of a canonical symbol, with an
// optional product-name hint. It is total: every input classifies, ambiguous
// symbols fall through to common equity.
func Classify(ticker, productName string) (assetClass, assetType string) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	hint := strings.ToUpper(productName)

	for _, kw := range fixedIncomeKeywords {
		if strings.Contains(ticker, kw) || strings.Contains(hint, kw) {
			if fixedIncomeSubtypes[kw] {
				return model.AssetClassFixedIncome, kw
			}
			return model.AssetClassFixedIncome, "OTHER"
		}
	}

	if ticker == "" {
		return model.AssetClassEquity, "ON"
	}

	if strings.HasSuffix(ticker, "11") {
		if hasETFPrefix(ticker) || strings.Contains(hint, "ETF") ||
			strings.Contains(hint, "INDX") || strings.Contains(hint, "INDEX") {
			return model.AssetClassETF, "ETF"
		}
		return model.AssetClassRealEstateFund, "FII"
	}

	switch ticker[len(ticker)-1:] {
	case "3", "5", "7", "9":
		return model.AssetClassEquity, "ON"
	case "4", "6", "8":
		return model.AssetClassEquity, "PN"
	}
	return model.AssetClassEquity, "ON"
}

func hasETFPrefix(ticker string) bool {
	for _, p := range etfPrefixes {
		if strings.HasPrefix(ticker, p) {
			return true
		}
	}
	return false
}
