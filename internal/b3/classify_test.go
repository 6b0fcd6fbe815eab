package b3_test

import (
	"testing"

	"github.com/rcoelho/B3-Portfolio-Backend/internal/b3"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/model"
)

// TestClassify covers the symbol-shape heuristics for every asset class.
//
// WHY: classification drives allocation buckets and decides which assets get
// market quotes, so each shape rule needs a pinned example.
func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		ticker      string
		productName string
		wantClass   string
		wantType    string
	}{
		{
			name:      "common equity ends in 3",
			ticker:    "PETR3",
			wantClass: model.AssetClassEquity,
			wantType:  "ON",
		},
		{
			name:      "preferred equity ends in 4",
			ticker:    "PETR4",
			wantClass: model.AssetClassEquity,
			wantType:  "PN",
		},
		{
			name:      "preferred equity ends in 6",
			ticker:    "ELET6",
			wantClass: model.AssetClassEquity,
			wantType:  "PN",
		},
		{
			name:      "symbol ending in 11 defaults to real-estate fund",
			ticker:    "HGLG11",
			wantClass: model.AssetClassRealEstateFund,
			wantType:  "FII",
		},
		{
			name:      "known index-fund root ending in 11",
			ticker:    "BOVA11",
			wantClass: model.AssetClassETF,
			wantType:  "ETF",
		},
		{
			name:        "product name hint promotes 11 ticker to ETF",
			ticker:      "ZZZZ11",
			productName: "ZZZZ ETF INDICE",
			wantClass:   model.AssetClassETF,
			wantType:    "ETF",
		},
		{
			name:        "fixed income from the product name",
			ticker:      "CDB BANCO XYZ",
			productName: "",
			wantClass:   model.AssetClassFixedIncome,
			wantType:    "CDB",
		},
		{
			name:        "LCI keyword in product name",
			ticker:      "",
			productName: "LCI BANCO INTER 110% CDI",
			wantClass:   model.AssetClassFixedIncome,
			wantType:    "LCI",
		},
		{
			name:        "treasury keyword wins over bank products",
			ticker:      "",
			productName: "TESOURO SELIC 2029",
			wantClass:   model.AssetClassFixedIncome,
			wantType:    "TESOURO",
		},
		{
			name:        "debenture maps to subtype OTHER",
			ticker:      "",
			productName: "DEBENTURE VALE S.A.",
			wantClass:   model.AssetClassFixedIncome,
			wantType:    "OTHER",
		},
		{
			name:      "empty ticker falls through to common equity",
			ticker:    "",
			wantClass: model.AssetClassEquity,
			wantType:  "ON",
		},
		{
			name:      "units and other suffixes default to common equity",
			ticker:    "TAEE1",
			wantClass: model.AssetClassEquity,
			wantType:  "ON",
		},
		{
			name:      "lowercase input classifies the same",
			ticker:    "petr4",
			wantClass: model.AssetClassEquity,
			wantType:  "PN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class, assetType := b3.Classify(tt.ticker, tt.productName)
			if class != tt.wantClass || assetType != tt.wantType {
				t.Errorf("Classify(%q, %q) = (%q, %q), want (%q, %q)",
					tt.ticker, tt.productName, class, assetType, tt.wantClass, tt.wantType)
			}
		})
	}
}
