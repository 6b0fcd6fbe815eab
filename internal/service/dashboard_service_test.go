package service_test

import (
	"fmt"
	"testing"

	"github.com/rcoelho/B3-Portfolio-Backend/internal/model"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/testutil"
)

// TestGetSummary covers the portfolio-wide totals and market valuation.
//
// WHY: the summary mixes ledger aggregates with live prices. The gain math
// only holds if quoted positions use market value while everything else
// stays at cost basis.
func TestGetSummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	client := testutil.NewMockQuoteClient(map[string]float64{"PETR4": 40.0})
	svc := testutil.NewTestDashboardService(t, db, client)

	petr := testutil.NewAsset().WithTicker("PETR4").Build(t, db)
	testutil.NewOperation(petr.ID).WithQuantity(100).WithPrice(30.0).Build(t, db)

	summary, err := svc.GetSummary()
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}

	if summary.TotalAssets != 1 {
		t.Errorf("TotalAssets = %d, want 1", summary.TotalAssets)
	}
	if summary.TotalInvested != 3000.0 {
		t.Errorf("TotalInvested = %v, want 3000.0", summary.TotalInvested)
	}
	if summary.CurrentValue != 4000.0 {
		t.Errorf("CurrentValue = %v, want 4000.0 (100 shares at 40.0)", summary.CurrentValue)
	}
	if summary.TotalGain != 1000.0 {
		t.Errorf("TotalGain = %v, want 1000.0", summary.TotalGain)
	}
	if summary.TotalGainPercent != 33.33 {
		t.Errorf("TotalGainPercent = %v, want 33.33", summary.TotalGainPercent)
	}

	if len(summary.TopPositions) != 1 {
		t.Fatalf("expected 1 position, got %d", len(summary.TopPositions))
	}
	pos := summary.TopPositions[0]
	if !pos.Priced {
		t.Error("position with a quote must be flagged as priced")
	}
	if pos.CurrentValue != 4000.0 {
		t.Errorf("position CurrentValue = %v, want 4000.0", pos.CurrentValue)
	}
	if pos.AveragePrice != 30.0 {
		t.Errorf("AveragePrice = %v, want 30.0", pos.AveragePrice)
	}

	if len(summary.RecentOperations) != 1 {
		t.Errorf("expected 1 recent operation, got %d", len(summary.RecentOperations))
	}
}

// TestGetSummary_QuoteFallback asserts that positions without a quote keep
// cost basis and never fail the summary.
func TestGetSummary_QuoteFallback(t *testing.T) {
	db := testutil.SetupTestDB(t)
	client := testutil.NewMockQuoteClient(nil)
	svc := testutil.NewTestDashboardService(t, db, client)

	asset := testutil.NewAsset().WithTicker("OBSC3").Build(t, db)
	testutil.NewOperation(asset.ID).WithQuantity(50).WithPrice(10.0).Build(t, db)

	summary, err := svc.GetSummary()
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}

	if len(summary.TopPositions) != 1 {
		t.Fatalf("expected 1 position, got %d", len(summary.TopPositions))
	}
	pos := summary.TopPositions[0]
	if pos.Priced {
		t.Error("unquoted position must not be flagged as priced")
	}
	if pos.CurrentValue != 500.0 {
		t.Errorf("CurrentValue = %v, want cost basis 500.0", pos.CurrentValue)
	}
	if summary.TotalGain != 0.0 {
		t.Errorf("TotalGain = %v, want 0.0 at cost basis", summary.TotalGain)
	}
}

// TestGetSummary_FixedIncomeNotQuoted verifies that fixed-income positions
// are valued at cost basis without ever calling the provider.
func TestGetSummary_FixedIncomeNotQuoted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	client := testutil.NewMockQuoteClient(nil)
	svc := testutil.NewTestDashboardService(t, db, client)

	cdb := testutil.NewAsset().WithTicker("CDB BANCO XYZ 110").
		WithClass(model.AssetClassFixedIncome, "CDB").Build(t, db)
	testutil.NewOperation(cdb.ID).WithQuantity(1).WithPrice(5000.0).Build(t, db)

	summary, err := svc.GetSummary()
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}

	if len(summary.TopPositions) != 1 {
		t.Fatalf("expected 1 position, got %d", len(summary.TopPositions))
	}
	if summary.TopPositions[0].CurrentValue != 5000.0 {
		t.Errorf("CurrentValue = %v, want cost basis 5000.0", summary.TopPositions[0].CurrentValue)
	}
	if client.Calls() != 0 {
		t.Errorf("provider calls = %d, fixed income must not be quoted", client.Calls())
	}
}

// TestGetSummary_Allocation checks the class percentages and the top-five
// position cut.
func TestGetSummary_Allocation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	client := testutil.NewMockQuoteClient(nil)
	svc := testutil.NewTestDashboardService(t, db, client)

	equity := testutil.NewAsset().WithTicker("PETR4").Build(t, db)
	testutil.NewOperation(equity.ID).WithQuantity(100).WithPrice(30.0).Build(t, db)

	fii := testutil.NewAsset().WithTicker("HGLG11").
		WithClass(model.AssetClassRealEstateFund, "FII").Build(t, db)
	testutil.NewOperation(fii.ID).WithQuantity(10).WithPrice(100.0).Build(t, db)

	summary, err := svc.GetSummary()
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}

	if len(summary.AssetAllocation) != 2 {
		t.Fatalf("expected 2 allocation buckets, got %d", len(summary.AssetAllocation))
	}
	byClass := make(map[string]model.Allocation)
	for _, a := range summary.AssetAllocation {
		byClass[a.AssetClass] = a
	}
	if got := byClass[model.AssetClassEquity].Percentage; got != 75.0 {
		t.Errorf("equity percentage = %v, want 75.0", got)
	}
	if got := byClass[model.AssetClassRealEstateFund].Percentage; got != 25.0 {
		t.Errorf("FII percentage = %v, want 25.0", got)
	}
}

// TestGetSummary_TopPositionsLimit asserts the position list is capped at
// five entries ordered by invested value, while the portfolio totals still
// cover every open position.
//
// WHY: the displayed list is a slice, not the valuation scope. With seven
// holdings and no quotes, every one values at cost basis, so current value
// must equal total invested even though only five positions are shown.
func TestGetSummary_TopPositionsLimit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	client := testutil.NewMockQuoteClient(nil)
	svc := testutil.NewTestDashboardService(t, db, client)

	for i := 0; i < 7; i++ {
		asset := testutil.NewAsset().WithTicker(fmt.Sprintf("TST%d3", i)).Build(t, db)
		testutil.NewOperation(asset.ID).WithQuantity(int64(10 * (i + 1))).WithPrice(10.0).Build(t, db)
	}

	summary, err := svc.GetSummary()
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}

	if len(summary.TopPositions) != 5 {
		t.Fatalf("expected 5 positions, got %d", len(summary.TopPositions))
	}
	if summary.TopPositions[0].Ticker != "TST63" {
		t.Errorf("largest position = %q, want TST63", summary.TopPositions[0].Ticker)
	}
	for i := 1; i < len(summary.TopPositions); i++ {
		if summary.TopPositions[i].InvestedValue > summary.TopPositions[i-1].InvestedValue {
			t.Errorf("positions not ordered by invested value at index %d", i)
		}
	}

	if summary.TotalInvested != 2800.0 {
		t.Errorf("TotalInvested = %v, want 2800.0 across all 7 holdings", summary.TotalInvested)
	}
	if summary.CurrentValue != 2800.0 {
		t.Errorf("CurrentValue = %v, want 2800.0 covering holdings beyond the displayed five", summary.CurrentValue)
	}
	if summary.TotalGain != 0.0 {
		t.Errorf("TotalGain = %v, want 0.0 with every position at cost basis", summary.TotalGain)
	}
}
