package service_test

import (
	"errors"
	"testing"

	"github.com/rcoelho/B3-Portfolio-Backend/internal/apperrors"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/api/request"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/model"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/testutil"
)

// TestCreateOperation covers the manual entry path.
//
// WHY: manual entries share the asset resolution and natural-key rules with
// the importer, so a manual trade typed twice must conflict the same way a
// re-imported row does.
func TestCreateOperation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestOperationService(t, db)

	req := request.CreateOperationRequest{
		Ticker:       "WEGE3",
		MovementType: model.MovementBuy,
		Quantity:     10,
		Price:        35.50,
		TradeDate:    "2024-05-10",
		Market:       "Mercado à Vista",
		Institution:  "CORRETORA XP",
		ProductName:  "WEG ON",
	}

	op, err := svc.CreateOperation(req)
	if err != nil {
		t.Fatalf("CreateOperation failed: %v", err)
	}

	if op.Ticker != "WEGE3" {
		t.Errorf("ticker = %q, want WEGE3", op.Ticker)
	}
	if op.Source != model.SourceManual {
		t.Errorf("source = %q, want %q", op.Source, model.SourceManual)
	}
	if op.Status != model.StatusActive {
		t.Errorf("status = %q, want %q", op.Status, model.StatusActive)
	}
	if op.Value != 355.0 {
		t.Errorf("value = %v, want 355.0 computed from quantity and price", op.Value)
	}

	// The asset was created on first use and classified from the symbol.
	assetSvc := testutil.NewTestAssetService(t, db)
	asset, err := assetSvc.GetAsset(op.AssetID)
	if err != nil {
		t.Fatalf("GetAsset failed: %v", err)
	}
	if asset.AssetClass != model.AssetClassEquity || asset.AssetType != "ON" {
		t.Errorf("asset class = (%q, %q), want (EQUITY, ON)", asset.AssetClass, asset.AssetType)
	}

	t.Run("DuplicateNaturalKey", func(t *testing.T) {
		_, err := svc.CreateOperation(req)
		if !errors.Is(err, apperrors.ErrDuplicateOperation) {
			t.Fatalf("expected ErrDuplicateOperation, got %v", err)
		}
	})

	t.Run("FractionalTickerFolds", func(t *testing.T) {
		fractional := req
		fractional.Ticker = "WEGE3F"
		fractional.Market = "Mercado Fracionário"
		fractional.Quantity = 3
		fractional.TradeDate = "2024-05-11"

		op, err := svc.CreateOperation(fractional)
		if err != nil {
			t.Fatalf("CreateOperation failed: %v", err)
		}
		if op.Ticker != "WEGE3" {
			t.Errorf("ticker = %q, want folded WEGE3", op.Ticker)
		}
	})

	t.Run("BadTradeDate", func(t *testing.T) {
		bad := req
		bad.TradeDate = "10/05/2024"
		if _, err := svc.CreateOperation(bad); err == nil {
			t.Fatal("expected error for non-ISO trade date")
		}
	})
}

// TestUpdateOperation covers the supersede path: the edit cancels the
// original row and inserts a replacement.
//
// WHY: the ledger is append-only. An edit must leave the original row behind
// as CANCELLED with its fields intact, and the replacement must keep the
// original source so an edited import row still reads as imported.
func TestUpdateOperation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestOperationService(t, db)

	asset := testutil.NewAsset().WithTicker("PETR4").Build(t, db)
	original := testutil.NewOperation(asset.ID).WithQuantity(100).WithPrice(30.0).
		WithSource(model.SourceImported).Build(t, db)

	quantity := int64(150)
	updated, err := svc.UpdateOperation(original.ID, request.UpdateOperationRequest{Quantity: &quantity})
	if err != nil {
		t.Fatalf("UpdateOperation failed: %v", err)
	}

	if updated.ID == original.ID {
		t.Error("replacement should have a new ID")
	}
	if updated.Quantity != 150 {
		t.Errorf("quantity = %d, want 150", updated.Quantity)
	}
	if updated.Value != 4500.0 {
		t.Errorf("value = %v, want 4500.0 recomputed from the new quantity", updated.Value)
	}
	if updated.Source != model.SourceImported {
		t.Errorf("source = %q, replacement must keep the original source", updated.Source)
	}
	if updated.Price != 30.0 || updated.Market != original.Market {
		t.Error("unset fields must carry over from the original")
	}

	cancelled, err := svc.GetOperation(original.ID)
	if err != nil {
		t.Fatalf("GetOperation failed: %v", err)
	}
	if cancelled.Status != model.StatusCancelled {
		t.Errorf("original status = %q, want %q", cancelled.Status, model.StatusCancelled)
	}
	if cancelled.Quantity != 100 {
		t.Errorf("original quantity = %d, must stay 100", cancelled.Quantity)
	}

	t.Run("SupersededRowNotEditable", func(t *testing.T) {
		_, err := svc.UpdateOperation(original.ID, request.UpdateOperationRequest{Quantity: &quantity})
		if !errors.Is(err, apperrors.ErrOperationNotActive) {
			t.Fatalf("expected ErrOperationNotActive, got %v", err)
		}
	})

	t.Run("ValueAlwaysRecomputed", func(t *testing.T) {
		price := 32.0
		op, err := svc.UpdateOperation(updated.ID, request.UpdateOperationRequest{Price: &price})
		if err != nil {
			t.Fatalf("UpdateOperation failed: %v", err)
		}
		if op.Value != 4800.0 {
			t.Errorf("value = %v, want 4800.0 recomputed from quantity and price", op.Value)
		}
	})
}

// TestUpdateOperation_Collision asserts that an edit producing the natural
// key of another active row is rejected and rolls back the cancellation.
func TestUpdateOperation_Collision(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestOperationService(t, db)

	asset := testutil.NewAsset().WithTicker("VALE3").Build(t, db)
	first := testutil.NewOperation(asset.ID).WithQuantity(100).WithPrice(60.0).Build(t, db)
	second := testutil.NewOperation(asset.ID).WithQuantity(50).WithPrice(60.0).Build(t, db)

	// Editing the second row into the first row's key must collide.
	quantity := first.Quantity
	_, err := svc.UpdateOperation(second.ID, request.UpdateOperationRequest{Quantity: &quantity})
	if !errors.Is(err, apperrors.ErrDuplicateOperation) {
		t.Fatalf("expected ErrDuplicateOperation, got %v", err)
	}

	// The failed edit must leave the second row active.
	op, err := svc.GetOperation(second.ID)
	if err != nil {
		t.Fatalf("GetOperation failed: %v", err)
	}
	if op.Status != model.StatusActive {
		t.Errorf("status = %q, failed edit must not cancel the original", op.Status)
	}
}

// TestDeleteOperation covers the soft delete and its status guard.
func TestDeleteOperation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestOperationService(t, db)

	asset := testutil.NewAsset().WithTicker("ITSA4").Build(t, db)
	op := testutil.NewOperation(asset.ID).Build(t, db)

	if err := svc.DeleteOperation(op.ID); err != nil {
		t.Fatalf("DeleteOperation failed: %v", err)
	}

	deleted, err := svc.GetOperation(op.ID)
	if err != nil {
		t.Fatalf("GetOperation failed: %v", err)
	}
	if deleted.Status != model.StatusDeleted {
		t.Errorf("status = %q, want %q", deleted.Status, model.StatusDeleted)
	}

	t.Run("DoubleDelete", func(t *testing.T) {
		err := svc.DeleteOperation(op.ID)
		if !errors.Is(err, apperrors.ErrOperationNotActive) {
			t.Fatalf("expected ErrOperationNotActive, got %v", err)
		}
	})

	t.Run("DeletedRowExcludedFromListing", func(t *testing.T) {
		ops, err := svc.ListOperationsByAsset(asset.ID)
		if err != nil {
			t.Fatalf("ListOperationsByAsset failed: %v", err)
		}
		if len(ops) != 0 {
			t.Errorf("expected no active operations, got %d", len(ops))
		}
	})

	t.Run("UnknownOperation", func(t *testing.T) {
		err := svc.DeleteOperation(testutil.MakeID())
		if !errors.Is(err, apperrors.ErrOperationNotFound) {
			t.Fatalf("expected ErrOperationNotFound, got %v", err)
		}
	})
}

// TestListOperationsByAsset verifies the asset existence check.
func TestListOperationsByAsset_UnknownAsset(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestOperationService(t, db)

	_, err := svc.ListOperationsByAsset(testutil.MakeID())
	if !errors.Is(err, apperrors.ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound, got %v", err)
	}
}
