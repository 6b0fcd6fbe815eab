package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rcoelho/B3-Portfolio-Backend/internal/model"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/testutil"
)

func setupOperationHandler(t *testing.T) (*OperationHandler, *sql.DB) {
	db := testutil.SetupTestDB(t)
	return NewOperationHandler(testutil.NewTestOperationService(t, db)), db
}

// TestOperationsEndpoints exercises the ledger HTTP surface.
func TestOperationsEndpoints(t *testing.T) {
	t.Run("CreateOperation", func(t *testing.T) {
		handler, _ := setupOperationHandler(t)

		body := map[string]any{
			"ticker":       "PETR4F",
			"movementType": model.MovementBuy,
			"quantity":     5,
			"price":        38.50,
			"tradeDate":    "2024-05-10",
			"market":       "Mercado Fracionário",
			"institution":  "CORRETORA XP",
		}
		rec := httptest.NewRecorder()
		handler.CreateOperation(rec, testutil.NewJSONRequest(t, http.MethodPost, "/api/operation", body, nil))

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
		}
		op := testutil.DecodeJSON[model.OperationResponse](t, rec)
		if op.Ticker != "PETR4" {
			t.Errorf("ticker = %q, want folded PETR4", op.Ticker)
		}
		if op.Value != 192.5 {
			t.Errorf("value = %v, want 192.5", op.Value)
		}
		if op.Source != model.SourceManual {
			t.Errorf("source = %q, want MANUAL", op.Source)
		}
	})

	t.Run("CreateOperationValidation", func(t *testing.T) {
		handler, _ := setupOperationHandler(t)

		body := map[string]any{
			"ticker":       "PETR4",
			"movementType": "TRANSFER",
			"quantity":     5,
			"price":        38.50,
			"tradeDate":    "2024-05-10",
		}
		rec := httptest.NewRecorder()
		handler.CreateOperation(rec, testutil.NewJSONRequest(t, http.MethodPost, "/api/operation", body, nil))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400 for an unknown movement type", rec.Code)
		}
	})

	t.Run("CreateOperationDuplicate", func(t *testing.T) {
		handler, _ := setupOperationHandler(t)

		body := map[string]any{
			"ticker":       "VALE3",
			"movementType": model.MovementBuy,
			"quantity":     10,
			"price":        60.0,
			"tradeDate":    "2024-05-10",
		}
		rec := httptest.NewRecorder()
		handler.CreateOperation(rec, testutil.NewJSONRequest(t, http.MethodPost, "/api/operation", body, nil))
		if rec.Code != http.StatusCreated {
			t.Fatalf("first create failed: %d %s", rec.Code, rec.Body.String())
		}

		rec = httptest.NewRecorder()
		handler.CreateOperation(rec, testutil.NewJSONRequest(t, http.MethodPost, "/api/operation", body, nil))
		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409 on the duplicate", rec.Code)
		}
	})

	t.Run("ListPerAsset", func(t *testing.T) {
		handler, db := setupOperationHandler(t)
		asset := testutil.NewAsset().WithTicker("ITSA4").Build(t, db)
		testutil.NewOperation(asset.ID).Build(t, db)

		rec := httptest.NewRecorder()
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/operation/asset/x",
			map[string]string{"uuid": asset.ID})
		handler.OperationsPerAsset(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		ops := testutil.DecodeJSON[[]model.OperationResponse](t, rec)
		if len(ops) != 1 {
			t.Errorf("expected 1 operation, got %d", len(ops))
		}
	})

	t.Run("ListPerUnknownAsset", func(t *testing.T) {
		handler, _ := setupOperationHandler(t)

		rec := httptest.NewRecorder()
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/operation/asset/x",
			map[string]string{"uuid": testutil.MakeID()})
		handler.OperationsPerAsset(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("UpdateOperationSupersedes", func(t *testing.T) {
		handler, db := setupOperationHandler(t)
		asset := testutil.NewAsset().WithTicker("BBAS3").Build(t, db)
		original := testutil.NewOperation(asset.ID).WithQuantity(100).WithPrice(25.0).Build(t, db)

		rec := httptest.NewRecorder()
		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/operation/x",
			map[string]any{"quantity": 80},
			map[string]string{"uuid": original.ID})
		handler.UpdateOperation(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
		}
		replacement := testutil.DecodeJSON[model.OperationResponse](t, rec)
		if replacement.ID == original.ID {
			t.Error("replacement must carry a new ID")
		}
		if replacement.Quantity != 80 || replacement.Value != 2000.0 {
			t.Errorf("quantity = %d value = %v, want 80 and 2000.0", replacement.Quantity, replacement.Value)
		}

		// A second edit of the superseded row conflicts.
		rec = httptest.NewRecorder()
		req = testutil.NewJSONRequest(t, http.MethodPut, "/api/operation/x",
			map[string]any{"quantity": 90},
			map[string]string{"uuid": original.ID})
		handler.UpdateOperation(rec, req)
		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409 for a superseded row", rec.Code)
		}
	})

	t.Run("DeleteOperation", func(t *testing.T) {
		handler, db := setupOperationHandler(t)
		asset := testutil.NewAsset().WithTicker("EGIE3").Build(t, db)
		op := testutil.NewOperation(asset.ID).Build(t, db)

		rec := httptest.NewRecorder()
		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/operation/x",
			map[string]string{"uuid": op.ID})
		handler.DeleteOperation(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", rec.Code)
		}

		rec = httptest.NewRecorder()
		req = testutil.NewRequestWithURLParams(http.MethodDelete, "/api/operation/x",
			map[string]string{"uuid": op.ID})
		handler.DeleteOperation(rec, req)

		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409 on double delete", rec.Code)
		}
	})

	t.Run("GetOperationNotFound", func(t *testing.T) {
		handler, _ := setupOperationHandler(t)

		rec := httptest.NewRecorder()
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/operation/x",
			map[string]string{"uuid": testutil.MakeID()})
		handler.GetOperation(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})
}
