package service_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rcoelho/B3-Portfolio-Backend/internal/apperrors"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/model"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/testutil"
)

// TestGetQuote covers the read-through cache around the provider.
//
// WHY: the cache bounds provider traffic. A fresh entry must short-circuit
// the provider entirely, a stale one must refresh, and a provider outage
// must degrade to the stale quote instead of an error.
func TestGetQuote(t *testing.T) {
	t.Run("FreshCacheHitSkipsProvider", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		client := testutil.NewMockQuoteClient(map[string]float64{"PETR4": 40.0})
		svc := testutil.NewTestQuoteService(t, db, client)

		testutil.NewQuote("PETR4").WithPrice(38.0).UpdatedAgo(5 * time.Minute).Build(t, db)

		quote, err := svc.GetQuote("PETR4")
		if err != nil {
			t.Fatalf("GetQuote failed: %v", err)
		}
		if quote.Price != 38.0 {
			t.Errorf("price = %v, want cached 38.0", quote.Price)
		}
		if client.Calls() != 0 {
			t.Errorf("provider calls = %d, want 0 for a fresh cache hit", client.Calls())
		}
	})

	t.Run("StaleEntryRefreshes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		client := testutil.NewMockQuoteClient(map[string]float64{"PETR4": 40.0})
		svc := testutil.NewTestQuoteService(t, db, client)

		testutil.NewQuote("PETR4").WithPrice(38.0).UpdatedAgo(20 * time.Minute).Build(t, db)

		quote, err := svc.GetQuote("PETR4")
		if err != nil {
			t.Fatalf("GetQuote failed: %v", err)
		}
		if quote.Price != 40.0 {
			t.Errorf("price = %v, want refreshed 40.0", quote.Price)
		}
		if client.Calls() != 1 {
			t.Errorf("provider calls = %d, want 1", client.Calls())
		}

		// The refreshed quote is cached for the next caller.
		cached, err := svc.ListCachedQuotes()
		if err != nil {
			t.Fatalf("ListCachedQuotes failed: %v", err)
		}
		if len(cached) != 1 || cached[0].Price != 40.0 {
			t.Errorf("cache not updated: %+v", cached)
		}
	})

	t.Run("ProviderFailureServesStale", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		client := testutil.NewMockQuoteClient(nil).WithError(fmt.Errorf("provider down"))
		svc := testutil.NewTestQuoteService(t, db, client)

		testutil.NewQuote("PETR4").WithPrice(38.0).UpdatedAgo(2 * time.Hour).Build(t, db)

		quote, err := svc.GetQuote("PETR4")
		if err != nil {
			t.Fatalf("GetQuote should serve the stale quote, got %v", err)
		}
		if quote.Price != 38.0 {
			t.Errorf("price = %v, want stale 38.0", quote.Price)
		}
	})

	t.Run("ProviderFailureWithoutCacheErrors", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		client := testutil.NewMockQuoteClient(nil)
		svc := testutil.NewTestQuoteService(t, db, client)

		_, err := svc.GetQuote("NOPE3")
		if !errors.Is(err, apperrors.ErrQuoteUnavailable) {
			t.Fatalf("expected ErrQuoteUnavailable, got %v", err)
		}
	})
}

// TestGetBatchQuotes covers the batch path: the size cap and per-ticker
// failure isolation.
func TestGetBatchQuotes(t *testing.T) {
	t.Run("ResolvesAllTickers", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		client := testutil.NewMockQuoteClient(map[string]float64{
			"PETR4": 40.0, "VALE3": 62.0, "ITSA4": 9.8,
		})
		svc := testutil.NewTestQuoteService(t, db, client)

		quotes, err := svc.GetBatchQuotes([]string{"PETR4", "VALE3", "ITSA4"})
		if err != nil {
			t.Fatalf("GetBatchQuotes failed: %v", err)
		}
		if len(quotes) != 3 {
			t.Fatalf("expected 3 quotes, got %d", len(quotes))
		}
	})

	t.Run("FailingTickersAreOmitted", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		client := testutil.NewMockQuoteClient(map[string]float64{"PETR4": 40.0})
		svc := testutil.NewTestQuoteService(t, db, client)

		quotes, err := svc.GetBatchQuotes([]string{"PETR4", "UNKNOWN11"})
		if err != nil {
			t.Fatalf("GetBatchQuotes failed: %v", err)
		}
		if len(quotes) != 1 {
			t.Fatalf("expected 1 quote, got %d", len(quotes))
		}
		if quotes[0].Ticker != "PETR4" {
			t.Errorf("ticker = %q, want PETR4", quotes[0].Ticker)
		}
	})

	t.Run("RejectsOversizedBatch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		client := testutil.NewMockQuoteClient(nil)
		svc := testutil.NewTestQuoteService(t, db, client)

		tickers := make([]string, 51)
		for i := range tickers {
			tickers[i] = fmt.Sprintf("TICK%d", i)
		}
		_, err := svc.GetBatchQuotes(tickers)
		if !errors.Is(err, apperrors.ErrBatchTooLarge) {
			t.Fatalf("expected ErrBatchTooLarge, got %v", err)
		}
	})
}

// TestRefreshAll verifies the scheduled refresh: it targets held assets,
// bypasses the TTL and reports how many quotes were updated.
func TestRefreshAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	client := testutil.NewMockQuoteClient(map[string]float64{"PETR4": 41.0, "HGLG11": 162.0})
	svc := testutil.NewTestQuoteService(t, db, client)

	held := testutil.NewAsset().WithTicker("PETR4").Build(t, db)
	testutil.NewOperation(held.ID).WithQuantity(100).Build(t, db)

	fii := testutil.NewAsset().WithTicker("HGLG11").
		WithClass(model.AssetClassRealEstateFund, "FII").Build(t, db)
	testutil.NewOperation(fii.ID).WithQuantity(20).Build(t, db)

	unpriced := testutil.NewAsset().WithTicker("FAIL3").Build(t, db)
	testutil.NewOperation(unpriced.ID).WithQuantity(10).Build(t, db)

	// Fresh cache entry: RefreshAll must still hit the provider.
	testutil.NewQuote("PETR4").WithPrice(38.0).UpdatedAgo(time.Minute).Build(t, db)

	updated, err := svc.RefreshAll()
	if err != nil {
		t.Fatalf("RefreshAll failed: %v", err)
	}
	if updated != 2 {
		t.Errorf("updated = %d, want 2 (FAIL3 has no provider quote)", updated)
	}

	quote, err := svc.GetQuote("PETR4")
	if err != nil {
		t.Fatalf("GetQuote failed: %v", err)
	}
	if quote.Price != 41.0 {
		t.Errorf("price = %v, want 41.0 after refresh", quote.Price)
	}

	// Real estate funds trade on the exchange and refresh like equities.
	fiiQuote, err := svc.GetQuote("HGLG11")
	if err != nil {
		t.Fatalf("GetQuote failed: %v", err)
	}
	if fiiQuote.Price != 162.0 {
		t.Errorf("price = %v, want 162.0 after refresh", fiiQuote.Price)
	}
}
