package service_test

import (
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/rcoelho/B3-Portfolio-Backend/internal/apperrors"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/testutil"
)

// TestProviderToken covers storing and retrieving the market-data provider
// token.
//
// WHY: the token is the one secret the application persists. It must round
// trip through encryption and never land in the database as plaintext.
func TestProviderToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestSettingService(t, db)

	t.Run("NotSetInitially", func(t *testing.T) {
		_, err := svc.GetProviderToken()
		if !errors.Is(err, apperrors.ErrSettingNotFound) {
			t.Fatalf("expected ErrSettingNotFound, got %v", err)
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		if err := svc.SetProviderToken("tok-abc-123"); err != nil {
			t.Fatalf("SetProviderToken failed: %v", err)
		}

		token, err := svc.GetProviderToken()
		if err != nil {
			t.Fatalf("GetProviderToken failed: %v", err)
		}
		if token != "tok-abc-123" {
			t.Errorf("token = %q, want tok-abc-123", token)
		}
	})

	t.Run("StoredEncrypted", func(t *testing.T) {
		var stored string
		err := db.QueryRow("SELECT value FROM setting WHERE key = 'marketdata.provider_token'").Scan(&stored)
		if errors.Is(err, sql.ErrNoRows) {
			t.Fatal("setting row not found")
		}
		if err != nil {
			t.Fatalf("query failed: %v", err)
		}
		if strings.Contains(stored, "tok-abc-123") {
			t.Error("stored value must not contain the plaintext token")
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		if err := svc.SetProviderToken("tok-new"); err != nil {
			t.Fatalf("SetProviderToken failed: %v", err)
		}
		token, err := svc.GetProviderToken()
		if err != nil {
			t.Fatalf("GetProviderToken failed: %v", err)
		}
		if token != "tok-new" {
			t.Errorf("token = %q, want tok-new", token)
		}
	})
}
