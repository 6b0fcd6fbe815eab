package secrets_test

import (
	"testing"

	"github.com/rcoelho/B3-Portfolio-Backend/internal/secrets"
)

// TestBoxRoundTrip verifies that a value survives encrypt and decrypt, and
// that the ciphertext never carries the plaintext.
func TestBoxRoundTrip(t *testing.T) {
	box, err := secrets.NewRandomBox()
	if err != nil {
		t.Fatalf("NewRandomBox failed: %v", err)
	}

	token, err := box.Encrypt("provider-token-123")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if token == "provider-token-123" {
		t.Fatal("token must not equal the plaintext")
	}

	value, err := box.Decrypt(token)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if value != "provider-token-123" {
		t.Errorf("value = %q, want the original plaintext", value)
	}
}

// TestBoxRejectsForeignToken asserts that a token from another key fails
// verification instead of decrypting to garbage.
func TestBoxRejectsForeignToken(t *testing.T) {
	box, err := secrets.NewRandomBox()
	if err != nil {
		t.Fatalf("NewRandomBox failed: %v", err)
	}
	other, err := secrets.NewRandomBox()
	if err != nil {
		t.Fatalf("NewRandomBox failed: %v", err)
	}

	token, err := other.Encrypt("secret")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if _, err := box.Decrypt(token); err == nil {
		t.Fatal("expected an error for a token signed with another key")
	}
}

// TestNewBoxRejectsBadKey verifies key validation at startup.
func TestNewBoxRejectsBadKey(t *testing.T) {
	if _, err := secrets.NewBox("not-a-key"); err == nil {
		t.Fatal("expected an error for a malformed key")
	}
}
