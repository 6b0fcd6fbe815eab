// Package secrets encrypts sensitive settings at rest. Values such as the
// market-data provider token are stored fernet-encrypted in the setting table.
package secrets

import (
	"fmt"

	"github.com/fernet/fernet-go"
)

// Box encrypts and decrypts short secret strings with a fernet key.
type Box struct {
	key *fernet.Key
}

// NewBox creates a Box from a base64-encoded fernet key, typically loaded
// from the SECRET_KEY environment variable.
func NewBox(encodedKey string) (*Box, error) {
	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("invalid secret key: %w", err)
	}
	return &Box{key: key}, nil
}

// NewRandomBox creates a Box with a freshly generated key. Used when no
// SECRET_KEY is configured; secrets encrypted with it do not survive restarts.
func NewRandomBox() (*Box, error) {
	var key fernet.Key
	if err := key.Generate(); err != nil {
		return nil, fmt.Errorf("failed to generate secret key: %w", err)
	}
	return &Box{key: &key}, nil
}

// Encrypt returns the fernet token for a plaintext value.
func (b *Box) Encrypt(value string) (string, error) {
	token, err := fernet.EncryptAndSign([]byte(value), b.key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt value: %w", err)
	}
	return string(token), nil
}

// Decrypt recovers the plaintext from a fernet token. Tokens do not expire;
// a zero TTL disables the age check.
func (b *Box) Decrypt(token string) (string, error) {
	value := fernet.VerifyAndDecrypt([]byte(token), 0, []*fernet.Key{b.key})
	if value == nil {
		return "", fmt.Errorf("failed to decrypt value: invalid token")
	}
	return string(value), nil
}
