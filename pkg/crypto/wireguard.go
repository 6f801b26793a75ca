package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/curve25519"
)

// KeyPair holds a WireGuard key pair, base64 encoded.
type KeyPair struct {
	PrivateKey string `json:"private_key"`
	PublicKey  string `json:"public_key"`
}

// GenerateKeyPair generates a new WireGuard key pair.
func GenerateKeyPair() (*KeyPair, error) {
	priv := make([]byte, 32)
	if _, err := rand.Read(priv); err != nil {
		return nil, fmt.Errorf("failed to read random bytes for private key: %w", err)
	}
	clampPrivateKey(priv)

	pub, err := curve25519.X25519(priv, curve25519.Basepoint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive public key: %w", err)
	}

	return &KeyPair{
		PrivateKey: base64.StdEncoding.EncodeToString(priv),
		PublicKey:  base64.StdEncoding.EncodeToString(pub),
	}, nil
}

// DerivePublicKey derives the public key for a base64-encoded private key.
func DerivePublicKey(privateKey string) (string, error) {
	priv, err := base64.StdEncoding.DecodeString(privateKey)
	if err != nil {
		return "", fmt.Errorf("private key is not valid base64: %w", err)
	}
	if len(priv) != 32 {
		return "", fmt.Errorf("private key has incorrect length: expected 32 bytes, got %d", len(priv))
	}
	clampPrivateKey(priv)

	pub, err := curve25519.X25519(priv, curve25519.Basepoint)
	if err != nil {
		return "", fmt.Errorf("failed to derive public key: %w", err)
	}

	return base64.StdEncoding.EncodeToString(pub), nil
}

// IsValidKey reports whether key looks like a WireGuard key: base64 text that
// decodes to exactly 32 bytes. Nothing beyond format well-formedness is checked.
func IsValidKey(key string) bool {
	// 32 bytes encode to 44 base64 characters.
	if len(key) != 44 {
		return false
	}
	raw, err := base64.StdEncoding.DecodeString(key)
	return err == nil && len(raw) == 32
}

// clampPrivateKey applies the clamping required by the WireGuard spec.
func clampPrivateKey(key []byte) {
	key[0] &= 248
	key[31] &= 127
	key[31] |= 64
}
