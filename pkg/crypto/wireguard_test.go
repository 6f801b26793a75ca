package crypto

import (
	"encoding/base64"
	"testing"
)

func TestGenerateKeyPair(t *testing.T) {
	kp, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair error: %v", err)
	}
	if !IsValidKey(kp.PrivateKey) {
		t.Fatalf("generated private key is invalid: %q", kp.PrivateKey)
	}
	if !IsValidKey(kp.PublicKey) {
		t.Fatalf("generated public key is invalid: %q", kp.PublicKey)
	}

	derived, err := DerivePublicKey(kp.PrivateKey)
	if err != nil {
		t.Fatalf("DerivePublicKey error: %v", err)
	}
	if derived != kp.PublicKey {
		t.Fatalf("derived public key %q does not match generated %q", derived, kp.PublicKey)
	}
}

func TestGenerateKeyPair_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 16; i++ {
		kp, err := GenerateKeyPair()
		if err != nil {
			t.Fatalf("GenerateKeyPair error: %v", err)
		}
		if seen[kp.PublicKey] {
			t.Fatalf("duplicate public key generated: %s", kp.PublicKey)
		}
		seen[kp.PublicKey] = true
	}
}

func TestDerivePublicKey_Errors(t *testing.T) {
	if _, err := DerivePublicKey("not-base64!!"); err == nil {
		t.Fatal("expected error for invalid base64 input")
	}

	short := base64.StdEncoding.EncodeToString(make([]byte, 31))
	if _, err := DerivePublicKey(short); err == nil {
		t.Fatal("expected error for private key with incorrect length")
	}
}

func TestIsValidKey(t *testing.T) {
	valid := base64.StdEncoding.EncodeToString(make([]byte, 32))

	cases := []struct {
		name string
		key  string
		want bool
	}{
		{"valid 32-byte key", valid, true},
		{"empty", "", false},
		{"too short", "abc=", false},
		{"right length, bad characters", "!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsValidKey(tc.key); got != tc.want {
				t.Errorf("IsValidKey(%q) = %v, want %v", tc.key, got, tc.want)
			}
		})
	}
}
