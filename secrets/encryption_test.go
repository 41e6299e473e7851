package secrets

import (
	"errors"
	"strings"
	"testing"
)

func testKeys(t *testing.T, n int) []string {
	t.Helper()
	keys := make([]string, n)
	for i := range keys {
		key, err := GenerateMasterKey()
		if err != nil {
			t.Fatalf("GenerateMasterKey() error = %v", err)
		}
		keys[i] = key
	}
	return keys
}

func TestKeyring_RoundTrip(t *testing.T) {
	keyring, err := NewKeyring(testKeys(t, 1))
	if err != nil {
		t.Fatalf("NewKeyring() error = %v", err)
	}

	plaintext := "the launch code is 0000"
	ciphertext, err := keyring.Encrypt(plaintext)
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}
	if strings.Contains(string(ciphertext), plaintext) {
		t.Error("Ciphertext contains the plaintext")
	}

	decrypted, err := keyring.Decrypt(ciphertext)
	if err != nil {
		t.Fatalf("Decrypt() error = %v", err)
	}
	if decrypted != plaintext {
		t.Errorf("Expected %q, got %q", plaintext, decrypted)
	}
}

func TestKeyring_NonDeterministicNonce(t *testing.T) {
	keyring, err := NewKeyring(testKeys(t, 1))
	if err != nil {
		t.Fatalf("NewKeyring() error = %v", err)
	}

	a, _ := keyring.Encrypt("same input")
	b, _ := keyring.Encrypt("same input")
	if string(a) == string(b) {
		t.Error("Expected distinct ciphertexts for the same plaintext")
	}
}

func TestKeyring_KeyRotation(t *testing.T) {
	keys := testKeys(t, 2)

	// Seal under what will become the older key.
	oldRing, err := NewKeyring(keys[1:])
	if err != nil {
		t.Fatalf("NewKeyring() error = %v", err)
	}
	ciphertext, err := oldRing.Encrypt("sealed before rotation")
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}

	// A rotated ring with a new first key still opens it.
	rotated, err := NewKeyring(keys)
	if err != nil {
		t.Fatalf("NewKeyring() error = %v", err)
	}
	decrypted, err := rotated.Decrypt(ciphertext)
	if err != nil {
		t.Fatalf("Decrypt() after rotation error = %v", err)
	}
	if decrypted != "sealed before rotation" {
		t.Errorf("Unexpected plaintext %q", decrypted)
	}
}

func TestKeyring_TamperedCiphertext(t *testing.T) {
	keyring, err := NewKeyring(testKeys(t, 1))
	if err != nil {
		t.Fatalf("NewKeyring() error = %v", err)
	}

	ciphertext, err := keyring.Encrypt("intact")
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}
	ciphertext[len(ciphertext)-1] ^= 0x01

	if _, err := keyring.Decrypt(ciphertext); !errors.Is(err, ErrDecryptFailed) {
		t.Errorf("Expected ErrDecryptFailed for tampered ciphertext, got %v", err)
	}
}

func TestKeyring_TruncatedCiphertext(t *testing.T) {
	keyring, err := NewKeyring(testKeys(t, 1))
	if err != nil {
		t.Fatalf("NewKeyring() error = %v", err)
	}
	if _, err := keyring.Decrypt([]byte("short")); !errors.Is(err, ErrDecryptFailed) {
		t.Errorf("Expected ErrDecryptFailed for truncated input, got %v", err)
	}
}

func TestKeyring_EmptySecret(t *testing.T) {
	keyring, err := NewKeyring(testKeys(t, 1))
	if err != nil {
		t.Fatalf("NewKeyring() error = %v", err)
	}
	if _, err := keyring.Encrypt(""); !errors.Is(err, ErrEmptySecret) {
		t.Errorf("Expected ErrEmptySecret, got %v", err)
	}
}

func TestNewKeyring_InvalidKeys(t *testing.T) {
	t.Run("no keys", func(t *testing.T) {
		if _, err := NewKeyring(nil); !errors.Is(err, ErrNoKeys) {
			t.Errorf("Expected ErrNoKeys, got %v", err)
		}
	})

	t.Run("not base64", func(t *testing.T) {
		if _, err := NewKeyring([]string{"!!! not base64 !!!"}); err == nil {
			t.Error("Expected error for invalid base64 key")
		}
	})

	t.Run("wrong length", func(t *testing.T) {
		if _, err := NewKeyring([]string{"c2hvcnQ="}); err == nil {
			t.Error("Expected error for short key")
		}
	})
}
