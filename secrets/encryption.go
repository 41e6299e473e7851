package secrets

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
)

var (
	ErrNoKeys        = errors.New("no master keys configured")
	ErrEmptySecret   = errors.New("secret cannot be empty")
	ErrDecryptFailed = errors.New("decryption failed with all available keys")
)

// Keyring encrypts with the first (newest) master key and tries every key on
// decryption, so secrets stored under an older key remain readable after a
// key rotation.
type Keyring struct {
	aeads []cipher.AEAD
}

// NewKeyring parses base64-encoded 32-byte master keys into AEAD ciphers.
func NewKeyring(encodedKeys []string) (*Keyring, error) {
	if len(encodedKeys) == 0 {
		return nil, ErrNoKeys
	}

	aeads := make([]cipher.AEAD, 0, len(encodedKeys))
	for i, encoded := range encodedKeys {
		key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
		if err != nil {
			return nil, fmt.Errorf("master key %d is not valid base64: %w", i, err)
		}
		if len(key) != chacha20poly1305.KeySize {
			return nil, fmt.Errorf("master key %d must be %d bytes, got %d", i, chacha20poly1305.KeySize, len(key))
		}
		aead, err := chacha20poly1305.NewX(key)
		if err != nil {
			return nil, fmt.Errorf("master key %d rejected: %w", i, err)
		}
		aeads = append(aeads, aead)
	}
	return &Keyring{aeads: aeads}, nil
}

// Encrypt seals the plaintext under the newest key. The random nonce is
// prepended to the ciphertext.
func (k *Keyring) Encrypt(plaintext string) ([]byte, error) {
	if plaintext == "" {
		return nil, ErrEmptySecret
	}

	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}

	return k.aeads[0].Seal(nonce, nonce, []byte(plaintext), nil), nil
}

// Decrypt tries each key in order until one opens the ciphertext. A token
// that no key can open (tampered, corrupted, or sealed under a retired key)
// yields ErrDecryptFailed without revealing which case it was.
func (k *Keyring) Decrypt(ciphertext []byte) (string, error) {
	if len(ciphertext) <= chacha20poly1305.NonceSizeX {
		return "", ErrDecryptFailed
	}

	nonce := ciphertext[:chacha20poly1305.NonceSizeX]
	sealed := ciphertext[chacha20poly1305.NonceSizeX:]
	for _, aead := range k.aeads {
		if plaintext, err := aead.Open(nil, nonce, sealed, nil); err == nil {
			return string(plaintext), nil
		}
	}
	return "", ErrDecryptFailed
}

// GenerateMasterKey returns a fresh base64-encoded master key, suitable for
// pasting into the secrets.master-keys config list.
func GenerateMasterKey() (string, error) {
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(key); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(key), nil
}
