// Package keys encrypts and decrypts the wallet signing key with an
// operator-held master key so the key never sits in config as plaintext.
package keys

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/hkdf"
)

// MasterKeySize is the length of the master key in bytes
const MasterKeySize = 32

const signingKeyInfo = "bridge-tracker/wallet-signing-key/v1"

var (
	// ErrInvalidMasterKey is returned when the master key is missing or has the wrong size
	ErrInvalidMasterKey = errors.New("master key must be 32 bytes")
	// ErrDecrypt is returned when the ciphertext cannot be opened with the master key
	ErrDecrypt = errors.New("failed to decrypt signing key")
)

// GenerateMasterKey returns a new random master key
func GenerateMasterKey() ([]byte, error) {
	key := make([]byte, MasterKeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("failed to generate master key: %w", err)
	}
	return key, nil
}

// MasterKeyFromBase64 decodes a base64 master key as stored in the environment
func MasterKeyFromBase64(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, ErrInvalidMasterKey
	}
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode master key: %w", err)
	}
	if len(key) != MasterKeySize {
		return nil, ErrInvalidMasterKey
	}
	return key, nil
}

// EncryptSigningKey seals the private key with AES-256-GCM under a key derived
// from masterKey. The result is base64(nonce || ciphertext || tag).
func EncryptSigningKey(key *ecdsa.PrivateKey, masterKey []byte) (string, error) {
	if key == nil {
		return "", errors.New("private key is nil")
	}
	gcm, err := newGCM(masterKey)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := gcm.Seal(nonce, nonce, crypto.FromECDSA(key), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// DecryptSigningKey reverses EncryptSigningKey
func DecryptSigningKey(encrypted string, masterKey []byte) (*ecdsa.PrivateKey, error) {
	gcm, err := newGCM(masterKey)
	if err != nil {
		return nil, err
	}

	sealed, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encrypted))
	if err != nil {
		return nil, fmt.Errorf("failed to decode encrypted key: %w", err)
	}
	if len(sealed) < gcm.NonceSize() {
		return nil, ErrDecrypt
	}
	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]

	plain, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecrypt
	}

	key, err := crypto.ToECDSA(plain)
	if err != nil {
		return nil, fmt.Errorf("decrypted key is not a secp256k1 key: %w", err)
	}
	return key, nil
}

func newGCM(masterKey []byte) (cipher.AEAD, error) {
	if len(masterKey) != MasterKeySize {
		return nil, ErrInvalidMasterKey
	}

	derived := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, masterKey, nil, []byte(signingKeyInfo)), derived); err != nil {
		return nil, fmt.Errorf("failed to derive encryption key: %w", err)
	}

	block, err := aes.NewCipher(derived)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}
