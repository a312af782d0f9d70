// Package cryptox implements passphrase-based sealing of small secrets,
// used to keep the wallet keypair file encrypted at rest.
//
// A sealed blob is laid out as salt (16 bytes) || nonce (12 bytes) ||
// AES-256-GCM ciphertext. The key is derived from the passphrase with
// argon2id.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const (
	saltSize  = 16
	nonceSize = 12
	keySize   = 32
)

var ErrBlobTooShort = errors.New("sealed blob too short")

// DeriveKey derives a 32-byte AES key from a passphrase and salt using
// argon2id. The parameters match the argon2 authors' interactive-use
// recommendation (t=1, m=64MiB, p=4).
func DeriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, keySize)
}

// SealWithPassphrase encrypts plaintext with a key derived from passphrase.
// A fresh random salt and nonce are generated for every call and prepended
// to the returned blob.
func SealWithPassphrase(plaintext, passphrase []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}

	aesgcm, err := newGCM(DeriveKey(passphrase, salt))
	if err != nil {
		return nil, err
	}

	blob := make([]byte, 0, saltSize+nonceSize+len(plaintext)+aesgcm.Overhead())
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	blob = aesgcm.Seal(blob, nonce, plaintext, nil)
	return blob, nil
}

// OpenWithPassphrase decrypts a blob produced by SealWithPassphrase.
// A wrong passphrase fails authentication and returns an error.
func OpenWithPassphrase(blob, passphrase []byte) ([]byte, error) {
	if len(blob) < saltSize+nonceSize {
		return nil, ErrBlobTooShort
	}

	salt := blob[:saltSize]
	nonce := blob[saltSize : saltSize+nonceSize]
	ciphertext := blob[saltSize+nonceSize:]

	aesgcm, err := newGCM(DeriveKey(passphrase, salt))
	if err != nil {
		return nil, err
	}

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("opening sealed blob: %w", err)
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Wipe overwrites the contents of the provided byte slice with zeros.
// Useful for removing passphrases and derived keys from memory after use.
// A nil slice is a no-op.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
