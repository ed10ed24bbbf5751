// Package fieldcrypt encrypts individual text fields with AES-256-GCM so they
// can be stored in ordinary TEXT columns. Each call produces a self-contained
// token: the random 12-byte nonce prepended to the ciphertext-plus-tag, the
// whole thing standard-base64 encoded. Decryption needs only the token and
// the process-wide key.
package fieldcrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/ericfisherdev/budgetvault/internal/domain/port/driven"
)

// KeySize is the required key length in bytes (AES-256).
const KeySize = 32

// ErrDecrypt is returned, wrapped, for every decryption failure: malformed
// encoding, truncated token, authentication mismatch, or non-UTF-8 plaintext.
// Callers distinguish "failed to decrypt" with errors.Is(err, ErrDecrypt).
var ErrDecrypt = errors.New("token authentication failed or malformed")

// Compile-time interface satisfaction check.
var _ driven.FieldCipher = (*Cipher)(nil)

// Cipher performs authenticated encryption of text fields. The AEAD is
// constructed once; Cipher holds no per-call state and is safe for
// concurrent use.
type Cipher struct {
	aead cipher.AEAD
}

// New creates a Cipher from a 32-byte AES-256 key.
func New(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("fieldcrypt: key is %d bytes, want %d", len(key), KeySize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aes.NewCipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cipher.NewGCM: %w", err)
	}

	return &Cipher{aead: aead}, nil
}

// Encrypt encrypts plaintext under a fresh random nonce and returns the
// base64 token. Two calls with the same plaintext yield different tokens.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("rand nonce: %w", err)
	}

	// Seal appends the ciphertext to nonce, producing: nonce || ciphertext || tag.
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt decodes and authenticates a token produced by Encrypt. Every
// failure wraps ErrDecrypt; a corrupted token can never yield wrong
// plaintext or a panic.
func (c *Cipher) Decrypt(token string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("%w: invalid base64", ErrDecrypt)
	}

	nonceSize := c.aead.NonceSize()
	if len(data) < nonceSize+c.aead.Overhead() {
		return "", fmt.Errorf("%w: token too short", ErrDecrypt)
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecrypt, err)
	}

	if !utf8.Valid(plaintext) {
		return "", fmt.Errorf("%w: plaintext is not valid UTF-8", ErrDecrypt)
	}
	return string(plaintext), nil
}
