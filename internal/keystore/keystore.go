// Package keystore owns the long-lived symmetric key. The key is generated
// once, written to a single file, and loaded unchanged on every later run.
// Losing the file makes every stored token permanently unrecoverable, and
// regenerating it orphans existing data, so a key file that exists but
// cannot be read correctly is a fatal condition — never a trigger to
// generate a fresh key.
package keystore

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// KeySize is the key length in bytes (256 bits).
const KeySize = 32

// ErrKeyIO indicates the key file could not be read, was corrupt, or could
// not be written. There is no recovery path; callers should abort startup.
var ErrKeyIO = errors.New("key file unreadable or unwritable")

// KeyStore loads or creates the key at a fixed path.
type KeyStore struct {
	path string
}

// New creates a KeyStore for the given key file path.
func New(path string) *KeyStore {
	return &KeyStore{path: path}
}

// Path returns the key file location.
func (k *KeyStore) Path() string { return k.path }

// LoadOrCreate returns the persisted key, generating and writing a new one
// if no key file exists yet. created reports whether a new key was made, so
// the caller can surface the security-relevant notice: a new key means any
// tokens from an earlier key are now undecryptable.
func (k *KeyStore) LoadOrCreate() (key []byte, created bool, err error) {
	key, err = os.ReadFile(k.path)
	if err == nil {
		if len(key) != KeySize {
			return nil, false, fmt.Errorf("%w: %s holds %d bytes, want %d", ErrKeyIO, k.path, len(key), KeySize)
		}
		return key, false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, false, fmt.Errorf("%w: read %s: %v", ErrKeyIO, k.path, err)
	}

	key = make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, false, fmt.Errorf("generate key: %w", err)
	}
	if err := os.WriteFile(k.path, key, 0o600); err != nil {
		return nil, false, fmt.Errorf("%w: write %s: %v", ErrKeyIO, k.path, err)
	}

	return key, true, nil
}
