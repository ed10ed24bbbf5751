package driven

// FieldCipher defines the driven port for per-field authenticated encryption.
// Implementations must be safe for concurrent use: callers may encrypt and
// decrypt from multiple goroutines sharing one cipher.
type FieldCipher interface {
	// Encrypt turns plaintext into a self-contained printable token.
	Encrypt(plaintext string) (string, error)

	// Decrypt recovers the plaintext from a token produced by Encrypt.
	// It fails for tokens that are malformed, tampered with, or encrypted
	// under a different key; implementations report this through an error
	// matchable with errors.Is rather than a sentinel plaintext.
	Decrypt(token string) (string, error)
}
