package ports

import "github.com/leadsite/marketing-api/internal/core/domain"

// PasswordHasher derives and checks one-way password hashes.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches hash. A mismatch is not an error.
	Verify(plaintext, hash string) bool
}

// TokenIssuer signs and verifies time-bounded identity tokens.
type TokenIssuer interface {
	Issue(payload domain.TokenPayload) (string, error)
	// Verify returns false for malformed, forged and expired tokens alike.
	Verify(token string) (domain.TokenPayload, bool)
}
