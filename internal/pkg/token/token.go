// Package token issues and verifies the HS256 bearer tokens handed out at
// login. Tokens are self-contained: there is no revocation list, so a token
// stays valid until it expires.
package token

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/leadsite/marketing-api/internal/core/domain"
)

// DefaultTTL is the lifetime of a token issued without an explicit TTL.
const DefaultTTL = 7 * 24 * time.Hour

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer implements ports.TokenIssuer.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option customises an Issuer.
type Option func(*Issuer)

// WithClock replaces time.Now for issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) { i.now = now }
}

func NewIssuer(secret string, ttl time.Duration, opts ...Option) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	i := &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Issue signs payload with the issuer's default lifetime.
func (i *Issuer) Issue(payload domain.TokenPayload) (string, error) {
	return i.IssueWithTTL(payload, i.ttl)
}

func (i *Issuer) IssueWithTTL(payload domain.TokenPayload, ttl time.Duration) (string, error) {
	now := i.now()
	c := claims{
		Role: payload.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   payload.Subject,
			ID:        payload.JTI,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(i.secret)
}

// Verify checks signature, algorithm and expiry. Callers get no hint about
// which check failed.
func (i *Issuer) Verify(tokenString string) (domain.TokenPayload, bool) {
	if tokenString == "" {
		return domain.TokenPayload{}, false
	}

	var c claims
	tkn, err := jwt.ParseWithClaims(tokenString, &c, func(*jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !tkn.Valid || c.Subject == "" {
		return domain.TokenPayload{}, false
	}

	return domain.TokenPayload{Subject: c.Subject, Role: c.Role, JTI: c.ID}, true
}

// BearerToken extracts the credential from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func BearerToken(header string) string {
	scheme, tok, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(tok)
}
