// Package auth issues and verifies the signed identity tokens used by the
// HTTP surface, and wraps bcrypt password hashing.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidToken is returned by Verify for any token that does not parse,
// fails signature validation, or has expired.
var ErrInvalidToken = errors.New("auth: invalid token")

// Claims holds the typed JWT payload.
type Claims struct {
	UserID string   `json:"id"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// HasRole reports whether the claims carry the given role.
func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Tokens signs and verifies identity tokens. The secret is injected once at
// startup; Tokens is immutable afterwards.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

// NewTokens builds a Tokens with the given HMAC secret and token lifetime.
// A zero ttl falls back to one hour; a negative ttl issues already-expired
// tokens.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	if ttl == 0 {
		ttl = time.Hour
	}
	return &Tokens{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed HS256 token carrying id, email, and roles.
func (t *Tokens) Issue(userID, email string, roles []string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify parses and validates a token string. Identity existence is not
// checked here; callers resolve the user downstream when they need it.
func (t *Tokens) Verify(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// HashPassword returns a bcrypt hash of the plain-text password.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash against the plain-text candidate.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
