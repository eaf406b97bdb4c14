package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/skirmish/pkg/auth"
	"github.com/shashiranjanraj/skirmish/pkg/response"
)

// claimsKey is the unexported context key for the authenticated identity.
type claimsKey struct{}

// maxTokenBody caps how much of a request body is inspected for a token field.
const maxTokenBody = 1 << 20

// Authenticate validates a bearer token and attaches the decoded claims to
// the request context. The token is read from the Authorization header, or
// failing that from a "token" field in a JSON body (header takes precedence;
// the body is restored for downstream decoding). The full user record is NOT
// loaded here — only the token claims.
func Authenticate(tokens *auth.Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				token = bodyToken(r)
			}

			if token == "" {
				response.Unauthorized(w, "Unauthorized. Token missing.")
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				response.Unauthorized(w, "Unauthorized. Invalid token.")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromCtx returns the identity attached by Authenticate.
func ClaimsFromCtx(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims, ok
}

// WithClaims stores claims in ctx. Exposed for tests that exercise handlers
// without the full middleware chain.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// bodyToken peeks into a JSON body for a "token" field, then restores the
// body so handlers can still decode it.
func bodyToken(r *http.Request) string {
	if r.Body == nil {
		return ""
	}
	ct := r.Header.Get("Content-Type")
	if ct != "" && !strings.Contains(ct, "application/json") {
		return ""
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxTokenBody))
	r.Body.Close() //nolint:errcheck
	r.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil {
		return ""
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	return payload.Token
}
