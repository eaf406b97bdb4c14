// Package reqid tags every HTTP request with a random ID that travels in the
// request context and the X-Request-ID header. logger.WithCtx picks it up so
// all log lines for one request can be correlated.
package reqid

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
)

// Header carries the request ID on the wire.
const Header = "X-Request-ID"

type ctxKey struct{}

// New returns a 32 hex character random request ID.
func New() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

// WithValue returns ctx with id attached.
func WithValue(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromCtx returns the request ID stored in ctx, or "" when absent.
func FromCtx(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Middleware assigns each request an ID, reusing a client-supplied
// X-Request-ID when present so traces can span proxies. The ID is echoed in
// the response header and stored in the request context.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(Header)
			if id == "" {
				id = New()
			}
			w.Header().Set(Header, id)
			next.ServeHTTP(w, r.WithContext(WithValue(r.Context(), id)))
		})
	}
}
