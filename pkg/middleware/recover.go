package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/shashiranjanraj/skirmish/pkg/logger"
	"github.com/shashiranjanraj/skirmish/pkg/response"
)

// Recovery turns a downstream panic into a logged 500. http.ErrAbortHandler
// is re-raised so net/http can abort the connection as intended; no stack
// trace ever reaches the client.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.WithCtx(r.Context()).Error("panic recovered",
				"panic", fmt.Sprintf("%v", rec),
				"method", r.Method,
				"path", r.URL.Path,
				"stack", string(debug.Stack()),
			)
			response.Internal(w)
		}()
		next.ServeHTTP(w, r)
	})
}
