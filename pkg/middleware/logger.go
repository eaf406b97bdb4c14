package middleware

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/skirmish/pkg/logger"
	"github.com/shashiranjanraj/skirmish/pkg/reqid"
)

// accessWriter captures the status code and response size for the access log.
type accessWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *accessWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *accessWriter) Write(p []byte) (int, error) {
	n, err := w.ResponseWriter.Write(p)
	w.bytes += n
	return n, err
}

// Logger writes one structured access-log line per request and injects a
// request-scoped logger (pre-tagged with the request ID) into the context.
// Mount reqid.Middleware before this one.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reqLog := logger.L.With("request_id", reqid.FromCtx(r.Context()))
		r = r.WithContext(logger.InjectLogger(r.Context(), reqLog))

		aw := &accessWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(aw, r)

		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", aw.status,
			"bytes", aw.bytes,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote", r.RemoteAddr,
		}
		switch {
		case aw.status >= 500:
			reqLog.Error("request", attrs...)
		case aw.status >= 400:
			reqLog.Warn("request", attrs...)
		default:
			reqLog.Info("request", attrs...)
		}
	})
}
