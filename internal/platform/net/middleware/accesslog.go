// Package middleware holds adapters and in house middlewares
package middleware

import (
	"net/http"
	"time"

	"adrata/internal/platform/logger"
	pnet "adrata/internal/platform/net"
)

// AccessLogOptions configures the access log middleware
type AccessLogOptions struct {
	// Requests taking at least Slow log at warn instead of info;
	// zero disables the slow marker
	Slow time.Duration
}

// captureWriter records the status code and byte count a handler produced
type captureWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	n, err := cw.ResponseWriter.Write(b)
	if n > 0 {
		cw.bytes += n
	}
	return n, err
}

// AccessLogZerolog emits one line per request with method, path, status,
// elapsed time and bytes written, through the request-scoped logger so
// request and workspace ids come along for free
func AccessLogZerolog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(cw, r)

			logRequest(r, cw, time.Since(start), opt.Slow)
		})
	}
}

func logRequest(r *http.Request, cw *captureWriter, elapsed, slow time.Duration) {
	log := logger.C(r.Context())

	evt := log.Info()
	if slow > 0 && elapsed >= slow {
		evt = log.Warn()
	}

	evt = evt.
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", cw.status).
		Dur("elapsed", elapsed).
		Int("bytes", cw.bytes)
	if ws := pnet.WorkspaceID(r.Context()); ws != "" {
		evt = evt.Str("workspace_id", ws)
	}
	evt.Msg("request done")
}
