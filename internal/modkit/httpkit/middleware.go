package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"adrata/internal/platform/net/middleware"
)

// CommonStack returns a baseline per module middleware slice
// compose with workspace scoping middleware as needed in main
func CommonStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RequestScope(),

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		middleware.NoCache(),

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: 500 * time.Millisecond}),

		// cross-origin (tweak config in main if needed)
		middleware.CORS(middleware.CORSOptions{}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),

		// load shedding and body hygiene
		middleware.Throttle(512),
		middleware.AllowContentType("application/json"),
		middleware.Timeout(30 * time.Second),
	}
}
