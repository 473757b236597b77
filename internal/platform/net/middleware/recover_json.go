package middleware

import (
	stdjson "encoding/json"
	stdhttp "net/http"
	"runtime/debug"
	"strings"

	perr "adrata/internal/platform/errors"
	"adrata/internal/platform/logger"
	pnet "adrata/internal/platform/net"
)

// RecoverJSON converts panics into a JSON 500 and logs the stack
// under the request id
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			if v := recover(); v != nil {
				logPanic(r, v)
				writePanicJSON(w, pnet.RequestID(r.Context()))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func logPanic(r *stdhttp.Request, v any) {
	// indent continuation lines so the stack stays one log record
	stack := strings.Join(strings.Split(string(debug.Stack()), "\n"), "\n\t")

	log := logger.C(r.Context())
	if log == nil {
		log = logger.Named("http")
	}
	log.Error().
		Str("request_id", pnet.RequestID(r.Context())).
		Interface("panic", v).
		Msgf("panic recovered\n%s", stack)
}

func writePanicJSON(w stdhttp.ResponseWriter, reqID string) {
	if reqID != "" {
		w.Header().Set("X-Request-ID", reqID)
	}
	status, body := pnet.Error(perr.PanicErrf("panic recovered"), reqID)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = stdjson.NewEncoder(w).Encode(body)
}
