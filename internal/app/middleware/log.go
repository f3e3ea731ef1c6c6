package middleware

import (
	"net/http"
	"time"

	"backoffice/internal/app/logger"

	"github.com/justinas/alice"
	"github.com/rs/zerolog/hlog"
)

// Log attaches the request-scoped logger, access logging and a request id
// to every request.
func Log(l logger.Logger) func(next http.Handler) http.Handler {
	chain := alice.New(
		hlog.NewHandler(l.Logger),
		hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
			hlog.FromRequest(r).Info().
				Str("method", r.Method).
				Str("url", r.URL.String()).
				Int("status", status).
				Int("size", size).
				Dur("duration", duration).
				Msg("Request")
		}),
		hlog.RemoteAddrHandler("ip"),
		hlog.RequestIDHandler("req_id", "Request-Id"),
	)

	return func(next http.Handler) http.Handler {
		return chain.Then(next)
	}
}
