package middleware

import (
	"context"
	"net/http"
	"strings"

	"backoffice/internal/app/apperr"
	"backoffice/internal/app/handler"
	"backoffice/internal/app/logger"
	"backoffice/internal/app/session"
)

func Auth(jwt session.Reader) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.Get(r.Context(), "Middleware.Auth")

			reqHeader := r.Header.Get("Authorization")
			splitToken := strings.Split(reqHeader, "Bearer ")
			if len(splitToken) != 2 {
				log.Debug().Str("header", reqHeader).Msg("Invalid Authorization header")
				handler.WriteError(w, apperr.ErrUnauthorized, http.StatusUnauthorized)
				return
			}

			a, err := jwt.Read(r.Context(), splitToken[1])
			if err != nil {
				log.Debug().Err(err).Msg("Token validation failed")
				handler.WriteError(w, apperr.ErrUnauthorized, http.StatusUnauthorized)
				return
			}

			log.Debug().Str("admin", a.Name).Msg("Admin authorized")
			r = r.WithContext(context.WithValue(r.Context(), handler.ContextKeyAdmin{}, a))
			next.ServeHTTP(w, r)
		})
	}
}
