// Package middleware holds the HTTP middleware wrapped around the REST router.
package middleware

import (
	"context"
	"net/http"
	"time"

	"storefront-be/internal/logger"
	"storefront-be/internal/response"

	"github.com/rs/cors"
	"go.uber.org/zap"
)

type Middleware func(http.Handler) http.Handler

// Chain applies mws so that the first one is the outermost.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// CORS admits cross-origin calls from origin only, or from any origin when it
// is empty. Requests without an Origin header pass untouched; other origins
// get no CORS headers and are blocked by the browser.
func CORS(origin string) Middleware {
	opts := cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "Authorization", logger.RequestIDHeader, DeviceIDHeader},
		ExposedHeaders: []string{logger.RequestIDHeader},
	}
	if origin == "" {
		opts.AllowedOrigins = []string{"*"}
	} else {
		opts.AllowedOrigins = []string{origin}
		opts.AllowCredentials = true
	}

	return cors.New(opts).Handler
}

// Timeout bounds the request context. Zero disables it.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if d <= 0 {
				next.ServeHTTP(w, r)
				return
			}
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BodyLimit caps request bodies at n bytes.
func BodyLimit(n int64) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, n)
			next.ServeHTTP(w, r)
		})
	}
}

func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.FromCtx(r.Context()).Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Stack("stack"),
				)
				response.Fail(w, http.StatusInternalServerError, "Internal server error", nil)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
