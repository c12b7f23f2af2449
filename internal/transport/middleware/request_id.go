package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/lexarch-backend/pkg/ctxutil"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-Id"

// BuildIDHeader reports which lexicon build answered the request.
const BuildIDHeader = "X-Lexicon-Build"

// RequestID reuses an incoming X-Request-Id or generates a new one, stores
// it in the context and echoes it in the response.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.New().String()
			}
			ctx := ctxutil.WithRequestID(r.Context(), id)
			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BuildID stamps every request with the id of the lexicon build being
// served. A nil id (snapshot not loaded from a build) is skipped.
func BuildID(id uuid.UUID) Middleware {
	return func(next http.Handler) http.Handler {
		if id == uuid.Nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(BuildIDHeader, id.String())
			next.ServeHTTP(w, r.WithContext(ctxutil.WithBuildID(r.Context(), id)))
		})
	}
}
