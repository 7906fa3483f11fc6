// Package middlewares holds HTTP middleware shared by the services.
package middlewares

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// HeaderXRequestID is the correlation header honored on the way in and
// echoed on the way out.
const HeaderXRequestID = "X-Request-Id"

// ctxKey keeps the context key private so other packages cannot collide
// with it.
type ctxKey string

const requestIDKey ctxKey = "request_id"

// RequestID takes the caller's X-Request-Id, or mints a uuid when the
// header is absent, and carries it in the request context and the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(HeaderXRequestID, id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID returns the request id carried by ctx, or "".
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
