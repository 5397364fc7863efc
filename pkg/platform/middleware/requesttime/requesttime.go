// Package requesttime pins one "now" per HTTP request so a check-in's
// registration time, its audit event and its log line agree.
package requesttime

import (
	"net/http"
	"time"

	"eventdesk/pkg/requestcontext"
)

// Middleware stores the request's start time in the context.
func Middleware(next http.Handler) http.Handler {
	return MiddlewareWithClock(time.Now)(next)
}

// MiddlewareWithClock is Middleware with an injectable clock.
func MiddlewareWithClock(now func() time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithTime(r.Context(), now())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
