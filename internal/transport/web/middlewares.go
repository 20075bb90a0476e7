package web

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/XxArDy/hotels/internal/hotel"
)

var ErrPanic = errors.New("panic")

// loggerMiddleware assigns every request an id (the otel trace id when a
// span is present, a fresh uuid otherwise), stores it in the context and
// writes an access-log line.
func (s *Server) loggerMiddleware() func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now().UTC()

			var requestID string

			if sc := trace.SpanContextFromContext(r.Context()); sc.IsValid() {
				requestID = sc.TraceID().String()
			}

			if requestID == "" {
				requestID = uuid.NewString()
			}

			r = r.WithContext(hotel.NewContextWithRequestID(r.Context(), requestID))

			next.ServeHTTP(w, r)

			s.l.LogInfo(
				"type: access, method: %s, url: %s, proto: %s, userAgent: %s, requestID: %s, latency: %s",
				r.Method,
				r.URL.Path,
				r.Proto,
				r.Header.Get("User-Agent"),
				requestID,
				time.Since(start),
			)
		})
	}
}

func (s *Server) recoverMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if re := recover(); re != nil {
					err, ok := re.(error)
					if !ok {
						err = fmt.Errorf("%v: %w", re, ErrPanic)
					}
					s.l.LogErrorf("type: panic, error: %v\n", err)
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
