package http

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/enoozackie/online-hotelreservation-sub001/internal/actor"
	"github.com/google/uuid"
)

const (
	headerRequestID = "X-Request-ID"
	headerActor     = "X-Actor"
	maxRequestIDLen = 128
)

// RequestLogger logs basic request details and latency.
func RequestLogger(next http.Handler, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		a := actor.FromContext(r.Context())
		logger.Printf(
			"request method=%s path=%s status=%d duration=%s actor=%s request_id=%s",
			r.Method,
			r.URL.Path,
			rec.status,
			time.Since(start),
			a.ID,
			a.RequestID,
		)
	})
}

// RequestContext attaches the caller identity and a request id to the
// request context. An incoming X-Request-ID is kept; otherwise one is generated.
func RequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(headerRequestID))
		if requestID == "" || len(requestID) > maxRequestIDLen {
			requestID = uuid.NewString()
		}
		w.Header().Set(headerRequestID, requestID)

		ctx := actor.WithActor(r.Context(), actor.Actor{
			ID:        strings.TrimSpace(r.Header.Get(headerActor)),
			RequestID: requestID,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
