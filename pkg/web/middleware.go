package web

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const requestIDHeader = "X-Request-Id"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// accessLog tags each request with an id, logs it once it completes
// and counts it against route.
func (t api) accessLog(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		t.metrics.ObserveHTTP(route, rec.status)
		t.log.WithFields(logrus.Fields{
			"requestId": id,
			"method":    r.Method,
			"path":      r.URL.Path,
			"status":    rec.status,
			"took":      time.Since(start),
			"remote":    r.RemoteAddr,
		}).Debug("request")
	})
}
