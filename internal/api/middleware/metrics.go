package middleware

import (
	"net/http"
	"strings"
	"sync/atomic"
)

// MetricsCollector tracks the counters surfaced by /metrics. Beyond plain
// request and error counts it tallies the interrogation itself: turns
// advanced, scripted probes run, and judgments rendered, recognized by the
// session route that succeeded.
type MetricsCollector struct {
	Requests  atomic.Int64
	Errors    atomic.Int64
	Turns     atomic.Int64
	Probes    atomic.Int64
	Judgments atomic.Int64
}

func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{}
}

// Middleware counts every request, errors by status, and the interrogation
// operations by route. Failed operations count only as errors.
func (mc *MetricsCollector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mc.Requests.Add(1)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		if rw.statusCode >= 400 {
			mc.Errors.Add(1)
			return
		}

		if r.Method != http.MethodPost {
			return
		}
		switch {
		case strings.HasSuffix(r.URL.Path, "/respond"):
			mc.Turns.Add(1)
		case strings.HasSuffix(r.URL.Path, "/run"):
			mc.Probes.Add(1)
		case strings.HasSuffix(r.URL.Path, "/judge"):
			mc.Judgments.Add(1)
		}
	})
}
