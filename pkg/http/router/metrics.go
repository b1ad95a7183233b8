package router

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const UNMATCHED_PATH = "unmatched"

type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	paths    map[string]struct{}
}

// NewMetrics registers the http metrics in reg. only the given paths are used as label values, any other path is
// counted as UNMATCHED_PATH.
func NewMetrics(reg prometheus.Registerer, paths []string) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bearmaps",
			Name:      "http_requests_total",
			Help:      "Number of http requests by path, method and status code.",
		}, []string{"path", "method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "bearmaps",
			Name:      "http_request_duration_seconds",
			Help:      "Latency of http requests by path.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path"}),
		paths: make(map[string]struct{}, len(paths)),
	}
	for _, p := range paths {
		m.paths[p] = struct{}{}
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}

func (m *Metrics) pathLabel(path string) string {
	if _, ok := m.paths[path]; ok {
		return path
	}
	return UNMATCHED_PATH
}

func PromHTTPMiddleware(m *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)

			path := m.pathLabel(r.URL.Path)
			m.requests.WithLabelValues(path, r.Method, strconv.Itoa(rec.status)).Inc()
			m.duration.WithLabelValues(path).Observe(time.Since(start).Seconds())
		})
	}
}
