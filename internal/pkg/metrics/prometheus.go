package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gymdesk",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gymdesk",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "gymdesk",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Notification feed metrics
	feedActiveStreams = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "gymdesk",
			Subsystem: "feed",
			Name:      "active_streams",
			Help:      "Number of currently open notification streams",
		},
	)

	feedTicksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gymdesk",
			Subsystem: "feed",
			Name:      "ticks_total",
			Help:      "Total number of feed polling ticks",
		},
		[]string{"status"},
	)

	feedTickDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "gymdesk",
			Subsystem: "feed",
			Name:      "tick_duration_seconds",
			Help:      "Duration of one feed polling tick in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
	)

	feedEventsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gymdesk",
			Subsystem: "feed",
			Name:      "events_emitted_total",
			Help:      "Total number of stream events emitted",
		},
		[]string{"event"},
	)

	// Read-marker janitor metrics
	markersPruned = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "gymdesk",
			Subsystem: "feed",
			Name:      "markers_pruned_total",
			Help:      "Total number of stale read-markers deleted by the janitor",
		},
	)
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Flush delegates so the wrapper stays usable for SSE streaming; without it
// the stream handler's http.Flusher assertion fails behind this middleware.
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Middleware returns a middleware that records Prometheus metrics
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()

		routePattern := chi.RouteContext(r.Context()).RoutePattern()
		if routePattern == "" {
			routePattern = "unknown"
		}

		status := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, routePattern, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, routePattern, status).Observe(duration)
	})
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// StreamOpened records a newly opened notification stream
func StreamOpened() {
	feedActiveStreams.Inc()
}

// StreamClosed records a closed notification stream
func StreamClosed() {
	feedActiveStreams.Dec()
}

// RecordTick records one feed polling tick
func RecordTick(status string, duration time.Duration) {
	feedTicksTotal.WithLabelValues(status).Inc()
	feedTickDuration.Observe(duration.Seconds())
}

// RecordEvent records one emitted stream event
func RecordEvent(event string) {
	feedEventsEmitted.WithLabelValues(event).Inc()
}

// RecordMarkersPruned records read-markers deleted by the janitor
func RecordMarkersPruned(n int64) {
	markersPruned.Add(float64(n))
}
