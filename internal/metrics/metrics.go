package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kbchat_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)
	HTTPDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kbchat_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Validation
	ValidationRejects = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "kbchat_validation_rejects_total",
			Help: "Chat requests rejected before reaching the generator",
		},
	)

	// RetrieveAndGenerate
	GeneratorCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kbchat_generator_calls_total",
			Help: "RetrieveAndGenerate calls by result",
		},
		[]string{"result"}, // result: success|error
	)
	GeneratorDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "kbchat_generator_duration_seconds",
			Help:    "Latency of RetrieveAndGenerate calls",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8), // 0.25s..32s
		},
	)
	GeneratorErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kbchat_generator_errors_total",
			Help: "RetrieveAndGenerate failures by error kind",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequests,
		HTTPDurationSeconds,
		ValidationRejects,
		GeneratorCalls,
		GeneratorDurationSeconds,
		GeneratorErrors,
	)
}

// Handler expõe o registry padrão no formato do Prometheus
func Handler() http.Handler {
	return promhttp.Handler()
}

func ObserveHTTPRequest(method, path, status string, d time.Duration) {
	HTTPRequests.WithLabelValues(method, path, status).Inc()
	HTTPDurationSeconds.WithLabelValues(method, path).Observe(d.Seconds())
}

func IncValidationReject() {
	ValidationRejects.Inc()
}

func ObserveGeneratorCall(d time.Duration, err error) {
	GeneratorDurationSeconds.Observe(d.Seconds())
	if err != nil {
		GeneratorCalls.WithLabelValues("error").Inc()
		return
	}
	GeneratorCalls.WithLabelValues("success").Inc()
}

func IncGeneratorError(kind string) {
	GeneratorErrors.WithLabelValues(kind).Inc()
}
